// Package render hands completed timelines to the external frame
// compositor. The core emits declarative segments; everything about pixels,
// fonts and frame clocks lives on the other side of this boundary.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"math-animator/api/internal/config"
	"math-animator/api/internal/timeline"
)

type Options struct {
	Quality string // l | m | h | k
	Format  string // mp4 if empty
	Preview bool   // open the result after rendering
}

type Artifact struct {
	Path    string
	Quality config.Quality
}

// Renderer is called once per completed timeline.
type Renderer interface {
	Render(ctx context.Context, tl timeline.Timeline, style config.Style, opts Options) (Artifact, error)
}

// Compositor invokes the external scene compositor as a subprocess, one
// call per timeline. The scene file carries the segments, the style and the
// quality tier; the compositor chooses its own transitions per segment kind.
type Compositor struct {
	Bin      string // compositor binary
	MediaDir string // where videos land
}

func NewCompositor(bin, mediaDir string) *Compositor {
	return &Compositor{Bin: bin, MediaDir: mediaDir}
}

// scene is the wire format the compositor consumes.
type scene struct {
	Timeline timeline.Timeline `json:"timeline"`
	Style    config.Style      `json:"style"`
	Quality  config.Quality    `json:"quality"`
}

func (r *Compositor) Render(ctx context.Context, tl timeline.Timeline, style config.Style, opts Options) (Artifact, error) {
	if err := tl.Validate(); err != nil {
		return Artifact{}, fmt.Errorf("refusing to render malformed timeline: %w", err)
	}
	q := config.QualityOrDefault(opts.Quality)
	format := opts.Format
	if format == "" {
		format = "mp4"
	}

	if err := os.MkdirAll(r.MediaDir, 0o755); err != nil {
		return Artifact{}, err
	}
	payload, err := json.Marshal(scene{Timeline: tl, Style: style, Quality: q})
	if err != nil {
		return Artifact{}, err
	}

	id := uuid.NewString()
	scenePath := filepath.Join(r.MediaDir, id+".scene.json")
	outPath := filepath.Join(r.MediaDir, id+"."+format)
	if err := os.WriteFile(scenePath, payload, 0o644); err != nil {
		return Artifact{}, err
	}
	defer os.Remove(scenePath)

	args := []string{
		"--fps", strconv.Itoa(q.FPS),
		"--resolution", q.Resolution,
		"--scene", scenePath,
		"-o", outPath,
	}
	if opts.Preview {
		args = append(args, "--preview")
	}

	cmd := exec.CommandContext(ctx, r.Bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return Artifact{}, fmt.Errorf("compositor: %s", msg)
	}
	if _, err := os.Stat(outPath); err != nil {
		return Artifact{}, fmt.Errorf("compositor exited 0 but produced no output at %s", outPath)
	}
	return Artifact{Path: outPath, Quality: q}, nil
}
