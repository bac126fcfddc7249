// Package stepper runs the mathsteps oracle as a Node.js subprocess and
// turns its JSON output into solver results.
package stepper

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"math-animator/api/internal/solver"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
)

type Engine struct {
	Script     string        // path to math_stepper.js
	Node       string        // node binary, "node" if empty
	Timeout    time.Duration // per-attempt wall clock, DefaultTimeout if zero
	MaxRetries int           // extra attempts after the first, on timeout/exit only
}

func New(script string) *Engine {
	return &Engine{
		Script:     script,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
	}
}

func (e *Engine) Name() string     { return "stepper" }
func (e *Engine) GetModel() string { return filepath.Base(e.Script) }

// Solve spawns one oracle process per attempt. Timeouts and non-zero exits
// are retried up to MaxRetries; parse failures and invalid input are not.
func (e *Engine) Solve(ctx context.Context, input string) solver.Result {
	if res, ok := solver.CheckInput(input); !ok {
		return res
	}

	var last solver.Result
	for attempt := 0; ; attempt++ {
		last = e.solveOnce(ctx, input)
		if last.OK() || !last.Failure.Kind.Retryable() {
			return last
		}
		if attempt >= e.maxRetries() {
			return last
		}
		log.Printf("stepper: %s for %q, retry %d/%d", last.Failure.Kind, input, attempt+1, e.maxRetries())
	}
}

func (e *Engine) solveOnce(ctx context.Context, input string) solver.Result {
	cctx, cancel := context.WithTimeout(ctx, e.timeout())
	defer cancel()

	node := e.Node
	if node == "" {
		node = "node"
	}
	cmd := exec.CommandContext(cctx, node, e.Script, input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	// CommandContext kills the child on deadline; classify before looking
	// at the exit error so a killed process reads as a timeout, not a crash.
	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return solver.Fail(solver.Failure{
			Kind:     solver.FailTimeout,
			Message:  "process timed out",
			RawInput: input,
		})
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "unknown error from math stepper"
		}
		return solver.Fail(solver.Failure{
			Kind:     solver.FailProcess,
			Message:  msg,
			RawInput: input,
		})
	}

	return solver.ParseDocument(stdout.Bytes(), input)
}

func (e *Engine) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultTimeout
}

func (e *Engine) maxRetries() int {
	if e.MaxRetries >= 0 {
		return e.MaxRetries
	}
	return DefaultMaxRetries
}
