package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"math-animator/api/internal/solver"
)

// Summary is what one input serializes to in a saved batch document.
type Summary struct {
	Success        bool                  `json:"success"`
	Type           solver.ProblemKind    `json:"type,omitempty"`
	ProcessedInput string                `json:"processedInput,omitempty"`
	StepCount      int                   `json:"stepCount,omitempty"`
	Steps          []solver.SolutionStep `json:"steps,omitempty"`
	Kind           solver.FailureKind    `json:"kind,omitempty"`
	Error          string                `json:"error,omitempty"`
	Suggestion     string                `json:"suggestion,omitempty"`
	Video          string                `json:"video,omitempty"`
}

func Summarize(out Outcome) Summary {
	if out.Result.OK() {
		seq := out.Result.Sequence
		return Summary{
			Success:        true,
			Type:           seq.Kind,
			ProcessedInput: seq.NormalizedInput,
			StepCount:      len(seq.Steps),
			Steps:          seq.Steps,
			Video:          out.Video,
		}
	}
	f := out.Result.Failure
	return Summary{
		Success:    false,
		Kind:       f.Kind,
		Error:      f.Message,
		Suggestion: f.Suggestion,
	}
}

// MarshalJSON keeps the document keys in input order; encoding/json maps
// would sort them.
func (b BatchResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, in := range b.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(Summarize(b.Items[in]))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SaveResults writes the batch document to path, creating parent
// directories as needed.
func SaveResults(path string, br BatchResult) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	raw, err := br.MarshalJSON()
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return err
	}
	pretty.WriteByte('\n')
	return os.WriteFile(path, pretty.Bytes(), 0o644)
}
