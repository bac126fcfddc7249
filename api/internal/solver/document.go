package solver

import (
	"encoding/json"
	"fmt"

	"math-animator/api/internal/util"
)

// document is the oracle's stdout contract. One JSON object per call:
//
//	{"success":true,"type":"equation","processedInput":"5x+3=0","stepCount":1,
//	 "steps":[{"step":1,"description":"...","before":"...","after":"...",
//	           "hasSubsteps":false,"substepCount":0}]}
//	{"success":false,"error":"...","suggestion":"..."}
type document struct {
	Success        bool           `json:"success"`
	Type           string         `json:"type"`
	ProcessedInput string         `json:"processedInput"`
	StepCount      int            `json:"stepCount"`
	Steps          []documentStep `json:"steps"`
	Error          string         `json:"error"`
	Suggestion     string         `json:"suggestion"`
}

type documentStep struct {
	Step         int    `json:"step"`
	Description  string `json:"description"`
	Before       string `json:"before"`
	After        string `json:"after"`
	HasSubsteps  bool   `json:"hasSubsteps"`
	SubstepCount int    `json:"substepCount"`
}

// ParseDocument converts raw oracle output into a Result. Anything that is
// not a structurally valid document becomes an output failure carrying the
// raw text for diagnostics; an explicit success:false becomes a
// solver-reported failure. Never retried by callers: malformed output will
// not fix itself.
func ParseDocument(raw []byte, input string) Result {
	text := util.StripCodeFences(string(raw))
	if obj := util.FirstJSONObject(text); obj != "" {
		text = obj
	}

	var doc document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return Fail(Failure{
			Kind:      FailOutput,
			Message:   fmt.Sprintf("invalid JSON output from solver: %v", err),
			RawInput:  input,
			RawOutput: string(raw),
		})
	}

	if !doc.Success {
		msg := doc.Error
		if msg == "" {
			msg = "solver reported failure without a message"
		}
		return Fail(Failure{
			Kind:       FailSolver,
			Message:    msg,
			Suggestion: doc.Suggestion,
			RawInput:   input,
		})
	}

	normalized := doc.ProcessedInput
	if normalized == "" {
		normalized = input
	}
	seq := &StepSequence{
		Kind:            ProblemKind(doc.Type),
		Input:           input,
		NormalizedInput: normalized,
		Steps:           make([]SolutionStep, 0, len(doc.Steps)),
	}
	for _, ds := range doc.Steps {
		seq.Steps = append(seq.Steps, SolutionStep{
			Index:        ds.Step,
			Total:        doc.StepCount,
			Description:  ds.Description,
			Before:       ds.Before,
			After:        ds.After,
			HasSubsteps:  ds.HasSubsteps,
			SubstepCount: ds.SubstepCount,
		})
	}
	if doc.StepCount != len(seq.Steps) {
		return Fail(Failure{
			Kind:      FailOutput,
			Message:   fmt.Sprintf("solver reported %d steps but sent %d", doc.StepCount, len(seq.Steps)),
			RawInput:  input,
			RawOutput: string(raw),
		})
	}
	if err := seq.Validate(); err != nil {
		return Fail(Failure{
			Kind:      FailOutput,
			Message:   fmt.Sprintf("inconsistent solver output: %v", err),
			RawInput:  input,
			RawOutput: string(raw),
		})
	}
	return Succeed(seq)
}
