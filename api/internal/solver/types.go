package solver

import "fmt"

// ProblemKind is what the oracle decided the input was.
type ProblemKind string

const (
	KindEquation   ProblemKind = "equation"
	KindExpression ProblemKind = "expression"
)

// FailureKind classifies why a solve did not produce steps.
type FailureKind string

const (
	FailInvalidInput FailureKind = "invalid_input" // empty input, oracle never invoked
	FailTimeout      FailureKind = "timeout"       // oracle exceeded the time budget
	FailProcess      FailureKind = "process"       // non-zero exit from the oracle
	FailOutput       FailureKind = "output"        // exit 0 but stdout failed structural parsing
	FailDegenerate   FailureKind = "degenerate"    // success with zero steps
	FailSolver       FailureKind = "solver"        // oracle-reported failure (success:false)
)

// Retryable reports whether another attempt could plausibly change the outcome.
// Parse failures and bad input will not fix themselves on repeat.
func (k FailureKind) Retryable() bool {
	return k == FailTimeout || k == FailProcess
}

// SolutionStep is one transformation in the derivation.
type SolutionStep struct {
	Index        int    `json:"step"` // 1-based
	Total        int    `json:"totalSteps"`
	Description  string `json:"description"`
	Before       string `json:"before"`
	After        string `json:"after"`
	HasSubsteps  bool   `json:"hasSubsteps"`
	SubstepCount int    `json:"substepCount"`
}

// StepSequence is a successful oracle result: the validated, ordered
// derivation plus metadata. Built once per solve, never mutated.
type StepSequence struct {
	Kind            ProblemKind    `json:"type"`
	Input           string         `json:"input"`
	NormalizedInput string         `json:"processedInput"`
	Steps           []SolutionStep `json:"steps"`
}

// Validate checks the structural invariants the compiler relies on:
// indexes are 1-based, strictly increasing, contiguous, and every step
// carries the sequence length as its total.
func (s *StepSequence) Validate() error {
	if s.Kind != KindEquation && s.Kind != KindExpression {
		return fmt.Errorf("unknown problem kind %q", s.Kind)
	}
	n := len(s.Steps)
	for i, st := range s.Steps {
		if st.Index != i+1 {
			return fmt.Errorf("step %d: index %d, want %d", i, st.Index, i+1)
		}
		if st.Total != n {
			return fmt.Errorf("step %d: totalSteps %d, want %d", st.Index, st.Total, n)
		}
	}
	return nil
}

// FinalExpression folds the chain and returns the last step's after.
// Empty string for an empty sequence.
func (s *StepSequence) FinalExpression() string {
	out := ""
	for _, st := range s.Steps {
		out = st.After
	}
	return out
}

// Failure is an unsuccessful solve. Always a value, never a panic: the
// bridge converts every misbehavior of the oracle into one of these.
type Failure struct {
	Kind       FailureKind `json:"kind"`
	Message    string      `json:"error"`
	Suggestion string      `json:"suggestion,omitempty"`
	RawInput   string      `json:"input"`
	RawOutput  string      `json:"rawOutput,omitempty"` // diagnostics for output failures
}

// Result is the bridge contract: exactly one of Sequence or Failure is set.
type Result struct {
	Sequence *StepSequence `json:"sequence,omitempty"`
	Failure  *Failure      `json:"failure,omitempty"`
}

func (r Result) OK() bool { return r.Sequence != nil }

// Succeed wraps a sequence; zero-step sequences become degenerate failures
// here so downstream code only sees renderable successes.
func Succeed(seq *StepSequence) Result {
	if len(seq.Steps) == 0 {
		return Fail(Failure{
			Kind:     FailDegenerate,
			Message:  "no steps produced",
			RawInput: seq.Input,
		})
	}
	return Result{Sequence: seq}
}

func Fail(f Failure) Result { return Result{Failure: &f} }
