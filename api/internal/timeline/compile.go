package timeline

import (
	"fmt"

	"math-animator/api/internal/config"
	"math-animator/api/internal/solver"
)

// Compiler turns solver results into timelines. Pure data transformation:
// no I/O, no clock, and it never fails — every failure value compiles to a
// renderable error timeline, so the renderer always gets something to show.
type Compiler struct {
	Style config.Style
}

func NewCompiler(style config.Style) *Compiler {
	return &Compiler{Style: style}
}

// Compile is deterministic: the same result compiles to a structurally
// identical timeline every time.
func (c *Compiler) Compile(res solver.Result) Timeline {
	if !res.OK() {
		return c.failure(res.Failure)
	}
	seq := res.Sequence
	if len(seq.Steps) == 0 {
		// Nothing to animate; same shape as a solve failure.
		return c.failure(&solver.Failure{
			Message:  "no steps produced",
			RawInput: seq.Input,
		})
	}

	total := len(seq.Steps)
	segs := make([]Segment, 0, total+3)

	segs = append(segs, Segment{
		Kind:         KindTitle,
		ProblemKind:  seq.Kind,
		DisplayInput: seq.NormalizedInput,
	})
	segs = append(segs, Segment{
		Kind:       KindInitial,
		Expression: seq.Steps[0].Before,
	})

	// Fold over the steps: the running expression is chained from each
	// step's after, never re-derived. The oracle owns before/after
	// consistency between consecutive steps.
	current := seq.Steps[0].Before
	for _, s := range seq.Steps {
		frac := float64(s.Index-1) / float64(total)
		segs = append(segs, Segment{
			Kind:      KindStep,
			Step:      &s,
			Progress:  frac,
			Indicator: fmt.Sprintf("Step %d of %d", s.Index, total),
			BarWidth:  frac * c.Style.ProgressBarWidth,
		})
		current = s.After
	}

	segs = append(segs, Segment{
		Kind:       KindFinal,
		Expression: current,
	})
	return Timeline{Input: seq.Input, Segments: segs}
}

// failure builds the guaranteed-success path: best-effort title from the
// raw input, then a single error segment.
func (c *Compiler) failure(f *solver.Failure) Timeline {
	suggestion := f.Suggestion
	if !c.Style.ShowSuggestions {
		suggestion = ""
	}
	return Timeline{
		Input: f.RawInput,
		Segments: []Segment{
			{Kind: KindTitle, DisplayInput: f.RawInput},
			{Kind: KindError, Message: f.Message, Suggestion: suggestion},
		},
	}
}
