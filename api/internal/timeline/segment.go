// Package timeline compiles solver results into ordered scene segments for
// frame-by-frame rendering. Segments are declarative: the external
// compositor owns pixels, fonts and clocks.
package timeline

import (
	"fmt"

	"math-animator/api/internal/solver"
)

type Kind string

const (
	KindTitle   Kind = "title"
	KindInitial Kind = "initial"
	KindStep    Kind = "step"
	KindFinal   Kind = "final"
	KindError   Kind = "error"
)

// Segment is one atomic unit of the animation. Kind selects the variant;
// only that variant's fields are populated. Segments are never mutated
// after the compiler emits them.
type Segment struct {
	Kind Kind `json:"kind"`

	// title
	ProblemKind  solver.ProblemKind `json:"problemKind,omitempty"`
	DisplayInput string             `json:"displayInput,omitempty"`

	// initial / final
	Expression string `json:"expression,omitempty"`

	// step
	Step      *solver.SolutionStep `json:"step,omitempty"`
	Progress  float64              `json:"progress"` // steps completed so far / total, in [0,1)
	Indicator string               `json:"indicator,omitempty"`
	BarWidth  float64              `json:"barWidth"` // Progress x style bar width

	// error
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Timeline is the full ordered segment sequence for one input. Produced
// atomically, consumed once by the renderer.
type Timeline struct {
	Input    string    `json:"input"`
	Segments []Segment `json:"segments"`
}

// Validate checks the shape guarantee the renderer relies on: one title
// first, then either [initial, steps in index order, final] or a single
// error segment.
func (t Timeline) Validate() error {
	if len(t.Segments) == 0 || t.Segments[0].Kind != KindTitle {
		return fmt.Errorf("timeline must start with a title segment")
	}
	rest := t.Segments[1:]
	if len(rest) == 1 && rest[0].Kind == KindError {
		return nil
	}
	if len(rest) < 3 || rest[0].Kind != KindInitial || rest[len(rest)-1].Kind != KindFinal {
		return fmt.Errorf("success timeline must be [title, initial, steps..., final]")
	}
	steps := rest[1 : len(rest)-1]
	for i, seg := range steps {
		if seg.Kind != KindStep || seg.Step == nil {
			return fmt.Errorf("segment %d: want step, got %s", i+2, seg.Kind)
		}
		if seg.Step.Index != i+1 {
			return fmt.Errorf("step segment %d out of order: index %d", i+2, seg.Step.Index)
		}
	}
	return nil
}
