package timeline

import (
	"math"
	"reflect"
	"testing"

	"math-animator/api/internal/config"
	"math-animator/api/internal/solver"
)

func chainSeq(input string, exprs ...string) *solver.StepSequence {
	// exprs is the expression chain: n steps need n+1 expressions
	n := len(exprs) - 1
	seq := &solver.StepSequence{
		Kind:            solver.KindEquation,
		Input:           input,
		NormalizedInput: input,
	}
	for i := 0; i < n; i++ {
		seq.Steps = append(seq.Steps, solver.SolutionStep{
			Index:       i + 1,
			Total:       n,
			Description: "transform",
			Before:      exprs[i],
			After:       exprs[i+1],
		})
	}
	return seq
}

func newCompiler() *Compiler {
	return NewCompiler(config.DefaultStyle())
}

func TestCompileSegmentCount(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		exprs := make([]string, n+1)
		for i := range exprs {
			exprs[i] = "e"
		}
		tl := newCompiler().Compile(solver.Succeed(chainSeq("5x+3=0", exprs...)))
		if got := len(tl.Segments); got != n+3 {
			t.Errorf("n=%d: %d segments, want %d", n, got, n+3)
		}
		if err := tl.Validate(); err != nil {
			t.Errorf("n=%d: %v", n, err)
		}
	}
}

func TestCompileOrderingAndLayout(t *testing.T) {
	style := config.DefaultStyle()
	tl := NewCompiler(style).Compile(solver.Succeed(
		chainSeq("5x+3=0", "5x+3=0", "5x=-3", "x=-3/5")))

	segs := tl.Segments
	if segs[0].Kind != KindTitle || segs[0].ProblemKind != solver.KindEquation || segs[0].DisplayInput != "5x+3=0" {
		t.Errorf("title = %+v", segs[0])
	}
	if segs[1].Kind != KindInitial || segs[1].Expression != "5x+3=0" {
		t.Errorf("initial = %+v", segs[1])
	}

	// progress is i/N: strictly increasing, starts at 0, never reaches 1
	want := []float64{0, 0.5}
	prev := -1.0
	for i, seg := range segs[2 : len(segs)-1] {
		if math.Abs(seg.Progress-want[i]) > 1e-12 {
			t.Errorf("step %d progress = %v, want %v", i+1, seg.Progress, want[i])
		}
		if seg.Progress <= prev || seg.Progress >= 1 {
			t.Errorf("step %d progress %v out of range", i+1, seg.Progress)
		}
		prev = seg.Progress
		if wantBar := seg.Progress * style.ProgressBarWidth; seg.BarWidth != wantBar {
			t.Errorf("step %d bar width = %v, want %v", i+1, seg.BarWidth, wantBar)
		}
	}
	if segs[2].Indicator != "Step 1 of 2" || segs[3].Indicator != "Step 2 of 2" {
		t.Errorf("indicators = %q, %q", segs[2].Indicator, segs[3].Indicator)
	}

	last := segs[len(segs)-1]
	if last.Kind != KindFinal || last.Expression != "x=-3/5" {
		t.Errorf("final = %+v", last)
	}
}

func TestCompileSingleStep(t *testing.T) {
	tl := newCompiler().Compile(solver.Succeed(chainSeq("5x+3=0", "5x+3=0", "x=-3/5")))
	kinds := []Kind{KindTitle, KindInitial, KindStep, KindFinal}
	if len(tl.Segments) != 4 {
		t.Fatalf("%d segments", len(tl.Segments))
	}
	for i, k := range kinds {
		if tl.Segments[i].Kind != k {
			t.Errorf("segment %d = %s, want %s", i, tl.Segments[i].Kind, k)
		}
	}
	if tl.Segments[2].Progress != 0 {
		t.Errorf("single step progress = %v, want 0", tl.Segments[2].Progress)
	}
}

func TestCompileFailure(t *testing.T) {
	res := solver.Fail(solver.Failure{
		Kind:       solver.FailSolver,
		Message:    "Unable to solve",
		Suggestion: "Check the syntax",
		RawInput:   "x^9=phi",
	})
	tl := newCompiler().Compile(res)
	if len(tl.Segments) != 2 {
		t.Fatalf("%d segments, want 2", len(tl.Segments))
	}
	if tl.Segments[0].Kind != KindTitle || tl.Segments[0].DisplayInput != "x^9=phi" {
		t.Errorf("title = %+v", tl.Segments[0])
	}
	e := tl.Segments[1]
	if e.Kind != KindError || e.Message != "Unable to solve" || e.Suggestion != "Check the syntax" {
		t.Errorf("error = %+v", e)
	}
	if err := tl.Validate(); err != nil {
		t.Error(err)
	}
}

func TestCompileSuggestionsHidden(t *testing.T) {
	style := config.DefaultStyle()
	style.ShowSuggestions = false
	tl := NewCompiler(style).Compile(solver.Fail(solver.Failure{
		Message: "nope", Suggestion: "hint", RawInput: "x",
	}))
	if tl.Segments[1].Suggestion != "" {
		t.Error("suggestion should be suppressed by style")
	}
}

func TestCompileEmptySteps(t *testing.T) {
	// a sequence that slipped past Succeed with zero steps still compiles
	res := solver.Result{Sequence: chainSeq("x", "x")}
	tl := newCompiler().Compile(res)
	if len(tl.Segments) != 2 || tl.Segments[1].Kind != KindError {
		t.Fatalf("segments = %+v", tl.Segments)
	}
	if tl.Segments[1].Message != "no steps produced" {
		t.Errorf("message = %q", tl.Segments[1].Message)
	}
}

func TestCompileIdempotent(t *testing.T) {
	res := solver.Succeed(chainSeq("5x+3=0", "5x+3=0", "5x=-3", "x=-3/5"))
	c := newCompiler()
	a := c.Compile(res)
	b := c.Compile(res)
	if !reflect.DeepEqual(a, b) {
		t.Error("compiling the same sequence twice should be identical")
	}
}

func TestCompileDoesNotMutateSequence(t *testing.T) {
	seq := chainSeq("5x+3=0", "5x+3=0", "x=-3/5")
	before := *seq
	beforeSteps := append([]solver.SolutionStep(nil), seq.Steps...)
	_ = newCompiler().Compile(solver.Succeed(seq))
	if !reflect.DeepEqual(before.Input, seq.Input) || !reflect.DeepEqual(beforeSteps, seq.Steps) {
		t.Error("compile must not mutate its input")
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	bad := []Timeline{
		{},
		{Segments: []Segment{{Kind: KindInitial}}},
		{Segments: []Segment{{Kind: KindTitle}, {Kind: KindFinal}}},
		{Segments: []Segment{
			{Kind: KindTitle},
			{Kind: KindInitial},
			{Kind: KindStep, Step: &solver.SolutionStep{Index: 2}},
			{Kind: KindFinal},
		}},
	}
	for i, tl := range bad {
		if tl.Validate() == nil {
			t.Errorf("case %d: malformed timeline accepted", i)
		}
	}
}
