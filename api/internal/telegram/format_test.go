package telegram

import (
	"fmt"
	"strings"
	"testing"

	"math-animator/api/internal/solver"
)

func solvedSeq(n int) *solver.StepSequence {
	seq := &solver.StepSequence{
		Kind:            solver.KindEquation,
		Input:           "5x+3=0",
		NormalizedInput: "5x+3=0",
	}
	for i := 1; i <= n; i++ {
		seq.Steps = append(seq.Steps, solver.SolutionStep{
			Index:       i,
			Total:       n,
			Description: fmt.Sprintf("transform %d", i),
			Before:      "a",
			After:       "b",
		})
	}
	return seq
}

func TestFormatSolution(t *testing.T) {
	msg := formatSolution(solvedSeq(2))
	for _, want := range []string{"*Solved:*", "*Steps:* 2", "*Step 1:*", "*Step 2:*", "/animate 5x+3=0"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatSolutionCapsSteps(t *testing.T) {
	msg := formatSolution(solvedSeq(14))
	if !strings.Contains(msg, "... and 4 more steps") {
		t.Errorf("long solutions must be capped:\n%s", msg)
	}
	if strings.Contains(msg, "*Step 11:*") {
		t.Error("steps past the cap should not be listed")
	}
}
