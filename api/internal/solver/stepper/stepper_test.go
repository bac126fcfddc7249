package stepper

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"math-animator/api/internal/solver"
)

// writeScript drops a fake oracle into a temp dir. The engine's Node is
// pointed at /bin/sh so no Node.js install is needed for tests.
func writeScript(t *testing.T, body string) *Engine {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "oracle.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	e := New(path)
	e.Node = "/bin/sh"
	return e
}

const oneStepDoc = `{"success":true,"type":"equation","processedInput":"5x+3=0","stepCount":1,` +
	`"steps":[{"step":1,"description":"solve","before":"5x+3=0","after":"x=-3/5","hasSubsteps":false,"substepCount":0}]}`

func TestSolveSuccess(t *testing.T) {
	e := writeScript(t, `echo '`+oneStepDoc+`'`)
	res := e.Solve(context.Background(), "5x+3=0")
	if !res.OK() {
		t.Fatalf("unexpected failure: %+v", res.Failure)
	}
	if res.Sequence.Kind != solver.KindEquation || len(res.Sequence.Steps) != 1 {
		t.Errorf("sequence = %+v", res.Sequence)
	}
}

func TestSolveEmptyInputSkipsSubprocess(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "invoked")
	e := writeScript(t, `touch `+marker)

	res := e.Solve(context.Background(), "")
	if res.OK() || res.Failure.Kind != solver.FailInvalidInput {
		t.Fatalf("want invalid_input, got %+v", res)
	}
	if _, err := os.Stat(marker); err == nil {
		t.Error("oracle was invoked for empty input")
	}
}

func TestSolveNonZeroExit(t *testing.T) {
	e := writeScript(t, `echo 'cannot parse input' >&2; exit 1`)
	e.MaxRetries = 0
	res := e.Solve(context.Background(), "garbage")
	if res.OK() {
		t.Fatal("want failure")
	}
	if res.Failure.Kind != solver.FailProcess {
		t.Errorf("kind = %s, want process", res.Failure.Kind)
	}
	if res.Failure.Message != "cannot parse input" {
		t.Errorf("message should come from stderr, got %q", res.Failure.Message)
	}
}

func TestSolveNonZeroExitEmptyStderr(t *testing.T) {
	e := writeScript(t, `exit 3`)
	e.MaxRetries = 0
	res := e.Solve(context.Background(), "x=1")
	if res.OK() || res.Failure.Message != "unknown error from math stepper" {
		t.Errorf("want generic message, got %+v", res)
	}
}

func TestSolveTimeoutRetriesThenFails(t *testing.T) {
	dir := t.TempDir()
	count := filepath.Join(dir, "count")
	e := writeScript(t, `echo x >> `+count+`; sleep 5`)
	e.Timeout = 100 * time.Millisecond
	e.MaxRetries = 2

	start := time.Now()
	res := e.Solve(context.Background(), "5x+3=0")
	if res.OK() {
		t.Fatal("want timeout failure")
	}
	if res.Failure.Kind != solver.FailTimeout {
		t.Errorf("kind = %s, want timeout", res.Failure.Kind)
	}
	if res.Failure.Message != "process timed out" {
		t.Errorf("message = %q", res.Failure.Message)
	}
	// one initial attempt + MaxRetries
	b, err := os.ReadFile(count)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(b) / 2; got != 3 {
		t.Errorf("oracle invoked %d times, want 3", got)
	}
	// the subprocess must be killed, not waited out
	if time.Since(start) > 3*time.Second {
		t.Error("timed-out subprocess was left running")
	}
}

func TestSolveParseFailureNotRetried(t *testing.T) {
	dir := t.TempDir()
	count := filepath.Join(dir, "count")
	e := writeScript(t, `echo x >> `+count+`; echo 'this is not json'`)
	e.MaxRetries = 2

	res := e.Solve(context.Background(), "5x+3=0")
	if res.OK() || res.Failure.Kind != solver.FailOutput {
		t.Fatalf("want output failure, got %+v", res)
	}
	b, err := os.ReadFile(count)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(b) / 2; got != 1 {
		t.Errorf("parse failures must not be retried, oracle invoked %d times", got)
	}
}

func TestSolveRetryRecovers(t *testing.T) {
	dir := t.TempDir()
	count := filepath.Join(dir, "count")
	// fail the first attempt, succeed on the second
	e := writeScript(t, `echo x >> `+count+`
if [ "$(wc -c < `+count+`)" -le 2 ]; then exit 1; fi
echo '`+oneStepDoc+`'`)
	e.MaxRetries = 2

	res := e.Solve(context.Background(), "5x+3=0")
	if !res.OK() {
		t.Fatalf("retry should have recovered: %+v", res.Failure)
	}
}

func TestSolverFailureDocument(t *testing.T) {
	e := writeScript(t, `echo '{"success":false,"error":"Unable to solve","suggestion":"Try a linear equation"}'`)
	res := e.Solve(context.Background(), "x^9=phi")
	if res.OK() {
		t.Fatal("want solver-reported failure")
	}
	if res.Failure.Kind != solver.FailSolver || res.Failure.Suggestion != "Try a linear equation" {
		t.Errorf("failure = %+v", res.Failure)
	}
}
