package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"math-animator/api/internal/solver"
)

func TestSummarize(t *testing.T) {
	out := Outcome{Input: "a=1", Result: okResult("a=1", 1), Video: "v.mp4"}
	s := Summarize(out)
	if !s.Success || s.StepCount != 1 || s.Video != "v.mp4" {
		t.Errorf("summary = %+v", s)
	}

	fail := Outcome{Input: "bad", Result: solver.Fail(solver.Failure{
		Kind: solver.FailTimeout, Message: "process timed out", RawInput: "bad",
	})}
	fs := Summarize(fail)
	if fs.Success || fs.Kind != solver.FailTimeout || fs.Error != "process timed out" {
		t.Errorf("failure summary = %+v", fs)
	}
}

func TestSaveResultsPreservesInputOrder(t *testing.T) {
	eng := &fakeEngine{results: map[string]solver.Result{
		"z=9": okResult("z=9", 1),
		"a=1": okResult("a=1", 1),
	}}
	d := newDirector(eng, nil)
	br := d.RunBatch(context.Background(), []string{"z=9", "a=1", "m=5"}, RunOptions{})

	path := filepath.Join(t.TempDir(), "out", "results.json")
	if err := SaveResults(path, br); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// keys appear in input order, not sorted
	zi := strings.Index(string(raw), `"z=9"`)
	ai := strings.Index(string(raw), `"a=1"`)
	mi := strings.Index(string(raw), `"m=5"`)
	if zi < 0 || ai < 0 || mi < 0 || !(zi < ai && ai < mi) {
		t.Errorf("key order wrong: z=%d a=%d m=%d", zi, ai, mi)
	}

	// and the document is valid JSON with the right shapes
	var doc map[string]Summary
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if !doc["z=9"].Success || doc["m=5"].Success {
		t.Errorf("doc = %+v", doc)
	}
}

func TestBatchResultMarshalEscapesKeys(t *testing.T) {
	br := BatchResult{
		Order: []string{`a"b`},
		Items: map[string]Outcome{`a"b`: {Input: `a"b`, Result: okResult(`a"b`, 1)}},
	}
	raw, err := json.Marshal(br)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]Summary
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("marshalled document not parseable: %v", err)
	}
	if _, ok := doc[`a"b`]; !ok {
		t.Error("quoted key lost")
	}
}
