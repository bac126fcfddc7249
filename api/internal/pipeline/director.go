// Package pipeline drives one input through solve -> compile -> render and
// batches many. Strictly sequential; the only blocking call is the oracle
// subprocess inside the solver engine.
package pipeline

import (
	"context"
	"log"

	"math-animator/api/internal/render"
	"math-animator/api/internal/solver"
	"math-animator/api/internal/timeline"
)

type Director struct {
	Solver   solver.Engine
	Compiler *timeline.Compiler
	Renderer render.Renderer
	Quiet    bool
}

type RunOptions struct {
	Animate bool
	Render  render.Options
}

type Outcome struct {
	Input     string
	Result    solver.Result
	Timeline  timeline.Timeline
	Video     string // artifact path, set only when rendered
	RenderErr error
}

// Run always solves before compiling; a timeline is never built without a
// solve attempt. Rendering is skipped for failed solves, matching the rule
// that an animation is only produced for a renderable derivation.
func (d *Director) Run(ctx context.Context, input string, opts RunOptions) Outcome {
	res := d.Solver.Solve(ctx, input)
	tl := d.Compiler.Compile(res)
	out := Outcome{Input: input, Result: res, Timeline: tl}

	if !res.OK() {
		d.logf("error solving %q: %s", input, res.Failure.Message)
		if res.Failure.Suggestion != "" {
			d.logf("suggestion: %s", res.Failure.Suggestion)
		}
		return out
	}
	d.logf("solved %q: %s, %d steps", input, res.Sequence.Kind, len(res.Sequence.Steps))

	if opts.Animate && d.Renderer != nil {
		art, err := d.Renderer.Render(ctx, tl, d.Compiler.Style, opts.Render)
		if err != nil {
			out.RenderErr = err
			d.logf("render failed for %q: %v", input, err)
			return out
		}
		out.Video = art.Path
		d.logf("video saved to %s", art.Path)
	}
	return out
}

type BatchResult struct {
	Order     []string // first-occurrence input order
	Items     map[string]Outcome
	Succeeded int
	Failed    int
}

// RunBatch processes inputs one at a time and keeps going past individual
// failures. Cancellation is checked between inputs only: the current solve
// finishes, the next one never starts. Duplicate inputs overwrite (last
// write wins) but keep their original position in Order.
func (d *Director) RunBatch(ctx context.Context, inputs []string, opts RunOptions) BatchResult {
	br := BatchResult{Items: make(map[string]Outcome, len(inputs))}
	for i, in := range inputs {
		if ctx.Err() != nil {
			d.logf("batch interrupted after %d/%d inputs", i, len(inputs))
			break
		}
		d.logf("[%d/%d] %s", i+1, len(inputs), in)
		out := d.Run(ctx, in, opts)
		if _, seen := br.Items[in]; !seen {
			br.Order = append(br.Order, in)
		}
		br.Items[in] = out
		if out.Result.OK() {
			br.Succeeded++
		} else {
			br.Failed++
		}
	}
	d.logf("batch done: %d ok, %d failed", br.Succeeded, br.Failed)
	return br
}

func (d *Director) logf(format string, args ...any) {
	if !d.Quiet {
		log.Printf(format, args...)
	}
}
