// Command animator solves a math input (or a batch of them) and optionally
// renders the step-by-step animation through the external compositor.
//
// Usage:
//
//	animator -e "5x+3=0" -animate
//	animator -f equations.txt -batch -save results.json
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"math-animator/api/internal/config"
	"math-animator/api/internal/pipeline"
	"math-animator/api/internal/render"
	"math-animator/api/internal/solver"
	"math-animator/api/internal/solver/gemini"
	"math-animator/api/internal/solver/stepper"
	"math-animator/api/internal/timeline"
)

func main() {
	var (
		equation  = flag.String("e", "", "single equation or expression to process")
		file      = flag.String("f", "", "file containing inputs, one per line (# comments skipped)")
		batch     = flag.Bool("batch", false, "batch-process the file with a summary")
		animate   = flag.Bool("animate", false, "render an animation via the compositor")
		quality   = flag.String("q", "l", "animation quality: l | m | h | k")
		noPreview = flag.Bool("no-preview", false, "do not open a preview after rendering")
		saveFile  = flag.String("save", "", "save results to a JSON file")
		preset    = flag.String("preset", "", "style preset: fast | presentation | educational | minimal")
		engine    = flag.String("engine", "stepper", "solver engine: stepper | gemini")
		quiet     = flag.Bool("quiet", false, "suppress output")
	)
	flag.Parse()

	if *equation == "" && *file == "" {
		flag.Usage()
		os.Exit(1)
	}
	if !*quiet {
		printBanner()
	}

	cfg := config.Load()
	eng := buildEngine(cfg, *engine)
	d := &pipeline.Director{
		Solver:   eng,
		Compiler: timeline.NewCompiler(config.StylePreset(*preset)),
		Renderer: render.NewCompositor(cfg.RendererBin, cfg.MediaDir),
		Quiet:    *quiet,
	}

	// Interrupts stop the batch before the next input; the in-flight solve
	// is bounded by the engine timeout.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := pipeline.RunOptions{
		Animate: *animate,
		Render: render.Options{
			Quality: *quality,
			Preview: !*noPreview,
		},
	}

	var br pipeline.BatchResult
	switch {
	case *equation != "":
		out := d.Run(ctx, *equation, opts)
		if !*quiet {
			report(out)
		}
		br = pipeline.BatchResult{
			Order: []string{*equation},
			Items: map[string]pipeline.Outcome{*equation: out},
		}
		if out.Result.OK() {
			br.Succeeded = 1
		} else {
			br.Failed = 1
		}
	default:
		inputs, err := readInputs(*file)
		if err != nil {
			log.Fatalf("reading %s: %v", *file, err)
		}
		if len(inputs) == 0 {
			log.Fatalf("no inputs found in %s", *file)
		}
		br = d.RunBatch(ctx, inputs, opts)
		if *batch && !*quiet {
			fmt.Printf("\nBATCH SUMMARY\n  total: %d\n  ok:    %d\n  failed: %d\n",
				len(br.Order), br.Succeeded, br.Failed)
		}
	}

	if *saveFile != "" {
		if err := pipeline.SaveResults(*saveFile, br); err != nil {
			log.Fatalf("saving results: %v", err)
		}
		if !*quiet {
			fmt.Printf("results saved to %s\n", *saveFile)
		}
	}

	if br.Failed > 0 && br.Succeeded == 0 {
		os.Exit(1)
	}
}

func buildEngine(cfg *config.Config, name string) solver.Engine {
	switch name {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Fatal("engine gemini requires GEMINI_API_KEY")
		}
		return gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	case "stepper":
		e := stepper.New(cfg.StepperJS)
		e.Node = cfg.StepperNode
		e.Timeout = cfg.SolverTimeout
		e.MaxRetries = cfg.MaxRetries
		return e
	default:
		log.Fatalf("unknown engine %q (want stepper or gemini)", name)
		return nil
	}
}

func readInputs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var inputs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	return inputs, sc.Err()
}

func report(out pipeline.Outcome) {
	if !out.Result.OK() {
		f := out.Result.Failure
		fmt.Printf("error: %s\n", f.Message)
		if f.Suggestion != "" {
			fmt.Printf("suggestion: %s\n", f.Suggestion)
		}
		return
	}
	seq := out.Result.Sequence
	fmt.Printf("type: %s\nsteps: %d\n", seq.Kind, len(seq.Steps))
	if seq.NormalizedInput != seq.Input {
		fmt.Printf("processed as: %s\n", seq.NormalizedInput)
	}
	fmt.Println()
	for _, st := range seq.Steps {
		fmt.Printf("Step %d: %s\n  %s\n  -> %s\n", st.Index, st.Description, st.Before, st.After)
		if st.HasSubsteps {
			fmt.Printf("  [substeps: %d]\n", st.SubstepCount)
		}
	}
	if out.Video != "" {
		fmt.Printf("\nvideo saved to %s\n", out.Video)
	}
	if out.RenderErr != nil {
		fmt.Printf("\nanimation failed: %v\n", out.RenderErr)
	}
}

func printBanner() {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  Math Animation System - step-by-step solver & animator")
	fmt.Println(strings.Repeat("=", 60))
}
