// Package gemini is an LLM-backed solver engine. It asks the model for the
// same strict JSON document the mathsteps oracle prints, so everything
// downstream of solver.ParseDocument is shared with the subprocess bridge.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"math-animator/api/internal/solver"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

const system = `You are a step-by-step math solver. The user sends one equation or expression.
Solve equations for the variable; simplify expressions. Show every transformation.
Return STRICT JSON, nothing else:
{
  "success": true,
  "type": "equation" | "expression",
  "processedInput": string,
  "stepCount": integer,
  "steps": [
    {
      "step": integer,
      "description": string,
      "before": string,
      "after": string,
      "hasSubsteps": false,
      "substepCount": 0
    }
  ]
}
"type" is "equation" iff the input contains "=". "stepCount" must equal the
number of steps. "step" is 1-based and contiguous. Each step's "before" must
equal the previous step's "after"; expressions are plain math text.
If the input is not valid math, return:
{"success": false, "error": string, "suggestion": string}`

func (e *Engine) Solve(ctx context.Context, input string) solver.Result {
	if res, ok := solver.CheckInput(input); !ok {
		return res
	}
	raw, err := e.generate(ctx, input)
	if err != nil {
		return solver.Fail(solver.Failure{
			Kind:     solver.FailProcess,
			Message:  err.Error(),
			RawInput: input,
		})
	}
	return solver.ParseDocument([]byte(raw), input)
}

func (e *Engine) generate(ctx context.Context, input string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(e.Model))
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	// Retries for 5xx/transient failures; a parseable-but-wrong answer is
	// classified upstream and not worth another call.
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, genai.Text(input))
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		if txt := firstText(resp); txt != "" {
			return txt, nil
		}
		lastErr = fmt.Errorf("gemini: empty response")
	}
	return "", lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
