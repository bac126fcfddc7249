package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"math-animator/api/internal/pipeline"
	"math-animator/api/internal/render"
	"math-animator/api/internal/solver"
	"math-animator/api/internal/store"
	"math-animator/api/internal/util"
)

// maxStepsPerMessage keeps /solve replies inside Telegram's message limit.
const maxStepsPerMessage = 10

func (r *Router) handleSolve(cid int64, input string) {
	if input == "" {
		r.sendMarkdown(cid, "❌ Please provide an equation!\n\nExample: `/solve 5x+3=0`")
		return
	}
	ctx := context.Background()
	r.sendMarkdown(cid, "🔄 Solving: `"+input+"`")

	res := r.solveCached(ctx, cid, input)
	if !res.OK() {
		msg := "❌ *Error:* " + res.Failure.Message
		if res.Failure.Suggestion != "" {
			msg += "\n\n💡 *Suggestion:* " + res.Failure.Suggestion
		}
		r.sendMarkdown(cid, msg)
		return
	}
	r.sendMarkdown(cid, formatSolution(res.Sequence))
}

// solveCached consults the Postgres cache first, solves on a miss, and
// stores successful results back.
func (r *Router) solveCached(ctx context.Context, cid int64, input string) solver.Result {
	eng := r.EngManager.Get(cid)
	hash := util.SHA256Hex([]byte(input))

	if r.SolveRepo != nil {
		if res, err := r.SolveRepo.Find(ctx, hash, eng.Name(), eng.GetModel(), r.CacheAge); err == nil {
			return res
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Printf("solve cache lookup: %v", err)
		}
	}

	res := eng.Solve(ctx, input)
	if res.OK() && r.SolveRepo != nil {
		if err := r.SolveRepo.Upsert(ctx, hash, eng.Name(), eng.GetModel(), input, res); err != nil {
			log.Printf("solve cache upsert: %v", err)
		}
	}
	return res
}

func formatSolution(seq *solver.StepSequence) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ *Solved:* `%s`\n\n", seq.Input)
	fmt.Fprintf(&b, "*Type:* %s\n*Steps:* %d\n\n", seq.Kind, len(seq.Steps))

	for i, st := range seq.Steps {
		if i == maxStepsPerMessage {
			fmt.Fprintf(&b, "... and %d more steps\n\n", len(seq.Steps)-maxStepsPerMessage)
			break
		}
		fmt.Fprintf(&b, "*Step %d:* %s\n`%s`\n↓\n`%s`\n\n", st.Index, st.Description, st.Before, st.After)
	}
	fmt.Fprintf(&b, "Use `/animate %s` to create a video!", seq.Input)
	return b.String()
}

func (r *Router) handleAnimate(cid int64, input string) {
	if input == "" {
		r.sendMarkdown(cid, "❌ Please provide an equation!\n\nExample: `/animate 5x+3=0`")
		return
	}
	ctx := context.Background()
	hash := util.SHA256Hex([]byte(input))
	const quality = "l" // low tier renders fast enough for chat

	// A previously uploaded animation is re-sent by file ID, no rendering.
	if r.VideoRepo != nil {
		if fileID, err := r.VideoRepo.Find(ctx, hash, quality, r.CacheAge); err == nil {
			vid := tgbotapi.NewVideo(cid, tgbotapi.FileID(fileID))
			vid.Caption = "🎬 Animation for: " + input
			if _, err := r.Bot.Send(vid); err == nil {
				return
			}
			log.Printf("cached video send failed, re-rendering: %v", err)
		}
	}

	r.sendMarkdown(cid, "🎬 Creating animation for: `"+input+"`\n\n⏳ This may take 30-60 seconds...")

	d := pipeline.Director{
		Solver:   r.EngManager.Get(cid),
		Compiler: r.Compiler,
		Renderer: r.Renderer,
		Quiet:    true,
	}
	out := d.Run(ctx, input, pipeline.RunOptions{
		Animate: true,
		Render:  render.Options{Quality: quality},
	})

	if !out.Result.OK() {
		msg := "❌ Cannot create animation:\n" + out.Result.Failure.Message
		if out.Result.Failure.Suggestion != "" {
			msg += "\n\n💡 " + out.Result.Failure.Suggestion
		}
		r.sendMarkdown(cid, msg)
		return
	}
	if out.RenderErr != nil || out.Video == "" {
		r.sendMarkdown(cid, "❌ Failed to create animation.\n\nTry `/solve "+input+"` for the text solution.")
		return
	}

	vid := tgbotapi.NewVideo(cid, tgbotapi.FilePath(out.Video))
	vid.Caption = fmt.Sprintf("🎬 Animation for: %s\nSteps: %d", input, len(out.Result.Sequence.Steps))
	sent, err := r.Bot.Send(vid)
	if err != nil {
		log.Printf("video upload: %v", err)
		r.send(cid, "❌ Rendered the animation but could not upload it. Please try again.")
		return
	}
	if r.VideoRepo != nil && sent.Video != nil {
		if err := r.VideoRepo.Upsert(ctx, hash, quality, sent.Video.FileID); err != nil {
			log.Printf("video cache upsert: %v", err)
		}
	}
}
