package telegram

import (
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"math-animator/api/internal/render"
	"math-animator/api/internal/solver"
	"math-animator/api/internal/solver/gemini"
	"math-animator/api/internal/solver/stepper"
	"math-animator/api/internal/store"
	"math-animator/api/internal/timeline"
)

// Engines are the concrete solver backends a chat can switch between.
type Engines struct {
	Stepper *stepper.Engine
	Gemini  *gemini.Engine
}

type Router struct {
	Bot        *tgbotapi.BotAPI
	EngManager *solver.Manager
	Compiler   *timeline.Compiler
	Renderer   render.Renderer

	// caches; nil disables caching
	SolveRepo *store.SolveRepo
	VideoRepo *store.VideoRepo
	CacheAge  time.Duration
}

const helpText = `🧮 *Math Animation Bot*

I solve equations step by step and turn the solution into an animation.

*Commands:*
/solve <equation> — step-by-step solution
/animate <equation> — render an animation (takes a while)
/engine [stepper|gemini [model]] — switch solver backend
/health — liveness check

*Examples:*
` + "`/solve 5x+3=0`\n`/solve x^2+2x+1=0`\n`/animate 2x-6=0`" + `

Supported: linear and quadratic equations, expressions, square roots.`

func (r *Router) HandleUpdate(upd tgbotapi.Update, engines Engines) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		args := strings.TrimSpace(upd.Message.CommandArguments())
		switch upd.Message.Command() {
		case "start":
			r.sendMarkdown(cid, "👋 *Welcome!*\n\nSend `/solve 5x+3=0` to see a step-by-step solution, or /help for everything I can do.")
		case "help":
			r.sendMarkdown(cid, helpText)
		case "health":
			r.send(cid, "✅ OK")
		case "solve":
			r.handleSolve(cid, args)
		case "animate":
			r.handleAnimate(cid, args)
		case "engine":
			r.handleEngine(cid, args, engines)
		default:
			r.send(cid, "Unknown command. Try /help.")
		}
		return
	}

	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return
	}
	// Free text that smells like math gets nudged toward /solve.
	if strings.ContainsAny(text, "=xX") || strings.Contains(strings.ToLower(text), "sqrt") {
		r.sendMarkdown(cid, "💡 Did you want to solve this?\nUse: `/solve "+text+"`\nOr: `/animate "+text+"`")
		return
	}
	r.send(cid, "👋 Hi! I'm a math solver bot. Use /help to see what I can do.")
}

func (r *Router) handleEngine(cid int64, args string, engines Engines) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		cur := r.EngManager.Get(cid)
		r.send(cid, "Current engine: "+cur.Name()+" ("+cur.GetModel()+")\nUsage:\n/engine stepper\n/engine gemini [model]")
		return
	}
	name := strings.ToLower(fields[0])
	switch name {
	case "stepper":
		r.EngManager.Set(cid, engines.Stepper)
	case "gemini":
		if len(fields) > 1 {
			engines.Gemini.Model = fields[1]
		}
		r.EngManager.Set(cid, engines.Gemini)
	default:
		r.send(cid, "Unknown engine. Available: stepper | gemini")
		return
	}
	r.send(cid, "✅ Engine: "+name)
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}

func (r *Router) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := r.Bot.Send(msg); err != nil {
		// Markdown can fail on user-supplied underscores etc; resend plain.
		_, _ = r.Bot.Send(tgbotapi.NewMessage(chatID, text))
	}
}
