package solver

import (
	"context"
	"strings"
	"sync"
)

// Engine is the narrow bridge to an equation-solving oracle. Implementations
// must return failures as values inside Result and never panic; tests swap
// in fakes without spawning real processes.
type Engine interface {
	Name() string
	GetModel() string
	Solve(ctx context.Context, input string) Result
}

// CheckInput is the shared pre-flight every engine applies before doing any
// work: empty input fails immediately, the oracle is never invoked.
func CheckInput(input string) (Result, bool) {
	if strings.TrimSpace(input) == "" {
		return Fail(Failure{
			Kind:     FailInvalidInput,
			Message:  "Input must be a non-empty string",
			RawInput: input,
		}), false
	}
	return Result{}, true
}

// Manager keeps a per-chat engine selection with a shared default.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}
