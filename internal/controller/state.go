package controller

import (
	"sync"

	"github.com/Zachdehooge/state-alerts/internal/generator"
)

// State is an in-memory Surface and Input. It records the UI state a
// submission leaves behind so callers can render it afterwards. It is safe
// for concurrent use.
type State struct {
	mu      sync.Mutex
	input   string
	errText string
	loading bool
	view    *generator.View
}

// NewState returns a State whose input field holds input.
func NewState(input string) *State {
	return &State{input: input}
}

// Snapshot is a copy of State at a point in time.
type Snapshot struct {
	Input   string
	Error   string
	Loading bool
	View    *generator.View
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Input: s.input, Error: s.errText, Loading: s.loading, View: s.view}
}

// Page converts the snapshot into the widget page model.
func (s Snapshot) Page() generator.Page {
	return generator.Page{Input: s.Input, Error: s.Error, Loading: s.Loading, View: s.View}
}

func (s *State) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

func (s *State) Reset() {
	s.mu.Lock()
	s.input = ""
	s.mu.Unlock()
}

func (s *State) ShowError(msg string) {
	s.mu.Lock()
	s.errText = msg
	s.mu.Unlock()
}

func (s *State) ClearError() {
	s.mu.Lock()
	s.errText = ""
	s.mu.Unlock()
}

func (s *State) SetLoading(on bool) {
	s.mu.Lock()
	s.loading = on
	s.mu.Unlock()
}

func (s *State) Clear() {
	s.mu.Lock()
	s.view = nil
	s.mu.Unlock()
}

func (s *State) Show(view generator.View) {
	s.mu.Lock()
	s.view = &view
	s.mu.Unlock()
}
