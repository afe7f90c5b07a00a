// Package narration delivers spoken prompts ("Tap the circle") to whatever
// output the platform has. Narration is fire-and-forget.
package narration

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Standard narration lines.
const (
	WrongTap = "Oops, try again!"
)

// TapPrompt returns the prompt asking for a shape.
func TapPrompt(shape string) string {
	return "Tap the " + shape
}

// Narrator speaks a line of text.
type Narrator interface {
	Narrate(text string)
}

// Func adapts a function to the Narrator interface.
type Func func(text string)

func (f Func) Narrate(text string) { f(text) }

// Discard drops every line.
var Discard Narrator = Func(func(string) {})

// LogNarrator writes each line to a structured logger.
type LogNarrator struct {
	logger *log.Logger
}

// NewLogNarrator creates a narrator that logs at info level.
func NewLogNarrator(logger *log.Logger) *LogNarrator {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNarrator{logger: logger}
}

func (n *LogNarrator) Narrate(text string) {
	n.logger.Info("narrate", "text", text)
}

// RecorderLimit is how many lines a Recorder keeps.
const RecorderLimit = 64

// Recorder keeps the most recent RecorderLimit narrated lines. The TUI shows
// the latest one as the on-screen prompt; tests use it to assert on narration.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Narrate(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.lines) == RecorderLimit {
		copy(r.lines, r.lines[1:])
		r.lines = r.lines[:RecorderLimit-1]
	}
	r.lines = append(r.lines, text)
}

// Lines returns a copy of the recorded lines, oldest first.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Last returns the most recent line, or "" if nothing was narrated.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.lines) == 0 {
		return ""
	}
	return r.lines[len(r.lines)-1]
}

// Multi fans each line out to several narrators.
type Multi []Narrator

func (m Multi) Narrate(text string) {
	for _, n := range m {
		if n != nil {
			n.Narrate(text)
		}
	}
}
