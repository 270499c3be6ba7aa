package ui

import (
	"sync"

	"github.com/arthur-debert/nulink/pkg/style"
	"github.com/arthur-debert/nulink/pkg/types"
)

// Level is the severity of a recorded message
type Level string

const (
	LevelInfo    Level = "info"
	LevelError   Level = "error"
	LevelSuccess Level = "success"
)

// Message is one reported message
type Message struct {
	Level Level
	Text  string
	Hints []style.Color
}

// Recorder is an Output that keeps every message in memory
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
	Reports  []*types.StatusReport
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(level Level, msg func() string, hints []style.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, Message{Level: level, Text: msg(), Hints: hints})
}

func (r *Recorder) Info(msg func() string, hints ...style.Color) {
	r.add(LevelInfo, msg, hints)
}
func (r *Recorder) Error(msg func() string, hints ...style.Color) {
	r.add(LevelError, msg, hints)
}
func (r *Recorder) Success(msg func() string, hints ...style.Color) {
	r.add(LevelSuccess, msg, hints)
}

// RenderStatus records the report
func (r *Recorder) RenderStatus(report *types.StatusReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reports = append(r.Reports, report)
	return nil
}

// Texts returns the texts of messages at level, in order
func (r *Recorder) Texts(level Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, m := range r.Messages {
		if m.Level == level {
			out = append(out, m.Text)
		}
	}
	return out
}
