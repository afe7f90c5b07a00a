// Package stats accumulates per-level tap outcomes into the performance
// summary used for difficulty adjustment.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/shape-explorers/internal/shapes"
)

// Values reported before there is any evidence. No attempts means no sign
// of struggle, so the defaults are optimistic.
const (
	EmptySuccessRate    = 1.0
	EmptyLatencySeconds = 5.0
	NoErrors            = "None"
)

// ErrorPattern identifies a mistaken tap: the shape tapped and the shape asked for.
type ErrorPattern struct {
	Mistaken shapes.Type
	Target   shapes.Type
}

// Snapshot is the compact performance summary of a level.
type Snapshot struct {
	CorrectTaps           int
	TotalTaps             int
	SuccessRate           float64 // Correct taps / total taps, in [0, 1]
	AverageLatencySeconds float64 // Mean time to a correct tap
	ErrorSummary          string
}

// Aggregator accumulates tap outcomes for the current level.
// The zero value is ready to use. It is owned by a single session and is not safe for concurrent use.
type Aggregator struct {
	correctTaps    int
	totalTaps      int
	correctLatency time.Duration
	errorCounts    map[ErrorPattern]int
	errorOrder     []ErrorPattern // First-occurrence order for stable summaries
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	a := &Aggregator{}
	a.Reset()
	return a
}

// RecordHit records a correct tap that took latency since the prompt.
func (a *Aggregator) RecordHit(latency time.Duration) {
	if latency < 0 {
		latency = 0
	}
	a.correctTaps++
	a.totalTaps++
	a.correctLatency += latency
}

// RecordMiss records a tap on mistaken while target was requested.
func (a *Aggregator) RecordMiss(mistaken, target shapes.Type) {
	a.totalTaps++
	if a.errorCounts == nil {
		a.errorCounts = make(map[ErrorPattern]int)
	}
	key := ErrorPattern{Mistaken: mistaken, Target: target}
	if _, ok := a.errorCounts[key]; !ok {
		a.errorOrder = append(a.errorOrder, key)
	}
	a.errorCounts[key]++
}

// Reset clears all counters and error patterns.
func (a *Aggregator) Reset() {
	a.correctTaps = 0
	a.totalTaps = 0
	a.correctLatency = 0
	a.errorCounts = make(map[ErrorPattern]int)
	a.errorOrder = nil
}

// Snapshot summarizes the recorded outcomes without modifying them.
func (a *Aggregator) Snapshot() Snapshot {
	snap := Snapshot{
		CorrectTaps:           a.correctTaps,
		TotalTaps:             a.totalTaps,
		SuccessRate:           EmptySuccessRate,
		AverageLatencySeconds: EmptyLatencySeconds,
		ErrorSummary:          a.errorSummary(),
	}

	if a.totalTaps > 0 {
		snap.SuccessRate = float64(a.correctTaps) / float64(a.totalTaps)
	}
	if a.correctTaps > 0 {
		snap.AverageLatencySeconds = a.correctLatency.Seconds() / float64(a.correctTaps)
	}

	return snap
}

// errorCount returns how often mistaken was tapped instead of target.
func (a *Aggregator) errorCount(mistaken, target shapes.Type) int {
	return a.errorCounts[ErrorPattern{Mistaken: mistaken, Target: target}]
}

// errorSummary renders the error patterns as human-readable text.
func (a *Aggregator) errorSummary() string {
	if len(a.errorOrder) == 0 {
		return NoErrors
	}

	parts := make([]string, 0, len(a.errorOrder))
	for _, p := range a.errorOrder {
		parts = append(parts, fmt.Sprintf("tapped %s instead of %s (%d times)", p.Mistaken, p.Target, a.errorCounts[p]))
	}
	return strings.Join(parts, ", ")
}
