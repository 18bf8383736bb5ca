// Package report forwards per-test outcomes to an external report sink.
//
// Sinks are passed explicitly through the runner rather than held in any
// ambient per-goroutine state.
package report

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Outcome of a single test.
type Outcome string

const (
	Pass Outcome = "pass"
	Fail Outcome = "fail"
	Skip Outcome = "skip"
)

// Event captures the outcome of one test invocation.
type Event struct {
	Suite    string
	Test     string
	Outcome  Outcome
	Step     string // step that failed, empty on pass
	Attempts int
	Elapsed  time.Duration
	Err      error
}

// Sink receives test events. Implementations must be safe for concurrent use.
type Sink interface {
	Record(Event)
}

// LogSink writes events to a zerolog logger.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink returns a Sink logging through logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Record logs one event.
func (s *LogSink) Record(e Event) {
	var logEvent *zerolog.Event
	if e.Outcome == Fail {
		logEvent = s.logger.Error().Err(e.Err).Str("step", e.Step)
	} else {
		logEvent = s.logger.Info()
	}

	logEvent.
		Str("suite", e.Suite).
		Str("test", e.Test).
		Str("outcome", string(e.Outcome)).
		Int("attempts", e.Attempts).
		Str("elapsed", e.Elapsed.String()).
		Msg("test finished")
}

// MemorySink collects events in memory for summaries and tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Record appends one event.
func (s *MemorySink) Record(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, e)
}

// Events returns a copy of all recorded events.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)

	return out
}

// Failed reports how many recorded events failed.
func (s *MemorySink) Failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.events {
		if e.Outcome == Fail {
			n++
		}
	}

	return n
}

// Tee fans one event out to several sinks.
type Tee []Sink

// Record forwards the event to every sink.
func (t Tee) Record(e Event) {
	for _, s := range t {
		s.Record(e)
	}
}
