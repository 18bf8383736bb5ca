package report

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()

	sink.Record(Event{Test: "a", Outcome: Pass, Attempts: 1})
	sink.Record(Event{Test: "b", Outcome: Fail, Attempts: 3, Err: errors.New("boom"), Step: "create account"})
	sink.Record(Event{Test: "c", Outcome: Skip})

	events := sink.Events()
	require.Len(t, events, 3)
	require.Equal(t, 1, sink.Failed())
	require.Equal(t, "create account", events[1].Step)
}

func TestMemorySinkConcurrent(t *testing.T) {
	sink := NewMemorySink()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Record(Event{Outcome: Pass})
		}()
	}
	wg.Wait()

	require.Len(t, sink.Events(), 50)
}

func TestTee(t *testing.T) {
	a := NewMemorySink()
	b := NewMemorySink()

	Tee{a, b}.Record(Event{Test: "x", Outcome: Pass})

	require.Len(t, a.Events(), 1)
	require.Len(t, b.Events(), 1)
}
