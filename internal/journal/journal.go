// Package journal maintains the bounded rolling history of validated
// entries and derived interactions.
package journal

import (
	"github.com/rs/zerolog"

	"github.com/pebblelab/pebble-journal/internal/model"
)

// Journal holds two independent bounded, insertion-ordered logs:
// validated entries and (entry, response) interactions. Both logs are
// created with the same fixed capacity and never resized; the oldest
// record is evicted inline when a log overflows.
//
// The journal is single-writer. Hosts that mutate it from concurrent
// callers must serialize access themselves.
type Journal struct {
	capacity     int
	debug        bool
	log          zerolog.Logger
	entries      []*model.Entry
	interactions []*model.Interaction
}

// New creates a journal with the given capacity. The debug flag gates
// diagnostic dumps of validated entries; it is threaded explicitly so
// the journal stays testable without global state.
func New(capacity int, debug bool, log zerolog.Logger) *Journal {
	if capacity < 1 {
		capacity = 1
	}
	return &Journal{
		capacity:     capacity,
		debug:        debug,
		log:          log,
		entries:      make([]*model.Entry, 0, capacity),
		interactions: make([]*model.Interaction, 0, capacity),
	}
}

// Capacity returns the fixed size shared by both logs.
func (j *Journal) Capacity() int { return j.capacity }

// AddEntry validates the raw payload and appends the resulting entry.
// When response is non-empty an interaction is derived and appended to
// the interactions log under the same eviction rule. Validation
// failures are logged and yield nil; they never propagate to the
// caller.
func (j *Journal) AddEntry(raw map[string]any, response string) *model.Entry {
	entry, err := model.Parse(raw)
	if err != nil {
		entriesRejectedTotal.Inc()
		j.log.Error().Stack().Err(err).Msg("failed to instantiate entry")
		return nil
	}

	if j.debug {
		j.log.Info().Interface("entry", entry).Msg("entry created")
	}

	j.entries = appendBounded(j.entries, entry, j.capacity, "entries")
	entriesAddedTotal.Inc()

	if response != "" {
		j.interactions = appendBounded(j.interactions, model.NewInteraction(entry, response), j.capacity, "interactions")
	}
	return entry
}

// AddText synthesizes a conversation-shaped payload from free text and
// runs it through the same validation path as device payloads.
func (j *Journal) AddText(text, response string) *model.Entry {
	return j.AddEntry(model.BasicPayload(text), response)
}

// appendBounded appends v, dropping the oldest element first when the
// log is at capacity. Strict FIFO: insertion order is the only order.
func appendBounded[T any](log []T, v T, capacity int, name string) []T {
	if len(log) == capacity {
		copy(log, log[1:])
		log = log[:len(log)-1]
		evictionsTotal.WithLabelValues(name).Inc()
	}
	return append(log, v)
}

// LastEntry returns the most recently inserted entry, or nil when the
// log is empty.
func (j *Journal) LastEntry() *model.Entry {
	if len(j.entries) == 0 {
		return nil
	}
	return j.entries[len(j.entries)-1]
}

// Entries returns an ordered snapshot of the entries log.
func (j *Journal) Entries() []*model.Entry {
	out := make([]*model.Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// EntryByID returns the first entry with the given id, or nil.
func (j *Journal) EntryByID(id string) *model.Entry {
	for _, e := range j.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// EntryAt returns the entry at the given position, or nil when out of range.
func (j *Journal) EntryAt(index int) *model.Entry {
	if index < 0 || index >= len(j.entries) {
		return nil
	}
	return j.entries[index]
}

// LastInteraction returns the most recent interaction, or nil.
func (j *Journal) LastInteraction() *model.Interaction {
	if len(j.interactions) == 0 {
		return nil
	}
	return j.interactions[len(j.interactions)-1]
}

// Interactions returns an ordered snapshot of the interactions log.
func (j *Journal) Interactions() []*model.Interaction {
	out := make([]*model.Interaction, len(j.interactions))
	copy(out, j.interactions)
	return out
}

// InteractionByID returns the first interaction derived from the entry
// with the given id, or nil.
func (j *Journal) InteractionByID(id string) *model.Interaction {
	for _, it := range j.interactions {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// InteractionAt returns the interaction at the given position, or nil
// when out of range.
func (j *Journal) InteractionAt(index int) *model.Interaction {
	if index < 0 || index >= len(j.interactions) {
		return nil
	}
	return j.interactions[index]
}
