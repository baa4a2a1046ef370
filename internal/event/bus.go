// Package event carries domain lifecycle events between stores without
// direct coupling. Dispatch is synchronous and awaited at the publish
// site, so a caller that publishes an event knows the full cascade has
// run by the time Publish returns. The fire-and-forget alternative hides
// subscriber failures from the triggering request; awaiting the dispatch
// closes that gap and makes cascade completion deterministic.
package event

import "log/slog"

type Kind string

const (
	KindHouseholdCreated      Kind = "household.created"
	KindHouseholdDeleted      Kind = "household.deleted"
	KindClassificationCreated Kind = "classification.created"
	KindClassificationDeleted Kind = "classification.deleted"
)

// Event is a typed domain event. Kind selects the subscriber list it is
// dispatched to.
type Event interface {
	Kind() Kind
}

type HouseholdCreated struct {
	HouseholdID int64
}

func (HouseholdCreated) Kind() Kind { return KindHouseholdCreated }

type HouseholdDeleted struct {
	HouseholdID int64
}

func (HouseholdDeleted) Kind() Kind { return KindHouseholdDeleted }

type ClassificationCreated struct {
	HouseholdID      int64
	ClassificationID int64
}

func (ClassificationCreated) Kind() Kind { return KindClassificationCreated }

type ClassificationDeleted struct {
	HouseholdID      int64
	ClassificationID int64
}

func (ClassificationDeleted) Kind() Kind { return KindClassificationDeleted }

// Handler processes one event. A handler error does not stop the
// remaining handlers for the same event.
type Handler func(ev Event) error

// Bus maps event kinds to ordered subscriber lists. Subscribe during
// wiring, before any Publish; the bus is not safe for concurrent
// subscription.
type Bus struct {
	handlers map[Kind][]Handler
	logger   *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[Kind][]Handler),
		logger:   logger,
	}
}

func (b *Bus) Subscribe(kind Kind, h Handler) {
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Publish dispatches ev to every subscriber in registration order and
// returns the first handler error. Later subscribers still run after a
// failure; there is no rollback of earlier ones.
func (b *Bus) Publish(ev Event) error {
	var first error
	for _, h := range b.handlers[ev.Kind()] {
		if err := h(ev); err != nil {
			b.logger.Error("event handler failed", "event", string(ev.Kind()), "error", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}
