package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"open-baby-backend/internal/domain/events"
)

// EventsRepo es la superficie genérica en memoria: ve la proyección
// base de cualquier variante guardada en el store compartido.
type EventsRepo struct {
	s *Store
}

func NewEventsRepo(s *Store) *EventsRepo {
	return &EventsRepo{s: s}
}

func (r *EventsRepo) Insert(ctx context.Context, e events.Event) (events.Event, error) {
	e = utcEvent(e)
	if e.ID == "" {
		return events.Event{}, events.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.byID[e.ID]; exists {
		return events.Event{}, events.ErrConflict
	}

	r.s.byID[e.ID] = e
	return e, nil
}

func (r *EventsRepo) Get(ctx context.Context, id string) (events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.byID[strings.TrimSpace(id)]
	if !ok {
		return events.Event{}, events.ErrNotFound
	}
	return v.Base(), nil
}

func (r *EventsRepo) List(ctx context.Context, filter events.ListFilter) (int, []events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := make([]events.Event, 0)
	for _, v := range r.s.byID {
		b := v.Base()
		if !inWindow(b.TimeStart, filter.From, filter.To) {
			continue
		}
		matches = append(matches, b)
	}

	total, out := page(matches, func(e events.Event) time.Time { return e.TimeStart }, filter)
	return total, out, nil
}

func (r *EventsRepo) Update(ctx context.Context, id string, e events.Event) (events.Event, error) {
	id = strings.TrimSpace(id)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.byID[id]
	if !ok {
		return events.Event{}, events.ErrNotFound
	}
	if v.Kind() != e.Type {
		return events.Event{}, fmt.Errorf(
			"event %s has type %s, not %s: %w", id, v.Kind(), e.Type, events.ErrInvalidInput)
	}

	e = utcEvent(e)
	e.ID = id

	updated := replaceBase(v, e)
	r.s.byID[id] = updated
	return updated.Base(), nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.byID[id]; !ok {
		return events.ErrNotFound
	}

	delete(r.s.byID, id)
	return nil
}
