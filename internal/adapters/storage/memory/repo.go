package memory

import (
	"context"
	"strings"
	"time"

	"open-baby-backend/internal/domain/events"
)

// Repo es la unidad de persistencia en memoria por subtipo, con el
// mismo contrato que el adapter de Postgres: ids de otra variante se
// comportan como inexistentes.
type Repo[T events.Record[T]] struct {
	s *Store
}

func NewBottleFeedRepo(s *Store) *Repo[events.BottleFeed] { return &Repo[events.BottleFeed]{s: s} }
func NewBreastFeedRepo(s *Store) *Repo[events.BreastFeed] { return &Repo[events.BreastFeed]{s: s} }
func NewDiaperRepo(s *Store) *Repo[events.Diaper]         { return &Repo[events.Diaper]{s: s} }
func NewPumpRepo(s *Store) *Repo[events.Pump]             { return &Repo[events.Pump]{s: s} }

func (r *Repo[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T

	rec = rec.WithBase(utcEvent(rec.Base()))
	id := rec.Base().ID
	if id == "" {
		return zero, events.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.byID[id]; exists {
		return zero, events.ErrConflict
	}

	r.s.byID[id] = any(rec).(record)
	return rec, nil
}

func (r *Repo[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.byID[strings.TrimSpace(id)]
	if !ok {
		return zero, events.ErrNotFound
	}
	rec, ok := v.(T)
	if !ok {
		return zero, events.ErrNotFound
	}
	return rec, nil
}

func (r *Repo[T]) List(ctx context.Context, filter events.ListFilter) (int, []T, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := make([]T, 0)
	for _, v := range r.s.byID {
		rec, ok := v.(T)
		if !ok {
			continue
		}
		if !inWindow(rec.Base().TimeStart, filter.From, filter.To) {
			continue
		}
		matches = append(matches, rec)
	}

	total, out := page(matches, func(t T) time.Time { return t.Base().TimeStart }, filter)
	return total, out, nil
}

func (r *Repo[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	var zero T
	id = strings.TrimSpace(id)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.byID[id]
	if !ok {
		return zero, events.ErrNotFound
	}
	if _, ok := v.(T); !ok {
		return zero, events.ErrNotFound
	}

	b := utcEvent(rec.Base())
	b.ID = id
	rec = rec.WithBase(b)

	r.s.byID[id] = any(rec).(record)
	return rec, nil
}

func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.byID[id]
	if !ok {
		return events.ErrNotFound
	}
	if _, ok := v.(T); !ok {
		return events.ErrNotFound
	}

	delete(r.s.byID, id)
	return nil
}
