package memory

import (
	"context"
	"sort"
	"time"

	"open-baby-backend/internal/domain/events"
)

// StatsRepo lee las tomas de biberón del store compartido, ordenadas
// ascendente por time_start.
type StatsRepo struct {
	s *Store
}

func NewStatsRepo(s *Store) *StatsRepo {
	return &StatsRepo{s: s}
}

func (r *StatsRepo) BottleFeedsByWindow(ctx context.Context, from, to *time.Time) ([]events.BottleFeed, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]events.BottleFeed, 0)
	for _, v := range r.s.byID {
		f, ok := v.(events.BottleFeed)
		if !ok {
			continue
		}
		if !inWindow(f.TimeStart, from, to) {
			continue
		}
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].TimeStart.Before(out[j].TimeStart)
	})

	return out, nil
}
