package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"open-baby-backend/internal/domain/events"
)

type testRepo struct {
	feeds []events.BottleFeed
}

func (r *testRepo) BottleFeedsByWindow(ctx context.Context, from, to *time.Time) ([]events.BottleFeed, error) {
	return r.feeds, nil
}

func feed(start string, amount int) events.BottleFeed {
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		panic(err)
	}
	return events.BottleFeed{
		Event:    events.Event{Type: events.TypeFeedBottle, TimeStart: t},
		AmountML: amount,
	}
}

func TestFeedStatistics_EmptyWindow(t *testing.T) {
	svc := NewService(&testRepo{}, nil)

	out, err := svc.FeedStatistics(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFeedStatistics_SingleFeed(t *testing.T) {
	svc := NewService(&testRepo{feeds: []events.BottleFeed{
		feed("2024-01-01T08:00:00Z", 120),
	}}, nil)

	out, err := svc.FeedStatistics(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, float64(0), out[0].TimeSinceLastFeedMinutes)
	assert.Equal(t, 120, out[0].AmountML)
}

func TestFeedStatistics_ConsecutiveDeltas(t *testing.T) {
	svc := NewService(&testRepo{feeds: []events.BottleFeed{
		feed("2024-01-01T08:00:00Z", 120),
		feed("2024-01-01T09:30:00Z", 90),
		feed("2024-01-01T09:30:30Z", 60),
	}}, nil)

	out, err := svc.FeedStatistics(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, float64(0), out[0].TimeSinceLastFeedMinutes)
	assert.Equal(t, 90.0, out[1].TimeSinceLastFeedMinutes)
	// Deltas fraccionales: 30 segundos => 0.5 minutos.
	assert.Equal(t, 0.5, out[2].TimeSinceLastFeedMinutes)
}

func TestFeedStatistics_MorningFeeds(t *testing.T) {
	// Dos tomas: 08:00 (120ml, leche materna) y 11:30 (150ml, fórmula).
	svc := NewService(&testRepo{feeds: []events.BottleFeed{
		feed("2024-01-01T08:00:00Z", 120),
		feed("2024-01-01T11:30:00Z", 150),
	}}, nil)

	out, err := svc.FeedStatistics(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, float64(0), out[0].TimeSinceLastFeedMinutes)
	assert.Equal(t, 210.0, out[1].TimeSinceLastFeedMinutes)
	assert.Equal(t, 150, out[1].AmountML)
}
