package stats

import (
	"context"
	"time"

	"open-baby-backend/internal/domain/events"
)

// Repository lee las tomas de biberón directamente de las filas
// persistidas, ordenadas ascendente por time_start. La ventana es
// inclusiva en ambos extremos; nil significa sin límite.
type Repository interface {
	BottleFeedsByWindow(ctx context.Context, from, to *time.Time) ([]events.BottleFeed, error)
}
