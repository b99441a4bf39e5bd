package stats

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Service deriva la estadística de tomas: una sola pasada sobre la
// secuencia ordenada por tiempo, sin recomputar la "anterior" con
// consultas extra.
type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// FeedStatistics calcula, por toma de biberón dentro de la ventana, los
// minutos desde la toma anterior (0 para la primera; puede ser
// fraccional). Usa los timestamps de los propios eventos consecutivos,
// nunca el reloj de pared. Ventana vacía => lista vacía.
func (s *Service) FeedStatistics(ctx context.Context, from, to *time.Time) ([]BottleFeedStatistic, error) {
	feeds, err := s.repo.BottleFeedsByWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	s.log.Debug("computing feed statistics", zap.Int("count", len(feeds)))

	out := make([]BottleFeedStatistic, 0, len(feeds))
	for i, f := range feeds {
		var sinceLast float64
		if i > 0 {
			sinceLast = f.TimeStart.Sub(feeds[i-1].TimeStart).Minutes()
		}
		out = append(out, BottleFeedStatistic{
			Time:                     f.TimeStart,
			AmountML:                 f.AmountML,
			TimeSinceLastFeedMinutes: sinceLast,
		})
	}

	return out, nil
}
