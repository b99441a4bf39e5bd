package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	mem "open-baby-backend/internal/adapters/storage/memory"
	pg "open-baby-backend/internal/adapters/storage/postgres"
	"open-baby-backend/internal/domain/events"
	"open-baby-backend/internal/domain/stats"
	"open-baby-backend/internal/middleware"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Pool de solo lectura opcional (camino read-mostly).
	ReadDB *sql.DB

	Logger *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		baseRepo   events.Repository[events.Event]
		bottleRepo events.Repository[events.BottleFeed]
		breastRepo events.Repository[events.BreastFeed]
		diaperRepo events.Repository[events.Diaper]
		pumpRepo   events.Repository[events.Pump]
		statsRepo  stats.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("failed to open postgres, falling back to memory", zap.Error(err))
			}
		}
	}

	if db != nil {
		pgdb := pg.NewDB(db, opts.ReadDB)
		baseRepo = pg.NewEventsRepo(pgdb, log)
		bottleRepo = pg.NewBottleFeedRepo(pgdb, log)
		breastRepo = pg.NewBreastFeedRepo(pgdb, log)
		diaperRepo = pg.NewDiaperRepo(pgdb, log)
		pumpRepo = pg.NewPumpRepo(pgdb, log)
		statsRepo = pg.NewStatsRepo(pgdb, log)
	} else {
		store := mem.NewStore()
		baseRepo = mem.NewEventsRepo(store)
		bottleRepo = mem.NewBottleFeedRepo(store)
		breastRepo = mem.NewBreastFeedRepo(store)
		diaperRepo = mem.NewDiaperRepo(store)
		pumpRepo = mem.NewPumpRepo(store)
		statsRepo = mem.NewStatsRepo(store)
	}

	// Services por módulo
	svcs := events.Services{
		Base:       events.NewService(baseRepo, log),
		BottleFeed: events.NewService(bottleRepo, log),
		BreastFeed: events.NewService(breastRepo, log),
		Diaper:     events.NewService(diaperRepo, log),
		Pump:       events.NewService(pumpRepo, log),
	}
	statsSvc := stats.NewService(statsRepo, log)

	// Rutas por módulo
	events.RegisterRoutes(r, svcs)
	stats.RegisterRoutes(r, statsSvc)

	return r
}
