package stats

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/stats", func(sr chi.Router) {
		sr.Get("/feeds", feedStatisticsHandler(svc))
	})
}

func feedStatisticsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := parseWindowParam(r, "start_date")
		if err != nil {
			http.Error(w, "start_date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to, err := parseWindowParam(r, "end_date")
		if err != nil {
			http.Error(w, "end_date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		out, err := svc.FeedStatistics(r.Context(), from, to)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// parseWindowParam acepta un timestamp RFC3339 o una fecha simple
// (interpretada como medianoche UTC).
func parseWindowParam(r *http.Request, name string) (*time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
