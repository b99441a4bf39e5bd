package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Services agrupa un servicio por variante más el genérico de la fila
// base; el router los monta de una vez.
type Services struct {
	Base       *Service[Event]
	BottleFeed *Service[BottleFeed]
	BreastFeed *Service[BreastFeed]
	Diaper     *Service[Diaper]
	Pump       *Service[Pump]
}

// RegisterRoutes monta el CRUD completo bajo /events:
// la superficie genérica en la raíz y una por subtipo debajo.
// Las rutas estáticas (feed, diaper, pump) ganan sobre /{eventID}.
func RegisterRoutes(r chi.Router, svcs Services) {
	r.Route("/events", func(er chi.Router) {
		er.Route("/feed/bottle", crudRoutes(svcs.BottleFeed))
		er.Route("/feed/breast", crudRoutes(svcs.BreastFeed))
		er.Route("/diaper", crudRoutes(svcs.Diaper))
		er.Route("/pump", crudRoutes(svcs.Pump))
		crudRoutes(svcs.Base)(er)
	})
}

// crudRoutes registra el mismo juego de handlers para cualquier
// variante; un solo módulo CRUD instanciado por subtipo.
func crudRoutes[T Record[T]](svc *Service[T]) func(chi.Router) {
	return func(cr chi.Router) {
		cr.Post("/", createHandler(svc))
		cr.Get("/", listHandler(svc))
		cr.Get("/{eventID}", getHandler(svc))
		cr.Put("/{eventID}", updateHandler(svc))
		cr.Delete("/{eventID}", deleteHandler(svc))
	}
}

// listResponse es la respuesta paginada: total refleja el conjunto
// filtrado completo, no solo la página.
type listResponse[T any] struct {
	Total  int `json:"total"`
	Events []T `json:"events"`
}

func createHandler[T Record[T]](svc *Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec T
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		created, err := svc.Create(r.Context(), rec)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func getHandler[T Record[T]](svc *Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.Get(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}

func listHandler[T Record[T]](svc *Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		total, recs, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, err)
			return
		}

		if recs == nil {
			recs = []T{}
		}
		writeJSON(w, http.StatusOK, listResponse[T]{Total: total, Events: recs})
	}
}

func updateHandler[T Record[T]](svc *Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec T
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "eventID"), rec)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteHandler[T Record[T]](svc *Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "eventID")
		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"detail": fmt.Sprintf("event %s deleted", id),
		})
	}
}

// parseListFilter lee limit/offset y la ventana start_time/end_time
// (RFC3339) de la query.
func parseListFilter(r *http.Request) (ListFilter, error) {
	filter := ListFilter{Limit: defaultListLimit}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return ListFilter{}, errors.New("limit must be a positive integer")
		}
		if n > maxListLimit {
			n = maxListLimit
		}
		filter.Limit = n
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return ListFilter{}, errors.New("offset must be a non-negative integer")
		}
		filter.Offset = n
	}

	if v := strings.TrimSpace(r.URL.Query().Get("start_time")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("start_time must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("end_time")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("end_time must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}

// writeError mapea la taxonomía de errores del dominio a status HTTP.
// Fallos de almacenamiento no filtran detalle al cliente.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, "event already exists", http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
