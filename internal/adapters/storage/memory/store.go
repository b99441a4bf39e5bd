package memory

import (
	"sort"
	"sync"
	"time"

	"open-baby-backend/internal/domain/events"
)

// record es la vista mínima que el store necesita de cualquier variante.
type record interface {
	Kind() events.Type
	Base() events.Event
}

// Store guarda todos los eventos (cualquier variante) bajo un mismo
// mapa por id, imitando la tabla base compartida del esquema relacional.
// Sirve para modo dev y para los tests de handlers.
type Store struct {
	mu   sync.RWMutex
	byID map[string]record
}

func NewStore() *Store {
	return &Store{byID: make(map[string]record)}
}

// utcEvent normaliza los timestamps a UTC, igual que hace el adapter de
// Postgres en la frontera de almacenamiento.
func utcEvent(e events.Event) events.Event {
	e.TimeStart = e.TimeStart.UTC()
	if e.TimeEnd != nil {
		t := e.TimeEnd.UTC()
		e.TimeEnd = &t
	}
	return e
}

func inWindow(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// replaceBase reescribe los campos base de un registro guardado
// conservando su variante. El discriminador guardado no cambia.
func replaceBase(v record, b events.Event) record {
	b.Type = v.Kind()
	switch t := v.(type) {
	case events.BottleFeed:
		return t.WithBase(b)
	case events.BreastFeed:
		return t.WithBase(b)
	case events.Diaper:
		return t.WithBase(b)
	case events.Pump:
		return t.WithBase(b)
	case events.Event:
		return t.WithBase(b)
	default:
		return v
	}
}

// page ordena por time_start descendente y corta la página pedida.
// Devuelve también el total filtrado.
func page[T any](matches []T, timeOf func(T) time.Time, filter events.ListFilter) (int, []T) {
	sort.Slice(matches, func(i, j int) bool {
		return timeOf(matches[i]).After(timeOf(matches[j]))
	})

	total := len(matches)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	if offset >= len(matches) {
		return total, []T{}
	}
	matches = matches[offset:]
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return total, matches
}
