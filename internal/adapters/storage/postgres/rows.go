package postgres

import (
	"database/sql"
	"time"

	"open-baby-backend/internal/domain/events"
)

// eventRow es la forma relacional de la fila base. El almacenamiento
// trabaja en UTC: nada naive cruza la frontera del adapter.
type eventRow struct {
	ID          string
	Name        string
	Description string
	TimeStart   time.Time
	TimeEnd     sql.NullTime
	Notes       sql.NullString
}

// eventToRow normaliza los timestamps a UTC al entrar.
func eventToRow(e events.Event) eventRow {
	r := eventRow{
		ID:          e.ID,
		Name:        string(e.Type),
		Description: e.Description,
		TimeStart:   e.TimeStart.UTC(),
	}
	if e.TimeEnd != nil {
		r.TimeEnd = sql.NullTime{Time: e.TimeEnd.UTC(), Valid: true}
	}
	if e.Notes != "" {
		r.Notes = sql.NullString{String: e.Notes, Valid: true}
	}
	return r
}

// eventFromRow re-etiqueta los timestamps como UTC al salir.
func eventFromRow(r eventRow) events.Event {
	e := events.Event{
		ID:          r.ID,
		Type:        events.Type(r.Name),
		Description: r.Description,
		TimeStart:   r.TimeStart.UTC(),
	}
	if r.TimeEnd.Valid {
		t := r.TimeEnd.Time.UTC()
		e.TimeEnd = &t
	}
	if r.Notes.Valid {
		e.Notes = r.Notes.String
	}
	return e
}

// enumArg convierte un enum opcional en argumento SQL (NULL si nil).
func enumArg[E ~string](p *E) any {
	if p == nil {
		return nil
	}
	return string(*p)
}

// enumFromNull reconstruye el enum opcional desde la columna nullable.
func enumFromNull[E ~string](v sql.NullString) *E {
	if !v.Valid {
		return nil
	}
	e := E(v.String)
	return &e
}
