package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"open-baby-backend/internal/domain/events"
)

// extTables mapea el discriminador a su tabla de extensión.
var extTables = map[events.Type]string{
	events.TypeFeedBottle:   "bottle_feed_events",
	events.TypeFeedBreast:   "breast_feed_events",
	events.TypeDiaperChange: "diaper_events",
	events.TypePump:         "pump_events",
}

// EventsRepo opera la superficie genérica sobre la tabla base. Update y
// Delete resuelven el discriminador guardado primero y tocan la tabla
// de extensión correspondiente dentro de la misma transacción.
type EventsRepo struct {
	db  *DB
	log *zap.Logger
}

func NewEventsRepo(db *DB, log *zap.Logger) *EventsRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventsRepo{db: db, log: log.With(zap.String("table", "events"))}
}

func (r *EventsRepo) Insert(ctx context.Context, e events.Event) (events.Event, error) {
	row := eventToRow(e)

	if _, err := r.db.rw.ExecContext(ctx, `
		INSERT INTO events (id, name, description, time_start, time_end, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, row.ID, row.Name, row.Description, row.TimeStart, row.TimeEnd, row.Notes); err != nil {
		if isUniqueViolation(err) {
			return events.Event{}, events.ErrConflict
		}
		r.log.Error("failed to insert event", zap.Error(err))
		return events.Event{}, fmt.Errorf("insert event: %w", err)
	}

	return eventFromRow(row), nil
}

func (r *EventsRepo) Get(ctx context.Context, id string) (events.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.Event{}, events.ErrNotFound
	}

	row := r.db.read().QueryRowContext(ctx, `
		SELECT `+baseColumns+`
		FROM events e
		WHERE e.id = $1
	`, id)

	var er eventRow
	if err := row.Scan(&er.ID, &er.Name, &er.Description, &er.TimeStart, &er.TimeEnd, &er.Notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return events.Event{}, events.ErrNotFound
		}
		return events.Event{}, fmt.Errorf("get event: %w", err)
	}

	return eventFromRow(er), nil
}

func (r *EventsRepo) List(ctx context.Context, filter events.ListFilter) (int, []events.Event, error) {
	where, args := windowClause(filter, 1)

	var total int
	if err := r.db.read().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events e"+where, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count events: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	argN := len(args) + 1
	q := "SELECT " + baseColumns + " FROM events e" + where +
		fmt.Sprintf(" ORDER BY e.time_start DESC LIMIT $%d OFFSET $%d", argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.db.read().QueryContext(ctx, q, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := make([]events.Event, 0)
	for rows.Next() {
		var er eventRow
		if err := rows.Scan(&er.ID, &er.Name, &er.Description, &er.TimeStart, &er.TimeEnd, &er.Notes); err != nil {
			return 0, nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, eventFromRow(er))
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("list events: %w", err)
	}

	return total, out, nil
}

func (r *EventsRepo) Update(ctx context.Context, id string, e events.Event) (events.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.Event{}, events.ErrNotFound
	}

	e.ID = id
	row := eventToRow(e)

	tx, err := r.db.rw.BeginTx(ctx, nil)
	if err != nil {
		return events.Event{}, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stored, err := lockName(ctx, tx, id)
	if err != nil {
		return events.Event{}, err
	}
	// El discriminador es inmutable: un name distinto al guardado es un
	// mismatch de id/tipo (400), no un update.
	if stored != events.Type(row.Name) {
		return events.Event{}, fmt.Errorf(
			"event %s has type %s, not %s: %w", id, stored, row.Name, events.ErrInvalidInput)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE events
		SET description = $2, time_start = $3, time_end = $4, notes = $5
		WHERE id = $1
	`, row.ID, row.Description, row.TimeStart, row.TimeEnd, row.Notes); err != nil {
		r.log.Error("failed to update event", zap.Error(err))
		return events.Event{}, fmt.Errorf("update event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return events.Event{}, fmt.Errorf("commit update: %w", err)
	}

	return eventFromRow(row), nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.ErrNotFound
	}

	tx, err := r.db.rw.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stored, err := lockName(ctx, tx, id)
	if err != nil {
		return err
	}

	// Borrado físico: primero la fila de extensión (si el subtipo la
	// tiene), después la base.
	if table, ok := extTables[stored]; ok {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id); err != nil {
			r.log.Error("failed to delete extension row", zap.Error(err))
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id); err != nil {
		r.log.Error("failed to delete event", zap.Error(err))
		return fmt.Errorf("delete event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// lockName lee el discriminador de la fila base bloqueándola para el
// resto de la transacción.
func lockName(ctx context.Context, tx *sql.Tx, id string) (events.Type, error) {
	var name string
	err := tx.QueryRowContext(ctx,
		"SELECT name FROM events WHERE id = $1 FOR UPDATE", id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", events.ErrNotFound
		}
		return "", fmt.Errorf("lock event: %w", err)
	}
	return events.Type(name), nil
}
