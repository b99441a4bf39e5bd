package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"open-baby-backend/internal/domain/events"
)

const baseColumns = "e.id, e.name, e.description, e.time_start, e.time_end, e.notes"

// variant describe la tabla de extensión de un subtipo: columnas
// propias, cómo sacarlas del registro y cómo reconstruirlo al leer.
type variant[T events.Record[T]] struct {
	kind  events.Type
	table string
	cols  []string
	args  func(T) []any
	// scan devuelve destinos frescos para las columnas de extensión y
	// un builder que arma el registro sobre la fila base ya escaneada.
	scan func() ([]any, func(events.Event) T)
}

// Repo es la unidad de persistencia genérica por subtipo: fila base en
// events + fila de extensión en la tabla del subtipo, siempre dentro de
// la misma transacción.
type Repo[T events.Record[T]] struct {
	db  *DB
	v   variant[T]
	log *zap.Logger
}

func newRepo[T events.Record[T]](db *DB, log *zap.Logger, v variant[T]) *Repo[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo[T]{db: db, v: v, log: log.With(zap.String("table", v.table))}
}

func NewBottleFeedRepo(db *DB, log *zap.Logger) *Repo[events.BottleFeed] {
	return newRepo(db, log, variant[events.BottleFeed]{
		kind:  events.TypeFeedBottle,
		table: "bottle_feed_events",
		cols:  []string{"amount_ml", "is_formula"},
		args: func(e events.BottleFeed) []any {
			return []any{e.AmountML, e.IsFormula}
		},
		scan: func() ([]any, func(events.Event) events.BottleFeed) {
			var amount int
			var formula bool
			return []any{&amount, &formula}, func(b events.Event) events.BottleFeed {
				return events.BottleFeed{Event: b, AmountML: amount, IsFormula: formula}
			}
		},
	})
}

func NewBreastFeedRepo(db *DB, log *zap.Logger) *Repo[events.BreastFeed] {
	return newRepo(db, log, variant[events.BreastFeed]{
		kind:  events.TypeFeedBreast,
		table: "breast_feed_events",
		cols:  []string{"side"},
		args: func(e events.BreastFeed) []any {
			return []any{string(e.Side)}
		},
		scan: func() ([]any, func(events.Event) events.BreastFeed) {
			var side string
			return []any{&side}, func(b events.Event) events.BreastFeed {
				return events.BreastFeed{Event: b, Side: events.BreastSide(side)}
			}
		},
	})
}

func NewDiaperRepo(db *DB, log *zap.Logger) *Repo[events.Diaper] {
	return newRepo(db, log, variant[events.Diaper]{
		kind:  events.TypeDiaperChange,
		table: "diaper_events",
		cols: []string{
			"diaper_type",
			"diaper_contents_color",
			"diaper_contents_consistency",
			"diaper_contents_size",
		},
		args: func(e events.Diaper) []any {
			return []any{
				string(e.DiaperType),
				enumArg(e.Color),
				enumArg(e.Consistency),
				enumArg(e.Size),
			}
		},
		scan: func() ([]any, func(events.Event) events.Diaper) {
			var typ string
			var color, consistency, size sql.NullString
			return []any{&typ, &color, &consistency, &size}, func(b events.Event) events.Diaper {
				return events.Diaper{
					Event:       b,
					DiaperType:  events.DiaperType(typ),
					Color:       enumFromNull[events.DiaperColor](color),
					Consistency: enumFromNull[events.DiaperConsistency](consistency),
					Size:        enumFromNull[events.DiaperSize](size),
				}
			}
		},
	})
}

func NewPumpRepo(db *DB, log *zap.Logger) *Repo[events.Pump] {
	return newRepo(db, log, variant[events.Pump]{
		kind:  events.TypePump,
		table: "pump_events",
		cols:  []string{"amount_ml"},
		args: func(e events.Pump) []any {
			return []any{e.AmountML}
		},
		scan: func() ([]any, func(events.Event) events.Pump) {
			var amount float64
			return []any{&amount}, func(b events.Event) events.Pump {
				return events.Pump{Event: b, AmountML: amount}
			}
		},
	})
}

func (r *Repo[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T
	row := eventToRow(rec.Base())

	tx, err := r.db.rw.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO events (id, name, description, time_start, time_end, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, row.ID, row.Name, row.Description, row.TimeStart, row.TimeEnd, row.Notes); err != nil {
		if isUniqueViolation(err) {
			return zero, events.ErrConflict
		}
		r.log.Error("failed to insert base event", zap.Error(err))
		return zero, fmt.Errorf("insert event: %w", err)
	}

	cols := append([]string{"id"}, r.v.cols...)
	args := append([]any{row.ID}, r.v.args(rec)...)
	q := "INSERT INTO " + r.v.table + " (" + strings.Join(cols, ", ") +
		") VALUES (" + placeholders(len(cols)) + ")"
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		r.log.Error("failed to insert extension row", zap.Error(err))
		return zero, fmt.Errorf("insert %s: %w", r.v.table, err)
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit insert: %w", err)
	}

	return rec.WithBase(eventFromRow(row)), nil
}

func (r *Repo[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, events.ErrNotFound
	}

	row := r.db.read().QueryRowContext(ctx, r.selectQuery()+" WHERE e.id = $1", id)
	rec, err := r.scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, events.ErrNotFound
		}
		return zero, fmt.Errorf("get %s: %w", r.v.table, err)
	}
	return rec, nil
}

func (r *Repo[T]) List(ctx context.Context, filter events.ListFilter) (int, []T, error) {
	where, args := windowClause(filter, 1)

	var total int
	countQ := "SELECT COUNT(*) FROM events e JOIN " + r.v.table + " x ON x.id = e.id" + where
	if err := r.db.read().QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count %s: %w", r.v.table, err)
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
	pageQ := r.selectQuery() + where +
		fmt.Sprintf(" ORDER BY e.time_start DESC LIMIT $%d OFFSET $%d", argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.db.read().QueryContext(ctx, pageQ, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("list %s: %w", r.v.table, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return 0, nil, fmt.Errorf("scan %s: %w", r.v.table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("list %s: %w", r.v.table, err)
	}

	return total, out, nil
}

func (r *Repo[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, events.ErrNotFound
	}

	b := rec.Base()
	b.ID = id
	row := eventToRow(b)

	tx, err := r.db.rw.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// El name guardado restringe el WHERE: un id de otro subtipo se
	// comporta como inexistente para esta unidad.
	res, err := tx.ExecContext(ctx, `
		UPDATE events
		SET description = $2, time_start = $3, time_end = $4, notes = $5
		WHERE id = $1 AND name = $6
	`, row.ID, row.Description, row.TimeStart, row.TimeEnd, row.Notes, string(r.v.kind))
	if err != nil {
		r.log.Error("failed to update base event", zap.Error(err))
		return zero, fmt.Errorf("update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return zero, events.ErrNotFound
	}

	sets := make([]string, 0, len(r.v.cols))
	for i, c := range r.v.cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+2))
	}
	q := "UPDATE " + r.v.table + " SET " + strings.Join(sets, ", ") + " WHERE id = $1"
	args := append([]any{row.ID}, r.v.args(rec)...)
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		r.log.Error("failed to update extension row", zap.Error(err))
		return zero, fmt.Errorf("update %s: %w", r.v.table, err)
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit update: %w", err)
	}

	return rec.WithBase(eventFromRow(row)), nil
}

func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.ErrNotFound
	}

	tx, err := r.db.rw.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "DELETE FROM "+r.v.table+" WHERE id = $1", id)
	if err != nil {
		r.log.Error("failed to delete extension row", zap.Error(err))
		return fmt.Errorf("delete %s: %w", r.v.table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return events.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id); err != nil {
		r.log.Error("failed to delete base event", zap.Error(err))
		return fmt.Errorf("delete event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

func (r *Repo[T]) selectQuery() string {
	cols := baseColumns
	for _, c := range r.v.cols {
		cols += ", x." + c
	}
	return "SELECT " + cols + " FROM events e JOIN " + r.v.table + " x ON x.id = e.id"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repo[T]) scanRecord(sc rowScanner) (T, error) {
	var zero T
	var row eventRow
	extra, build := r.v.scan()

	dest := append([]any{
		&row.ID, &row.Name, &row.Description, &row.TimeStart, &row.TimeEnd, &row.Notes,
	}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return zero, err
	}
	return build(eventFromRow(row)), nil
}

// windowClause arma el filtro de ventana sobre e.time_start
// (inclusivo en ambos extremos) numerando args desde argN.
func windowClause(filter events.ListFilter, argN int) (string, []any) {
	conds := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.From != nil {
		conds = append(conds, fmt.Sprintf("e.time_start >= $%d", argN))
		args = append(args, filter.From.UTC())
		argN++
	}
	if filter.To != nil {
		conds = append(conds, fmt.Sprintf("e.time_start <= $%d", argN))
		args = append(args, filter.To.UTC())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(ps, ",")
}

// isUniqueViolation detecta el código 23505 de Postgres.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
