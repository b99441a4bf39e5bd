package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"open-baby-backend/internal/domain/events"
)

// StatsRepo lee las tomas de biberón para la estadística derivada,
// ordenadas ascendente por time_start. Solo lecturas: usa el pool de
// lectura cuando hay uno configurado.
type StatsRepo struct {
	db  *DB
	log *zap.Logger
}

func NewStatsRepo(db *DB, log *zap.Logger) *StatsRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsRepo{db: db, log: log.With(zap.String("repo", "stats"))}
}

func (r *StatsRepo) BottleFeedsByWindow(ctx context.Context, from, to *time.Time) ([]events.BottleFeed, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + baseColumns + `, x.amount_ml, x.is_formula
		FROM events e
		JOIN bottle_feed_events x ON x.id = e.id
	`)

	args := []any{}
	argN := 1
	conds := []string{}
	if from != nil {
		conds = append(conds, fmt.Sprintf("e.time_start >= $%d", argN))
		args = append(args, from.UTC())
		argN++
	}
	if to != nil {
		conds = append(conds, fmt.Sprintf("e.time_start <= $%d", argN))
		args = append(args, to.UTC())
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY e.time_start ASC")

	rows, err := r.db.read().QueryContext(ctx, sb.String(), args...)
	if err != nil {
		r.log.Error("failed to query bottle feeds", zap.Error(err))
		return nil, fmt.Errorf("bottle feeds by window: %w", err)
	}
	defer rows.Close()

	out := make([]events.BottleFeed, 0)
	for rows.Next() {
		var er eventRow
		var amount int
		var formula bool
		if err := rows.Scan(
			&er.ID, &er.Name, &er.Description, &er.TimeStart, &er.TimeEnd, &er.Notes,
			&amount, &formula,
		); err != nil {
			return nil, fmt.Errorf("scan bottle feed: %w", err)
		}
		out = append(out, events.BottleFeed{
			Event:     eventFromRow(er),
			AmountML:  amount,
			IsFormula: formula,
		})
	}

	return out, rows.Err()
}
