package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// DB agrupa el pool de escritura con un pool de solo lectura opcional.
// El pool de lectura (READ COMMITTED alcanza) es una optimización: las
// lecturas siguen viendo un snapshot consistente de cada consulta.
type DB struct {
	rw *sql.DB
	ro *sql.DB
}

// NewDB arma el par de pools. ro puede ser nil; en ese caso las
// lecturas van por el pool de escritura.
func NewDB(rw, ro *sql.DB) *DB {
	return &DB{rw: rw, ro: ro}
}

func (d *DB) read() *sql.DB {
	if d.ro != nil {
		return d.ro
	}
	return d.rw
}
