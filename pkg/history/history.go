// package history keeps an audit trail of lookups in postgres. It is
// write-only from the request path and never consulted to answer a lookup,
// so the proxy itself stays stateless. Expected table:
//
//	CREATE TABLE lookups (
//	    id          BIGSERIAL PRIMARY KEY,
//	    operation   TEXT NOT NULL,
//	    query       TEXT NOT NULL,
//	    status      INT NOT NULL,
//	    results     INT NOT NULL DEFAULT 0,
//	    duration_ms BIGINT NOT NULL DEFAULT 0,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Lookup is one recorded request: what was asked, how it was answered and
// how long the round trip took.
type Lookup struct {
	Operation  string `json:"operation"`
	Query      string `json:"query"`
	Status     int    `json:"status"`
	Results    int    `json:"results"`
	DurationMS int64  `json:"duration_ms"`

	CreatedAt time.Time `json:"created_at"`
}

type dbLookup struct {
	Operation  string    `db:"operation"`
	Query      string    `db:"query"`
	Status     int       `db:"status"`
	Results    int       `db:"results"`
	DurationMS int64     `db:"duration_ms"`
	CreatedAt  time.Time `db:"created_at"`
}

type Repository interface {
	Record(ctx context.Context, l Lookup) error
	ListRecent(ctx context.Context, limit int) ([]Lookup, error)
}

type pgRepo struct {
	db *sqlx.DB
}

var _ Repository = (*pgRepo)(nil)

func NewPgRepository(db *sql.DB) *pgRepo {
	return &pgRepo{db: sqlx.NewDb(db, "postgres")}
}

func (r *pgRepo) Record(ctx context.Context, l Lookup) error {
	query := `
	INSERT INTO lookups (operation, query, status, results, duration_ms)
	VALUES ($1, $2, $3, $4, $5);`

	_, err := r.db.ExecContext(ctx, query, l.Operation, l.Query, l.Status, l.Results, l.DurationMS)
	if err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}

	return nil
}

func (r *pgRepo) ListRecent(ctx context.Context, limit int) ([]Lookup, error) {
	var rows []dbLookup

	query := `
	SELECT operation, query, status, results, duration_ms, created_at
	FROM lookups
	ORDER BY created_at DESC
	LIMIT $1;`

	err := r.db.SelectContext(ctx, &rows, query, limit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("select lookups: %w", err)
	}

	lookups := make([]Lookup, len(rows))
	for i := range rows {
		lookups[i] = rows[i].Map()
	}

	return lookups, nil
}

func (l dbLookup) Map() Lookup {
	return Lookup{
		Operation:  l.Operation,
		Query:      l.Query,
		Status:     l.Status,
		Results:    l.Results,
		DurationMS: l.DurationMS,
		CreatedAt:  l.CreatedAt,
	}
}
