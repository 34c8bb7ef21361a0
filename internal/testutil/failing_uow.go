package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/solplan/internal/db"
)

// FailingWriteUoW decorates Inner so that the FailOn-th write inside a
// transaction returns Err. Writes are counted from 1 per WithinTx call;
// reads pass through untouched.
type FailingWriteUoW struct {
	Inner  db.UnitOfWork
	FailOn int
	Err    error
}

// NewFailingWriteUoW wraps a fresh SQLite unit of work on database.
func NewFailingWriteUoW(database *sql.DB, failOn int, err error) *FailingWriteUoW {
	return &FailingWriteUoW{Inner: db.NewSQLiteUnitOfWork(database), FailOn: failOn, Err: err}
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &countingTx{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type countingTx struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.writes++
	if c.writes == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
