package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Fakes for the DB surface so the SQL paths can be exercised without a live
// server.

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type fakeDB struct {
	exec     func(sql string, args ...any) (pgconn.CommandTag, error)
	queryRow func(sql string, args ...any) pgx.Row
	query    func(sql string, args ...any) (pgx.Rows, error)
	begin    func() (pgx.Tx, error)
}

func (d *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if d.exec == nil {
		return pgconn.CommandTag{}, fmt.Errorf("unexpected Exec: %s", sql)
	}
	return d.exec(sql, args...)
}

func (d *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	if d.queryRow == nil {
		return fakeRow{}
	}
	return d.queryRow(sql, args...)
}

func (d *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	if d.query == nil {
		return nil, fmt.Errorf("unexpected Query: %s", sql)
	}
	return d.query(sql, args...)
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if d.begin == nil {
		return nil, fmt.Errorf("unexpected Begin")
	}
	return d.begin()
}

// fakeTx implements pgx.Tx; only Exec, QueryRow, Commit and Rollback carry
// behavior.
type fakeTx struct {
	exec       func(sql string, args ...any) (pgconn.CommandTag, error)
	queryRow   func(sql string, args ...any) pgx.Row
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, fmt.Errorf("copy from not supported")
}

func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, fmt.Errorf("prepare not supported")
}

func (t *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.exec == nil {
		return pgconn.CommandTag{}, fmt.Errorf("unexpected Exec: %s", sql)
	}
	return t.exec(sql, args...)
}

func (t *fakeTx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("unexpected Query: %s", sql)
}

func (t *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	if t.queryRow == nil {
		return fakeRow{}
	}
	return t.queryRow(sql, args...)
}

func (t *fakeTx) Conn() *pgx.Conn { return nil }
