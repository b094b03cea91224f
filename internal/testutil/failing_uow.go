package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/adapta/internal/db"
)

// ErrInjected is returned by FailOnNthExecUoW when no Err is configured.
var ErrInjected = errors.New("injected write failure")

// FailOnNthExecUoW runs the callback in a real transaction but fails the
// FailOn-th write (counted from 1). When Table is set only statements
// touching that table are counted, so a test can aim at "the second
// step_progress write" without knowing how many writes precede it.
// Reads are never counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Table  string
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	injected := u.Err
	if injected == nil {
		injected = ErrInjected
	}
	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, table: strings.ToLower(u.Table), err: injected}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	table  string
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.table == "" || touchesTable(query, f.table) {
		if f.count.Add(1) == f.failOn {
			return nil, f.err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// touchesTable matches "INTO t", "UPDATE t" and "FROM t" on word boundaries.
func touchesTable(query, table string) bool {
	fields := strings.Fields(strings.ToLower(query))
	for i := 0; i+1 < len(fields); i++ {
		switch fields[i] {
		case "into", "update", "from":
			name := strings.TrimRight(fields[i+1], "(")
			if name == table {
				return true
			}
		}
	}
	return false
}
