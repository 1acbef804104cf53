package main

import (
	"context"
	"database/sql"
	"time"

	dErrors "kgov/pkg/domain-errors"
	txcontext "kgov/pkg/platform/tx"
)

const defaultWorkflowTxTimeout = 5 * time.Second

// workflowPostgresTx runs a workflow transition inside one database
// transaction. The *sql.Tx rides the context so every store touched by fn
// joins the same transaction.
type workflowPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newWorkflowPostgresTx(db *sql.DB) *workflowPostgresTx {
	return &workflowPostgresTx{db: db}
}

func (t *workflowPostgresTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultWorkflowTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}
