package service

import (
	"context"
	"sync"
	"time"

	dErrors "kgov/pkg/domain-errors"
)

// defaultTxTimeout caps how long a workflow transaction may run.
const defaultTxTimeout = 5 * time.Second

// memoryTx is the in-memory transactional boundary: a coarse lock serializing
// all transitions. Fine for the memory stores, where a "transaction" only
// needs mutual exclusion between the read-check-write steps. The postgres
// deployment swaps in a real BeginTx adapter at wiring time.
type memoryTx struct {
	mu      sync.Mutex
	timeout time.Duration
}

func newMemoryTx() *memoryTx {
	return &memoryTx{timeout: defaultTxTimeout}
}

func (t *memoryTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check again after acquiring the lock.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}
