package xcontext

import (
	"context"

	"gorm.io/gorm"
)

// txState is shared by every context derived from the one returned by
// WithDBTransaction, so that a deferred rollback observes an earlier commit.
type txState struct {
	tx     *gorm.DB
	done   bool
	joined bool
}

type txStateKey struct{}

// WithDBTransaction begins a transaction and returns a context whose DB()
// is that transaction. Calling it on a context which already carries an open
// transaction joins it; only the outermost caller commits or rolls back.
func WithDBTransaction(ctx context.Context) context.Context {
	if state, ok := ctx.Value(txStateKey{}).(*txState); ok && !state.done {
		return context.WithValue(ctx, txStateKey{}, &txState{tx: state.tx, joined: true})
	}

	tx := ctx.Value(dbKey{}).(*gorm.DB).WithContext(ctx).Begin()
	ctx = context.WithValue(ctx, dbTxKey{}, tx)
	return context.WithValue(ctx, txStateKey{}, &txState{tx: tx})
}

// WithCommitDBTransaction commits the transaction of ctx. It returns the
// commit error so callers can tell the outcome apart from a rollback.
func WithCommitDBTransaction(ctx context.Context) error {
	state, ok := ctx.Value(txStateKey{}).(*txState)
	if !ok || state.done || state.joined {
		return nil
	}

	state.done = true
	return state.tx.Commit().Error
}

// WithRollbackDBTransaction rolls back the transaction of ctx unless it was
// committed already. It is meant to be deferred right after
// WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	state, ok := ctx.Value(txStateKey{}).(*txState)
	if !ok || state.done || state.joined {
		return
	}

	state.done = true
	state.tx.Rollback()
}

// InTransaction reports whether ctx carries an open transaction.
func InTransaction(ctx context.Context) bool {
	state, ok := ctx.Value(txStateKey{}).(*txState)
	return ok && !state.done
}
