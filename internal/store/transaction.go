package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextKey int

const (
	transactionKey contextKey = iota
)

var errNoTransaction = errors.New("transaction hasn't started yet")

// Tx is a database transaction carried in a context. Hooks registered with AfterCommit run
// once the transaction commits and are dropped on rollback.
type Tx struct {
	tx       *gorm.DB
	onCommit []func(ctx context.Context)
}

// Commit commits the transaction in ctx, then runs its commit hooks with the returned context.
// It is a no-op without a transaction.
func Commit(ctx context.Context) (context.Context, error) {
	tx := txFromContext(ctx)
	if tx == nil {
		return ctx, nil
	}

	newCtx := context.WithValue(ctx, transactionKey, nil)
	hooks, err := tx.commit()
	if err != nil {
		return newCtx, err
	}
	for _, fn := range hooks {
		fn(newCtx)
	}
	return newCtx, nil
}

func Rollback(ctx context.Context) (context.Context, error) {
	tx := txFromContext(ctx)
	if tx == nil {
		return ctx, nil
	}

	newCtx := context.WithValue(ctx, transactionKey, nil)
	return newCtx, tx.rollback()
}

// AfterCommit defers fn until the transaction in ctx commits. Outside a transaction fn runs
// right away.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if tx := txFromContext(ctx); tx != nil && tx.tx != nil {
		tx.onCommit = append(tx.onCommit, fn)
		return
	}
	fn(ctx)
}

// FromContext returns the open transaction of ctx, or nil.
func FromContext(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx.tx
	}
	return nil
}

func txFromContext(ctx context.Context) *Tx {
	tx, _ := ctx.Value(transactionKey).(*Tx)
	return tx
}

func newTransactionContext(ctx context.Context, db *gorm.DB) (context.Context, error) {
	// nested transaction contexts reuse the outer transaction
	if txFromContext(ctx) != nil {
		return ctx, nil
	}

	tx := db.Session(&gorm.Session{Context: ctx}).Begin()
	if tx.Error != nil {
		return ctx, tx.Error
	}

	return context.WithValue(ctx, transactionKey, &Tx{tx: tx}), nil
}

func (t *Tx) commit() ([]func(ctx context.Context), error) {
	if t.tx == nil {
		return nil, errNoTransaction
	}

	if err := t.tx.Commit().Error; err != nil {
		zap.S().Named("store").Errorw("failed to commit transaction", "error", err)
		return nil, err
	}
	hooks := t.onCommit
	t.tx, t.onCommit = nil, nil
	return hooks, nil
}

func (t *Tx) rollback() error {
	if t.tx == nil {
		return errNoTransaction
	}

	t.onCommit = nil
	if err := t.tx.Rollback().Error; err != nil {
		zap.S().Named("store").Errorw("failed to rollback transaction", "error", err)
		return err
	}
	t.tx = nil
	return nil
}
