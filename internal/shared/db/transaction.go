// Package db provides database utilities including transaction management.
package db

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key for storing transaction.
type txKey struct{}

// TransactionManager manages database transactions. Claim creation and
// cascading revocation run inside it so partial writes are never observed.
type TransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a new TransactionManager.
func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction executes the given function within a database transaction.
// If the function returns an error, the transaction is rolled back; otherwise
// it is committed.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// GetTxFromContext returns the transaction from context if available.
// Repositories call this so writes join an ambient transaction transparently.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
