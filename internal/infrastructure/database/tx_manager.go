package database

import (
	"context"

	"gorm.io/gorm"

	domainRepo "github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
)

type txKey struct{}

// TxManager implements repository.TxManager on top of gorm transactions.
// The transaction handle travels in the context passed to fn.
type TxManager struct {
	db *gorm.DB
}

var _ domainRepo.TxManager = (*TxManager)(nil)

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTransaction runs fn in a transaction. Nested calls reuse the outer
// transaction.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn returns the transaction carried by ctx, or fallback bound to ctx.
func Conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}

// InTransaction reports whether ctx carries an open transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}
