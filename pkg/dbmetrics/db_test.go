package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

func TestGetExecutor(t *testing.T) {
	pool := &fakeTx{}
	tx := &fakeTx{}

	ctx := context.Background()
	assert.Same(t, pool, GetExecutor(ctx, pool))
	assert.False(t, IsInTransaction(ctx))

	txCtx := WithTx(ctx, tx)
	assert.Same(t, tx, GetExecutor(txCtx, pool))
	assert.True(t, IsInTransaction(txCtx))
}

func TestOperationName(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM bookings WHERE id = $1", "select_bookings"},
		{"INSERT INTO payments (id) VALUES ($1)", "insert_payments"},
		{"UPDATE services SET name = $1", "update_services"},
		{"DELETE FROM notifications WHERE id = $1", "delete_notifications"},
		{"SELECT 1", "select"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, operationName(tt.query), tt.query)
	}
}
