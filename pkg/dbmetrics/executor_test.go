package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func TestGetExecutor_PrefersTransactionFromContext(t *testing.T) {
	db := &fakeDB{}
	tx := &fakeTx{}

	assert.Same(t, db, GetExecutor(context.Background(), db))
	assert.False(t, IsInTransaction(context.Background()))

	ctx := WithTx(context.Background(), tx)
	assert.Same(t, tx, GetExecutor(ctx, db))
	assert.True(t, IsInTransaction(ctx))
}

func TestOperation(t *testing.T) {
	cases := map[string]string{
		"SELECT id FROM slots":          "select",
		"  insert into payments VALUES": "insert",
		"UPDATE slots SET status = $1":  "update",
		"DELETE FROM x":                 "delete",
		"LOCK TABLE x":                  "other",
		"":                              "unknown",
	}
	for query, want := range cases {
		assert.Equal(t, want, Operation(query), query)
	}
}

var _ DBExecutor = (*sql.DB)(nil)
var _ DBExecutor = (*sql.Tx)(nil)
var _ TxExecutor = (*Tx)(nil)
