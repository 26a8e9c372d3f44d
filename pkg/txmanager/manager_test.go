package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
)

type mockTx struct {
	dbmetrics.DBExecutor
	mock.Mock
}

func (m *mockTx) Commit() error   { return m.Called().Error(0) }
func (m *mockTx) Rollback() error { return m.Called().Error(0) }

type mockBeginner struct {
	mock.Mock
}

func (m *mockBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	args := m.Called(ctx, opts)
	if tx := args.Get(0); tx != nil {
		return tx.(dbmetrics.TxExecutor), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	tx := &mockTx{}
	tx.On("Commit").Return(nil)
	db := &mockBeginner{}
	db.On("BeginTx", mock.Anything, &sql.TxOptions{Isolation: sql.LevelSerializable}).Return(tx, nil)

	var sawTx bool
	err := NewTransactionManager(db).DoSerializable(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx)
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "Rollback")
}

func TestDo_RollsBackOnError(t *testing.T) {
	tx := &mockTx{}
	tx.On("Rollback").Return(nil)
	db := &mockBeginner{}
	db.On("BeginTx", mock.Anything, mock.Anything).Return(tx, nil)

	boom := errors.New("boom")
	err := NewTransactionManager(db).Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "Commit")
}

func TestDo_NestedCallReusesTransaction(t *testing.T) {
	tx := &mockTx{}
	tx.On("Commit").Return(nil)
	db := &mockBeginner{}
	db.On("BeginTx", mock.Anything, mock.Anything).Return(tx, nil).Once()

	m := NewTransactionManager(db)
	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(inner context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	db.AssertNumberOfCalls(t, "BeginTx", 1)
}

func TestDo_BeginFailure(t *testing.T) {
	db := &mockBeginner{}
	db.On("BeginTx", mock.Anything, mock.Anything).Return(nil, errors.New("no conn"))

	err := NewTransactionManager(db).Do(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginTx)
}

type conflictTx struct {
	mockTx
	conflicted bool
}

func (c *conflictTx) Conflicted() bool { return c.conflicted }

func TestDoSerializable_RetriesAfterSerializationConflict(t *testing.T) {
	first := &conflictTx{conflicted: true}
	first.On("Rollback").Return(nil)
	second := &conflictTx{}
	second.On("Commit").Return(nil)

	db := &mockBeginner{}
	db.On("BeginTx", mock.Anything, mock.Anything).Return(first, nil).Once()
	db.On("BeginTx", mock.Anything, mock.Anything).Return(second, nil).Once()

	attempts := 0
	err := NewTransactionManager(db).DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return errors.New("could not serialize access")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestDoSerializable_BusinessErrorIsNotRetried(t *testing.T) {
	tx := &conflictTx{}
	tx.On("Rollback").Return(nil)
	db := &mockBeginner{}
	db.On("BeginTx", mock.Anything, mock.Anything).Return(tx, nil)

	rejected := errors.New("slot is not available")
	attempts := 0
	err := NewTransactionManager(db).DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return rejected
	})

	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, 1, attempts)
}
