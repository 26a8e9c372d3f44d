package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
)

// MaxSerializableAttempts сколько раз DoSerializable запускает fn при конфликтах сериализации
const MaxSerializableAttempts = 3

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Manager выполняет функцию в транзакции, передавая её через контекст.
// Репозитории получают транзакцию через dbmetrics.GetExecutor
type Manager struct {
	db TxBeginner
}

func NewTransactionManager(db TxBeginner) *Manager {
	return &Manager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// conflictReporter реализуется транзакцией, которая отслеживает ошибки сериализации
type conflictReporter interface {
	Conflicted() bool
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// Если транзакция проиграла конфликт сериализации, fn запускается заново в новой транзакции:
// повторный прогон видит зафиксированные изменения конкурента и возвращает бизнес-ошибку.
// fn должна быть идемпотентной относительно своего внешнего состояния
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= MaxSerializableAttempts; attempt++ {
		var conflicted bool
		conflicted, err = m.runOnce(ctx, opts, fn)
		if err == nil || !conflicted {
			return err
		}
	}
	return err
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	_, err := m.runOnce(ctx, opts, fn)
	return err
}

// runOnce выполняет fn в новой транзакции и сообщает, был ли конфликт сериализации
func (m *Manager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (conflicted bool, err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if reporter, ok := tx.(conflictReporter); ok {
			conflicted = reporter.Conflicted()
		}
	}()

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return false, fmt.Errorf("%w: %v (rollback: %v)", ErrRollback, err, rbErr)
		}
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrCommit, err)
	}
	return false, nil
}
