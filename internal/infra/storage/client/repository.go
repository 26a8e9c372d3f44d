package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий клиентов и их балансов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "document_number", "created_at").
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.DocumentNumber, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan client: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	return &c, nil
}

// GetBalance получает баланс клиента
func (r *Repository) GetBalance(ctx context.Context, clientID int64) (*domain.Balance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("client_id", "local_amount", "foreign_amount", "updated_at").
		From("client_balances").
		Where(squirrel.Eq{"client_id": clientID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBalance - build select query: %v", ErrBuildQuery, err)
	}

	balance, err := scanBalance(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBalanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBalance - scan balance: %v", ErrScanRow, err)
	}

	return balance, nil
}

// Credit зачисляет сумму на баланс клиента в указанной валюте.
// Строка баланса создаётся при первом зачислении (INSERT ... ON CONFLICT DO UPDATE)
func (r *Repository) Credit(ctx context.Context, clientID int64, currency domain.Currency, amount decimal.Decimal) (*domain.Balance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	local, foreign := decimal.Zero, decimal.Zero
	if currency == domain.CurrencyForeign {
		foreign = amount
	} else {
		local = amount
	}

	query, args, err := psqlbuilder.Insert("client_balances").
		Columns("client_id", "local_amount", "foreign_amount").
		Values(clientID, local, foreign).
		Suffix(`ON CONFLICT (client_id) DO UPDATE SET
			local_amount = client_balances.local_amount + EXCLUDED.local_amount,
			foreign_amount = client_balances.foreign_amount + EXCLUDED.foreign_amount,
			updated_at = NOW()
			RETURNING client_id, local_amount, foreign_amount, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Credit - build upsert query: %v", ErrBuildQuery, err)
	}

	balance, err := scanBalance(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Credit - execute upsert: %v", ErrExecQuery, err)
	}

	return balance, nil
}

func scanBalance(row *sql.Row) (*domain.Balance, error) {
	var b domain.Balance
	var updatedAt sql.NullTime

	if err := row.Scan(&b.ClientID, &b.Local, &b.Foreign, &updatedAt); err != nil {
		return nil, err
	}

	b.UpdatedAt = updatedAt.Time
	return &b, nil
}
