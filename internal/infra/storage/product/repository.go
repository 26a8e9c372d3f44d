package product

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var productColumns = []string{
	"id",
	"type",
	"name",
	"base_price",
	"max_capacity",
	"board_size",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога товаров и курсов валют
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает товар по ID
// Строки, нарушающие правила типа (capacity у доски и т.п.), не отдаются наружу
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	product, err := scanProduct(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan product: %v", ErrScanRow, err)
	}

	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: id=%d: %v", ErrInvalidProduct, id, err)
	}

	return product, nil
}

// List получает все товары каталога (опционально по типу)
func (r *Repository) List(ctx context.Context, productType *domain.ProductType) ([]*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(productColumns...).
		From("products").
		OrderBy("type ASC", "id ASC")

	if productType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *productType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		if err := product.Validate(); err != nil {
			return nil, fmt.Errorf("%w: id=%d: %v", ErrInvalidProduct, product.ID, err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return products, nil
}

// GetCurrencyConfig получает курс валюты
func (r *Repository) GetCurrencyConfig(ctx context.Context, currency domain.Currency) (*domain.CurrencyConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "currency", "name", "rate", "updated_at").
		From("currency_configs").
		Where(squirrel.Eq{"currency": currency}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrencyConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.CurrencyConfig
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.Currency,
		&cfg.Name,
		&cfg.Rate,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCurrencyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrencyConfig - scan config: %v", ErrScanRow, err)
	}

	cfg.UpdatedAt = updatedAt.Time
	return &cfg, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var maxCapacity sql.NullInt32
	var boardSize sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.Type,
		&p.Name,
		&p.BasePrice,
		&maxCapacity,
		&boardSize,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if maxCapacity.Valid {
		capacity := int(maxCapacity.Int32)
		p.MaxCapacity = &capacity
	}
	if boardSize.Valid {
		size := domain.BoardSize(boardSize.String)
		p.BoardSize = &size
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
