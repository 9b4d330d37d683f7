package product

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos-terminal/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id, name, sku, category, price, cost, stock, is_service, image`

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE ($1 = '' OR $1 = 'all' OR category = $1)
  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR sku ILIKE '%' || $2 || '%')
ORDER BY created_at ASC, id ASC
`
	query := strings.TrimSpace(f.Query)
	rows, err := r.pool.Query(ctx, q, f.Category, query)
	if err != nil {
		r.logger.Error("product repo: list", zap.String("category", f.Category), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.String("category", f.Category), zap.String("query", query), zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("product repo: get not found", zap.String("id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, sku, category, price, cost, stock, is_service, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    sku = EXCLUDED.sku,
    category = EXCLUDED.category,
    price = EXCLUDED.price,
    cost = EXCLUDED.cost,
    stock = EXCLUDED.stock,
    is_service = EXCLUDED.is_service,
    image = EXCLUDED.image
RETURNING ` + productColumns + `
`
	cost := decimal.NullDecimal{}
	if p.Cost != nil {
		cost = decimal.NewNullDecimal(*p.Cost)
	}
	out, err := scanProduct(r.pool.QueryRow(ctx, q, p.ID, p.Name, p.SKU, p.Category, p.Price, cost, p.Stock, p.IsService, p.Image))
	if err != nil {
		r.logger.Error("product repo: upsert", zap.String("id", p.ID), zap.String("sku", p.SKU), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: upserted", zap.String("id", out.ID), zap.String("sku", out.SKU))
	return out, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var cost decimal.NullDecimal
	if err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &cost, &p.Stock, &p.IsService, &p.Image); err != nil {
		return nil, err
	}
	if cost.Valid {
		c := cost.Decimal
		p.Cost = &c
	}
	return &p, nil
}
