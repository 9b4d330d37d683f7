// Package seed loads the demo catalog and customers.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/repository/category"
	custrepo "pos-terminal/internal/repository/customer"
	"pos-terminal/internal/repository/product"
)

// Repos groups the stores the fixtures are written to.
type Repos struct {
	Categories category.Repository
	Products   product.Repository
	Customers  custrepo.Repository
}

// Apply writes the fixtures into repos. It is idempotent: catalog rows are upserted and
// existing customers are left untouched.
func Apply(ctx context.Context, repos Repos, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, c := range Categories() {
		if _, err := repos.Categories.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.ID, err)
		}
	}
	for _, p := range Products() {
		if _, err := repos.Products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}
	created := 0
	for _, c := range Customers() {
		_, err := repos.Customers.Create(ctx, c)
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create customer %s: %w", c.ID, err)
		}
		created++
	}
	logger.Info("seed: applied",
		zap.Int("categories", len(Categories())),
		zap.Int("products", len(Products())),
		zap.Int("customers_created", created),
	)
	return nil
}

// ApplyPostgres seeds the database behind pool.
func ApplyPostgres(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	return Apply(ctx, Repos{
		Categories: category.NewPostgres(pool),
		Products:   product.NewPostgres(pool, logger),
		Customers:  custrepo.NewPostgres(pool, logger),
	}, logger)
}
