package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"pos-terminal/internal/config"
	"pos-terminal/internal/db"
	"pos-terminal/internal/events"
	"pos-terminal/internal/httpserver"
	"pos-terminal/internal/migrate"
	categoryrepo "pos-terminal/internal/repository/category"
	customerrepo "pos-terminal/internal/repository/customer"
	"pos-terminal/internal/repository/kv"
	productrepo "pos-terminal/internal/repository/product"
	"pos-terminal/internal/seed"
	cartsvc "pos-terminal/internal/service/cart"
	categorysvc "pos-terminal/internal/service/category"
	"pos-terminal/internal/service/checkout"
	customersvc "pos-terminal/internal/service/customer"
	productsvc "pos-terminal/internal/service/product"
	"pos-terminal/internal/service/settings"
	"pos-terminal/internal/service/till"
)

// app is the wired till and the resources that must be released on exit.
type app struct {
	deps    httpserver.Deps
	pool    *pgxpool.Pool
	closers []func() error
}

func (a *app) pinger() httpserver.Pinger {
	if a.pool == nil {
		return nil
	}
	return a.pool
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// abandon releases what a failed build already opened and reports both failures.
func (a *app) abandon(err error) error {
	return errors.Join(err, a.Close())
}

type stores struct {
	products   productrepo.Repository
	categories categoryrepo.Repository
	customers  customerrepo.Repository
	kv         kv.Repository
}

func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	a := &app{}
	var s stores
	if cfg.DBConnString == "" {
		s = memoryStores(cfg.Fixtures)
		logger.Info("store: in-memory", zap.Bool("fixtures", cfg.Fixtures))
	} else {
		pool, err := db.Connect(ctx, poolConfig(cfg), logger)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		if err := migrate.Apply(ctx, pool); err != nil {
			return nil, a.abandon(fmt.Errorf("apply migrations: %w", err))
		}
		s = stores{
			products:   productrepo.NewPostgres(pool, logger),
			categories: categoryrepo.NewPostgres(pool),
			customers:  customerrepo.NewPostgres(pool, logger),
			kv:         kv.NewPostgres(pool),
		}
		logger.Info("store: postgres")
	}

	var publisher checkout.SalePublisher = events.NewLogPublisher(logger)
	if cfg.AMQPURL != "" {
		rp, err := events.DialRabbit(ctx, events.RabbitConfig{URL: cfg.AMQPURL, Exchange: cfg.AMQPExchange}, logger)
		if err != nil {
			return nil, a.abandon(err)
		}
		a.closers = append(a.closers, rp.Close)
		publisher = rp
	}

	products := productsvc.New(s.products)
	customers := customersvc.New(s.customers)
	store := settings.New(s.kv, logger)
	current := store.Load(ctx)
	logger.Info("settings: loaded",
		zap.String("currency", string(current.Currency)),
		zap.String("tax_rate", current.TaxRate.String()),
	)

	cart := cartsvc.New()
	co := checkout.New(cart, store,
		checkout.WithDelay(cfg.PaymentDelay),
		checkout.WithPublisher(publisher),
		checkout.WithLogger(logger),
	)

	a.deps = httpserver.Deps{
		ProductSvc:  products,
		CategorySvc: categorysvc.New(s.categories),
		CustomerSvc: customers,
		Settings:    store,
		Till:        till.New(products, customers, store, cart, co),
		Checkout:    co,
	}
	return a, nil
}

func memoryStores(fixtures bool) stores {
	if !fixtures {
		return stores{
			products:   productrepo.NewMemory(nil),
			categories: categoryrepo.NewMemory(nil),
			customers:  customerrepo.NewMemory(nil),
			kv:         kv.NewMemory(),
		}
	}
	return stores{
		products:   productrepo.NewMemory(seed.Products()),
		categories: categoryrepo.NewMemory(seed.Categories()),
		customers:  customerrepo.NewMemory(seed.Customers()),
		kv:         kv.NewMemory(),
	}
}

// requirePool connects to the configured database for commands that only make sense
// against Postgres.
func requirePool(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.DBConnString == "" {
		return nil, errors.New("db_dsn required: set POS_DB_DSN or --db-dsn")
	}
	return db.Connect(ctx, poolConfig(cfg), logger)
}

func poolConfig(c config.Config) db.PoolConfig {
	return db.PoolConfig{DSN: c.DBConnString, MaxConns: c.DBMaxConns, PingTimeout: c.DBPingTimeout}
}
