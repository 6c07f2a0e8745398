package app

import (
	"context"
	"fmt"

	"quote_rollup/internal/adapter/persistence/repository"
	"quote_rollup/internal/infrastructure/database"
	"quote_rollup/internal/observability"
	"quote_rollup/internal/pkg/logger"
	"quote_rollup/internal/usecase"
	"quote_rollup/internal/usecase/interfaces"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Container holds the use cases wired to the configured record store.
type Container struct {
	Config        Config
	Log           *logger.Logger
	Rollup        usecase.IRecomputeUseCase
	Quotes        usecase.IQuoteUseCase
	Opportunities usecase.IOpportunityUseCase

	migrate func(context.Context) error
	closers []func(context.Context) error
}

// Build connects the record store selected by cfg.StoreDriver and wires the
// use cases on top of it.
func Build(ctx context.Context, cfg Config, log *logger.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}
	c.closers = append(c.closers, observability.InitOTel(ctx, log))

	var (
		quotes        interfaces.IQuoteRepository
		opportunities interfaces.IOpportunityRepository
	)

	switch cfg.StoreDriver {
	case StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoConfigFromEnv())
		if err != nil {
			return nil, fmt.Errorf("connect dynamodb: %w", err)
		}
		quotes = repository.NewQuoteDynamoRepository(ddb)
		opportunities = repository.NewOpportunityDynamoRepository(ddb)
		c.migrate = func(ctx context.Context) error {
			return repository.EnsureDynamoTables(ctx, ddb)
		}
	case StorePostgres, StoreSQLite:
		db, err := openGorm(ctx, cfg)
		if err != nil {
			return nil, err
		}
		quotes = repository.NewQuoteGormRepository(db)
		opportunities = repository.NewOpportunityGormRepository(db)
		c.migrate = func(context.Context) error {
			return repository.MigrateGorm(db)
		}
		c.closers = append(c.closers, func(context.Context) error {
			return database.CloseGorm(db)
		})
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	c.Wire(quotes, opportunities)
	log.Info("record store ready", "driver", cfg.StoreDriver)
	return c, nil
}

// Wire builds the use cases over the given repositories.
func (c *Container) Wire(quotes interfaces.IQuoteRepository, opportunities interfaces.IOpportunityRepository) {
	rollup := usecase.NewRecomputeUseCase(quotes, opportunities, c.Log)
	c.Rollup = rollup
	c.Quotes = usecase.NewQuoteUseCase(quotes, opportunities, rollup, c.Log)
	c.Opportunities = usecase.NewOpportunityUseCase(opportunities, c.Config.DefaultCurrency)
}

// Migrate creates the store schema when it does not exist yet.
func (c *Container) Migrate(ctx context.Context) error {
	if c.migrate == nil {
		return nil
	}
	return c.migrate(ctx)
}

// Close releases the store connection and flushes pending spans.
func (c *Container) Close(ctx context.Context) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			c.Log.Warn("shutdown step failed", "error", err)
		}
	}
	c.Log.Sync()
}

func openGorm(ctx context.Context, cfg Config) (*gorm.DB, error) {
	if cfg.StoreDriver == StorePostgres {
		return database.ConnectPostgres(ctx, cfg.PostgresDSN)
	}
	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm sqlite: %w", err)
	}
	return db, nil
}
