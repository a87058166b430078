// Command seed fills the catalog with three phone categories and a batch of
// generated phone products. Products are created through the service layer so
// they pass the same validation as API writes.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/internal/cache"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/events"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"

	catRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	count := flag.Int("count", 10, "number of products to generate")
	reset := flag.Bool("reset", true, "delete existing products first")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: true,
		Encoding:      "console",
		Level:         "info",
	})
	defer appLogger.Sync()

	ctx := context.Background()
	db, err := database.NewPostgres(ctx, &database.Config{
		DatabaseURL:  cfg.Postgres.DatabaseURL,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()

	if _, err := database.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Could not apply migrations", zap.Error(err))
	}

	// A running server may hold cached product lists in Redis.
	var listCache cache.Cache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, &cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		listCache = cache.NewRedisCache(redisClient)
	}

	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	validator := validation.New()
	catUC := catUCPkg.NewCategoryUseCase(catRepo, validator, events.NopPublisher{}, listCache, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, catRepo, validator, prodUCPkg.Options{
		Cache:    listCache,
		CacheTTL: cfg.Redis.CacheTTL,
	}, appLogger)

	// Categories are upserted by name.
	categoryIDs := make([]string, 0, 3)
	for _, input := range seedCategories() {
		existing, err := catRepo.FindByName(ctx, input.Name)
		if err != nil {
			appLogger.Fatal("Could not look up category", zap.String("name", input.Name), zap.Error(err))
		}
		if existing != nil {
			categoryIDs = append(categoryIDs, existing.ID)
			continue
		}
		input := input
		cat, err := catUC.CreateCategory(ctx, &input)
		if err != nil {
			appLogger.Fatal("Could not create category", zap.String("name", input.Name), zap.Error(err))
		}
		categoryIDs = append(categoryIDs, cat.ID)
	}

	if *reset {
		if err := resetProducts(ctx, db, listCache); err != nil {
			appLogger.Fatal("Could not clear products", zap.Error(err))
		}
	}

	gen := newGenerator(*seed)
	created := 0
	for i := 0; i < *count; i++ {
		input := gen.phone(categoryIDs)
		if _, err := prodUC.CreateProduct(ctx, input); err != nil {
			appLogger.Warn("Skipped product", zap.String("slug", input.Slug), zap.Error(err))
			continue
		}
		created++
	}

	appLogger.Info("Seed data created successfully",
		zap.Int("categories", len(categoryIDs)),
		zap.Int("products", created),
	)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// resetProducts deletes every product and drops cached product lists.
func resetProducts(ctx context.Context, db execer, c cache.Cache) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM products"); err != nil {
		return errors.Wrap(err, "delete products")
	}
	return errors.Wrap(c.DeletePrefix(ctx, cache.ProductListPrefix), "clear product list cache")
}
