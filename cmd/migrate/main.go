package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	log.Info("Running schema migration",
		zap.String("database", cfg.Database.DBName),
		zap.String("host", cfg.Database.Host),
	)

	err = db.DB.AutoMigrate(
		&catalog.Channel{},
		&catalog.Category{},
		&catalog.CategoryChannel{},
		&catalog.Product{},
		&catalog.Package{},
		&catalog.ProductVariant{},
		&catalog.Additive{},
		&catalog.ProductAdditive{},
		&catalog.ProductImage{},
		&order.Order{},
		&order.Item{},
		&order.ItemVariant{},
		&order.ItemAdditive{},
		&order.Address{},
	)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migration completed")
}
