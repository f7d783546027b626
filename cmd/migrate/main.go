package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/billing"
	"github.com/promptdeck/backend/internal/domain/featureflag"
	"github.com/promptdeck/backend/internal/domain/identity"
	"github.com/promptdeck/backend/internal/domain/prompt"
	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/storage"
	"github.com/promptdeck/backend/internal/infrastructure/config"
	"github.com/promptdeck/backend/internal/infrastructure/logger"
	"github.com/promptdeck/backend/internal/infrastructure/persistence"
	"github.com/promptdeck/backend/internal/infrastructure/persistence/models"
)

// writeModels are the aggregate tables kept in the write store
var writeModels = []any{
	&models.TenantModel{},
	&models.UserModel{},
	&models.PlanModel{},
	&models.FeatureModel{},
	&models.PromptModel{},
	&models.FileModel{},
	&models.SagaInstanceModel{},
	&models.SagaStepModel{},
	&models.SagaLogModel{},
}

// viewModels are the denormalized tables kept in the read store
var viewModels = []any{
	&identity.TenantView{},
	&identity.UserView{},
	&billing.PlanView{},
	&featureflag.FeatureView{},
	&prompt.PromptView{},
	&storage.FileView{},
	&saga.InstanceView{},
	&saga.StepView{},
	&saga.LogView{},
}

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

	if err := migrate(cfg, log); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Migration completed")
}

func migrate(cfg *config.Config, log *zap.Logger) error {
	writeDB, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open write store: %w", err)
	}
	defer func() {
		_ = writeDB.Close()
	}()

	log.Info("Migrating write store", zap.String("database", cfg.Database.DBName))
	if err := writeDB.DB.AutoMigrate(writeModels...); err != nil {
		return fmt.Errorf("migrate write store: %w", err)
	}

	// View tables live next to the write tables unless a separate read
	// store is configured
	readDB := writeDB
	readName := cfg.Database.DBName
	if cfg.HasSeparateReadStore() {
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel("warn"))
		readDB, err = persistence.NewReadDatabase(&cfg.ReadDB, gormLog)
		if err != nil {
			return fmt.Errorf("open read store: %w", err)
		}
		defer func() {
			_ = readDB.Close()
		}()
		readName = cfg.ReadDB.DBName
	}

	log.Info("Migrating read store", zap.String("database", readName))
	if err := readDB.DB.AutoMigrate(viewModels...); err != nil {
		return fmt.Errorf("migrate read store: %w", err)
	}
	return nil
}
