package migrate

import (
	"context"
	"fmt"

	"github.com/saikambala25/goat/pkg/config"
	"github.com/saikambala25/goat/pkg/db"
	"github.com/saikambala25/goat/pkg/db/models"
	"github.com/saikambala25/goat/pkg/logger"
)

// MaybeRunDev brings the schema up to date at startup. The embedded sqlite
// driver is always migrated from the models; Postgres runs the Goose files
// only in dev with the auto-migrate flag enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg.DB.IsSQLite() {
		ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": config.DBDriverSQLite})
		logg.Info(ctx, "auto-migrating sqlite schema")
		return AutoMigrate(ctx, client)
	}

	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}

// AutoMigrate creates or updates every table from the gorm models. It is the
// schema path for sqlite, where the Postgres-specific SQL files do not apply.
func AutoMigrate(ctx context.Context, client *db.Client) error {
	if client == nil {
		return fmt.Errorf("db client is required")
	}
	if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate models: %w", err)
	}
	return nil
}
