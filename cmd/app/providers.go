package main

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-advisor/internal/domain/dailybrief"
	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/domain/preferences"
	"github.com/yanqian/outfit-advisor/internal/domain/settings"
	"github.com/yanqian/outfit-advisor/internal/domain/weather"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
	"github.com/yanqian/outfit-advisor/internal/infra/imagestore"
	"github.com/yanqian/outfit-advisor/internal/infra/notify"
	"github.com/yanqian/outfit-advisor/internal/infra/outfitrepo"
	"github.com/yanqian/outfit-advisor/internal/infra/pgdb"
	"github.com/yanqian/outfit-advisor/internal/infra/prefsrepo"
	"github.com/yanqian/outfit-advisor/internal/infra/schedule"
	"github.com/yanqian/outfit-advisor/internal/infra/settingsstore"
	"github.com/yanqian/outfit-advisor/internal/infra/sqlitedb"
	"github.com/yanqian/outfit-advisor/internal/infra/weatherapi"
)

func provideWeatherClient(cfg *config.Config, logger *slog.Logger) weather.Client {
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Warn("weather api key not set; upstream requests will be rejected")
	}
	return weatherapi.NewClient(cfg.Weather, logger)
}

// provideSQLiteDB opens local storage. Failure here is fatal.
func provideSQLiteDB(cfg *config.Config, logger *slog.Logger) (*sql.DB, func(), error) {
	db, err := sqlitedb.Open(cfg.Storage.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("sqlite storage opened", "path", cfg.Storage.SQLitePath)
	return db, func() { db.Close() }, nil
}

// providePostgresPool returns nil when no DSN is configured or the database
// is unreachable; callers then stay on SQLite.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func()) {
	if strings.TrimSpace(cfg.Storage.Postgres.DSN) == "" {
		logger.Info("postgres dsn not set, using sqlite storage")
		return nil, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgdb.Open(ctx, cfg.Storage.Postgres)
	if err != nil {
		logger.Error("postgres unavailable, using sqlite storage", "error", err)
		return nil, func() {}
	}
	logger.Info("postgres storage enabled")
	return pool, pool.Close
}

func provideOutfitRepository(db *sql.DB, pool *pgxpool.Pool) outfit.Repository {
	if pool != nil {
		return outfitrepo.NewPostgresRepository(pool)
	}
	return outfitrepo.NewSQLiteRepository(db)
}

func providePreferencesRepository(db *sql.DB, pool *pgxpool.Pool) preferences.Repository {
	if pool != nil {
		return prefsrepo.NewPostgresRepository(pool)
	}
	return prefsrepo.NewSQLiteRepository(db)
}

func provideSettingsStore(cfg *config.Config, logger *slog.Logger) settings.Store {
	if cfg.Settings.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return settingsstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return settingsstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("settings valkey store enabled", "addr", cfg.Settings.Valkey.Addr)
			return settingsstore.NewValkeyStore(client, cfg.Settings.Valkey.Prefix)
		}
	}
	return settingsstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Settings.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Settings.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Settings.Valkey.Addr}}, nil
}

func provideImageStore(cfg *config.Config, logger *slog.Logger) outfit.ImageStore {
	if !cfg.Images.Enabled {
		return imagestore.NewMemoryStorage()
	}
	store, err := imagestore.NewS3Storage(cfg.Images, logger)
	if err != nil {
		logger.Error("failed to init image storage, using memory storage", "error", err)
		return imagestore.NewMemoryStorage()
	}
	logger.Info("s3 image storage enabled", "endpoint", cfg.Images.Endpoint, "bucket", cfg.Images.Bucket)
	return store
}

func provideImageService(cfg *config.Config, outfits outfit.Service, store outfit.ImageStore, logger *slog.Logger) outfit.ImageService {
	return outfit.NewImageService(outfits, store, cfg.Images.MaxBytes, logger)
}

func provideDailyBriefConfig(cfg *config.Config) dailybrief.Config {
	return dailybrief.Config{DefaultCity: cfg.DailyBrief.City}
}

func providePublisher(cfg *config.Config, logger *slog.Logger) (dailybrief.Publisher, func()) {
	if !cfg.MQTT.Enabled {
		return notify.NewLogPublisher(logger), func() {}
	}
	publisher, err := notify.NewMQTTPublisher(cfg.MQTT, logger)
	if err != nil {
		logger.Error("mqtt unavailable, logging notifications instead", "error", err)
		return notify.NewLogPublisher(logger), func() {}
	}
	return publisher, publisher.Close
}

// provideScheduler returns nil when the daily brief is disabled.
func provideScheduler(cfg *config.Config, brief dailybrief.Service, logger *slog.Logger) (*schedule.Scheduler, error) {
	if !cfg.DailyBrief.Enabled {
		return nil, nil
	}
	loc, err := time.LoadLocation(cfg.DailyBrief.Timezone)
	if err != nil {
		return nil, err
	}
	return schedule.NewScheduler("daily-brief", cfg.DailyBrief.Schedule, loc, brief, logger)
}
