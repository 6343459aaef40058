//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/outfit-advisor/internal/bootstrap"
	"github.com/yanqian/outfit-advisor/internal/domain/advice"
	"github.com/yanqian/outfit-advisor/internal/domain/dailybrief"
	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/domain/preferences"
	"github.com/yanqian/outfit-advisor/internal/domain/settings"
	"github.com/yanqian/outfit-advisor/internal/domain/weather"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
	httpiface "github.com/yanqian/outfit-advisor/internal/interface/http"
	"github.com/yanqian/outfit-advisor/pkg/logger"
)

var weatherSet = wire.NewSet(
	provideWeatherClient,
	weather.NewState,
	weather.NewService,
	advice.NewService,
)

var storageSet = wire.NewSet(
	provideSQLiteDB,
	providePostgresPool,
	provideOutfitRepository,
	providePreferencesRepository,
	provideSettingsStore,
	provideImageStore,
)

var briefSet = wire.NewSet(
	provideDailyBriefConfig,
	providePublisher,
	dailybrief.NewService,
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		weatherSet,
		storageSet,
		briefSet,
		outfit.NewService,
		provideImageService,
		preferences.NewService,
		settings.NewService,
		provideScheduler,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}

func initializeAdvice() (advice.Service, error) {
	wire.Build(
		config.Load,
		logger.New,
		weatherSet,
	)
	return nil, nil
}
