package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-advisor/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/weather/current", handler.CurrentWeather)
		api.GET("/weather/hourly", handler.HourlyWeather)
		api.GET("/weather/latest", handler.LatestWeather)
		api.POST("/recommendations", handler.Recommend)
		api.POST("/events/forecast", handler.EventForecast)

		api.GET("/outfits", handler.ListOutfits)
		api.POST("/outfits", handler.SaveOutfit)
		api.DELETE("/outfits/:id", handler.DeleteOutfit)
		api.PUT("/outfits/:id/image", handler.UploadOutfitImage)
		api.GET("/outfits/:id/image", handler.OutfitImage)

		api.GET("/preferences", handler.GetPreferences)
		api.PUT("/preferences", handler.SavePreferences)
		api.GET("/settings", handler.GetSettings)
		api.PUT("/settings", handler.UpdateSettings)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
