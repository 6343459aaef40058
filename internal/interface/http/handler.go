package http

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-advisor/internal/domain/advice"
	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/domain/preferences"
	"github.com/yanqian/outfit-advisor/internal/domain/recommend"
	"github.com/yanqian/outfit-advisor/internal/domain/settings"
	"github.com/yanqian/outfit-advisor/internal/domain/weather"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc     weather.Service
	adviceSvc      advice.Service
	outfitSvc      outfit.Service
	imageSvc       outfit.ImageService
	preferencesSvc preferences.Service
	settingsSvc    settings.Service
	maxImageBytes  int64
	logger         *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	cfg *config.Config,
	weatherSvc weather.Service,
	adviceSvc advice.Service,
	outfitSvc outfit.Service,
	imageSvc outfit.ImageService,
	preferencesSvc preferences.Service,
	settingsSvc settings.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		weatherSvc:     weatherSvc,
		adviceSvc:      adviceSvc,
		outfitSvc:      outfitSvc,
		imageSvc:       imageSvc,
		preferencesSvc: preferencesSvc,
		settingsSvc:    settingsSvc,
		maxImageBytes:  cfg.Images.MaxBytes,
		logger:         logger.With("component", "http.handler"),
	}
}

type hourlyEntry struct {
	weather.HourlyReading
	Weather string `json:"weather"`
}

// CurrentWeather returns the current reading for a city with its outfit.
func (h *Handler) CurrentWeather(c *gin.Context) {
	resp, err := h.adviceSvc.ForCity(c.Request.Context(), c.Query("city"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HourlyWeather returns today's hourly forecast for a city.
func (h *Handler) HourlyWeather(c *gin.Context) {
	forecast, err := h.weatherSvc.Hourly(c.Request.Context(), c.Query("city"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	hours := make([]hourlyEntry, 0, len(forecast))
	for _, hr := range forecast {
		hours = append(hours, hourlyEntry{HourlyReading: hr, Weather: hr.Reading.String()})
	}
	c.JSON(http.StatusOK, gin.H{"city": strings.TrimSpace(c.Query("city")), "hours": hours})
}

// LatestWeather returns the last reading fetched for a city.
func (h *Handler) LatestWeather(c *gin.Context) {
	reading, ok := h.weatherSvc.Latest(c.Query("city"))
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, apperrors.CodeNotFound, "no reading for city yet", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"weather": reading.String(), "reading": reading})
}

type recommendationResponse struct {
	recommend.Recommendation
	Event *recommend.EventAdvice `json:"event,omitempty"`
}

// Recommend maps a weather string (and optional event title) to an outfit.
func (h *Handler) Recommend(c *gin.Context) {
	var req recommend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if strings.TrimSpace(req.Weather) == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "weather cannot be empty", nil))
		return
	}

	resp := recommendationResponse{Recommendation: recommend.Recommend(req.Weather)}
	if strings.TrimSpace(req.EventTitle) != "" {
		adviceForEvent := recommend.AdviseEvent(req.Weather, req.EventTitle)
		resp.Event = &adviceForEvent
	}
	c.JSON(http.StatusOK, resp)
}

// EventForecast matches calendar events to the hourly forecast.
func (h *Handler) EventForecast(c *gin.Context) {
	var req advice.EventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.adviceSvc.ForEvents(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOutfits returns saved outfits in creation order.
func (h *Handler) ListOutfits(c *gin.Context) {
	items, err := h.outfitSvc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	if items == nil {
		items = []outfit.Outfit{}
	}
	c.JSON(http.StatusOK, gin.H{"outfits": items})
}

// SaveOutfit stores a new outfit. Without force, an outfit matching a
// listed one by name and location is rejected with 409.
func (h *Handler) SaveOutfit(c *gin.Context) {
	var req outfit.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	draft := req.Draft()
	if !req.Force && h.outfitSvc.IsDuplicate(draft) {
		abortWithError(c, NewHTTPError(http.StatusConflict, "duplicate", "an outfit with this name and location already exists", nil))
		return
	}
	saved, err := h.outfitSvc.Save(c.Request.Context(), draft)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteOutfit removes an outfit and its image.
func (h *Handler) DeleteOutfit(c *gin.Context) {
	id := c.Param("id")
	if err := h.outfitSvc.Remove(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	h.imageSvc.Remove(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}

// UploadOutfitImage stores the request body as the outfit's photo.
func (h *Handler) UploadOutfitImage(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxImageBytes+1))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	img, err := h.imageSvc.Upload(c.Request.Context(), c.Param("id"), data, c.ContentType())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, img)
}

// OutfitImage streams the outfit's photo.
func (h *Handler) OutfitImage(c *gin.Context) {
	rc, img, err := h.imageSvc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer rc.Close()
	extra := map[string]string{}
	if img.ETag != "" {
		extra["ETag"] = img.ETag
	}
	c.DataFromReader(http.StatusOK, img.Size, img.ContentType, rc, extra)
}

// GetPreferences returns the preferences record, creating defaults on first use.
func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.preferencesSvc.Load(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// SavePreferences replaces the preferences record.
func (h *Handler) SavePreferences(c *gin.Context) {
	var req preferences.Preferences
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	saved, err := h.preferencesSvc.Save(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GetSettings returns the user settings.
func (h *Handler) GetSettings(c *gin.Context) {
	current, err := h.settingsSvc.Get(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, current)
}

// UpdateSettings applies a partial settings update.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req settings.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	updated, err := h.settingsSvc.Update(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
