// internal/handlers/analytics_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/service"
	"go_5_study_keep/internal/webutil"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  *slog.Logger
}

func NewAnalyticsHandler(s service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsHandler{service: s, logger: logger}
}

func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetAnalytics"))
	identity := middleware.GetIdentity(r.Context())

	analytics, err := h.service.GetAnalytics(r.Context(), identity)
	if err != nil {
		logServiceError(w, logger, "Error computing analytics in service", err)
		return
	}

	logger.Info("Analytics computed successfully", slog.Int("total_sessions", analytics.TotalSessions))
	webutil.RespondWithJSON(w, http.StatusOK, analytics, logger)
}
