// internal/handlers/session_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/service"
	"go_5_study_keep/internal/webutil"
)

type SessionHandler struct {
	service service.SessionService
	logger  *slog.Logger
}

func NewSessionHandler(s service.SessionService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		service: s,
		logger:  logger,
	}
}

// RecordSession は学習セッションを1件記録します
func (h *SessionHandler) RecordSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RecordSession"))
	identity := middleware.GetIdentity(r.Context())

	var req model.RecordSessionRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	session, err := h.service.RecordSession(r.Context(), identity, &req)
	if err != nil {
		logServiceError(w, logger, "Error recording session in service", err)
		return
	}

	logger.Info("Session recorded successfully", slog.String("session_id", session.ID), slog.String("mode", string(session.Mode)))
	webutil.RespondWithJSON(w, http.StatusCreated, session, logger)
}

// ListSessions はセッション履歴を返します。study_set_id で絞り込めます。
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListSessions"))
	identity := middleware.GetIdentity(r.Context())
	studySetID := r.URL.Query().Get("study_set_id")

	sessions, err := h.service.ListSessions(r.Context(), identity, studySetID)
	if err != nil {
		logServiceError(w, logger, "Error listing sessions in service", err)
		return
	}

	logger.Info("Sessions listed successfully", slog.Int("count", len(sessions)))
	webutil.RespondWithJSON(w, http.StatusOK, sessions, logger)
}
