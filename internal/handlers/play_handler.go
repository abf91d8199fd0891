// internal/handlers/play_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/service"
	"go_5_study_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type PlayHandler struct {
	service service.PlayService
	logger  *slog.Logger
}

func NewPlayHandler(s service.PlayService, logger *slog.Logger) *PlayHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayHandler{service: s, logger: logger}
}

// StartPlay は単語帳のカードでフラッシュカード・クイズ・マッチングを開始します
func (h *PlayHandler) StartPlay(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "set_id")
	logger := h.logger.With(slog.String("handler", "StartPlay"), slog.String("study_set_id", setID))
	identity := middleware.GetIdentity(r.Context())

	var req model.StartPlayRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	view, err := h.service.StartPlay(r.Context(), identity, setID, &req)
	if err != nil {
		logServiceError(w, logger, "Error starting play in service", err)
		return
	}

	logger.Info("Play started successfully", slog.String("play_id", view.ID), slog.String("mode", string(view.Mode)))
	webutil.RespondWithJSON(w, http.StatusCreated, view, logger)
}

func (h *PlayHandler) GetPlay(w http.ResponseWriter, r *http.Request) {
	playID := chi.URLParam(r, "play_id")
	logger := h.logger.With(slog.String("handler", "GetPlay"), slog.String("play_id", playID))
	identity := middleware.GetIdentity(r.Context())

	view, err := h.service.GetPlay(r.Context(), identity, playID)
	if err != nil {
		logServiceError(w, logger, "Error getting play from service", err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

// ApplyAction はプレイに操作を1つ適用し、適用後の状態を返します
func (h *PlayHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	playID := chi.URLParam(r, "play_id")
	logger := h.logger.With(slog.String("handler", "ApplyAction"), slog.String("play_id", playID))
	identity := middleware.GetIdentity(r.Context())

	var req model.PlayActionRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	view, err := h.service.ApplyAction(r.Context(), identity, playID, &req)
	if err != nil {
		logServiceError(w, logger, "Error applying play action in service", err)
		return
	}

	logger.Debug("Play action applied", slog.String("action", req.Action), slog.String("status", string(view.Status)))
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

// AbandonPlay はプレイを中断します。未完了なら completed=false のセッションを記録します。
func (h *PlayHandler) AbandonPlay(w http.ResponseWriter, r *http.Request) {
	playID := chi.URLParam(r, "play_id")
	logger := h.logger.With(slog.String("handler", "AbandonPlay"), slog.String("play_id", playID))
	identity := middleware.GetIdentity(r.Context())

	view, err := h.service.AbandonPlay(r.Context(), identity, playID)
	if err != nil {
		logServiceError(w, logger, "Error abandoning play in service", err)
		return
	}

	logger.Info("Play abandoned successfully", slog.String("status", string(view.Status)))
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}
