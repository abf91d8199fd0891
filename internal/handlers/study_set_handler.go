// internal/handlers/study_set_handler.go
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

type StudySetHandler struct {
	service service.StudySetService
	logger  *slog.Logger
}

func NewStudySetHandler(s service.StudySetService, logger *slog.Logger) *StudySetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudySetHandler{
		service: s,
		logger:  logger,
	}
}

// ListStudySets は単語帳の一覧を返します。q があればタイトルと説明で絞り込みます。
func (h *StudySetHandler) ListStudySets(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListStudySets"))
	identity := middleware.GetIdentity(r.Context())
	query := r.URL.Query().Get("q")

	sets, err := h.service.ListStudySets(r.Context(), identity, query)
	if err != nil {
		logServiceError(w, logger, "Error listing study sets in service", err)
		return
	}

	if sets == nil {
		sets = []model.StudySet{}
	}
	logger.Info("Study sets listed successfully", slog.Int("count", len(sets)), slog.String("query", query))
	webutil.RespondWithJSON(w, http.StatusOK, sets, logger)
}

// CreateStudySet は新しい単語帳を作成します
func (h *StudySetHandler) CreateStudySet(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateStudySet"))
	identity := middleware.GetIdentity(r.Context())

	var req model.CreateStudySetRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	set, err := h.service.CreateStudySet(r.Context(), identity, &req)
	if err != nil {
		logServiceError(w, logger, "Error creating study set in service", err)
		return
	}

	logger.Info("Study set created successfully", slog.String("study_set_id", set.ID))
	webutil.RespondWithJSON(w, http.StatusCreated, set, logger)
}

// GetStudySet は単語帳を1件返します
func (h *StudySetHandler) GetStudySet(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "set_id")
	logger := h.logger.With(slog.String("handler", "GetStudySet"), slog.String("study_set_id", setID))
	identity := middleware.GetIdentity(r.Context())

	set, err := h.service.GetStudySet(r.Context(), identity, setID)
	if err != nil {
		logServiceError(w, logger, "Error getting study set from service", err)
		return
	}

	logger.Info("Study set retrieved successfully")
	webutil.RespondWithJSON(w, http.StatusOK, set, logger)
}

// UpdateStudySet は単語帳のタイトル・説明・カードを置き換えます
func (h *StudySetHandler) UpdateStudySet(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "set_id")
	logger := h.logger.With(slog.String("handler", "UpdateStudySet"), slog.String("study_set_id", setID))
	identity := middleware.GetIdentity(r.Context())

	var req model.UpdateStudySetRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	set, err := h.service.UpdateStudySet(r.Context(), identity, setID, &req)
	if err != nil {
		logServiceError(w, logger, "Error updating study set in service", err)
		return
	}

	logger.Info("Study set updated successfully", slog.Int("cards", len(set.Cards)))
	webutil.RespondWithJSON(w, http.StatusOK, set, logger)
}

// DeleteStudySet は単語帳を削除します
func (h *StudySetHandler) DeleteStudySet(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "set_id")
	logger := h.logger.With(slog.String("handler", "DeleteStudySet"), slog.String("study_set_id", setID))
	identity := middleware.GetIdentity(r.Context())

	if err := h.service.DeleteStudySet(r.Context(), identity, setID); err != nil {
		logServiceError(w, logger, "Error deleting study set in service", err)
		return
	}

	logger.Info("Study set deleted successfully")
	webutil.RespondNoContent(w)
}
