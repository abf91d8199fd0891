// internal/handlers/extraction_handler.go
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/service"
	"go_5_study_keep/internal/webutil"
)

// uploadFormField はアップロードするファイルのフォーム名
const uploadFormField = "file"

type ExtractionHandler struct {
	service        service.ExtractionService
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewExtractionHandler(s service.ExtractionService, maxUploadBytes int64, logger *slog.Logger) *ExtractionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionHandler{service: s, maxUploadBytes: maxUploadBytes, logger: logger}
}

// ExtractStudySet はアップロードされた PDF / テキストからカード案を返します。単語帳は作成しません。
func (h *ExtractionHandler) ExtractStudySet(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ExtractStudySet"))

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.Warn("Upload too large", slog.Int64("limit", maxErr.Limit))
			appErr := model.NewAppError("FILE_TOO_LARGE", "ファイルサイズが上限を超えています。", uploadFormField, model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Warn("Failed to parse multipart form", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "multipart/form-data でファイルを送信してください。", uploadFormField, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		logger.Warn("Upload file missing", slog.String("error", err.Error()))
		appErr := model.NewAppError("VALIDATION_ERROR", "ファイルは必須項目です。", uploadFormField, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("file_name", header.Filename))

	set, err := h.service.ExtractStudySet(r.Context(), service.Document{FileName: header.Filename, Data: data})
	if err != nil {
		logServiceError(w, logger, "Error extracting study set in service", err)
		return
	}

	logger.Info("Study set extracted successfully", slog.Int("cards", len(set.Cards)))
	webutil.RespondWithJSON(w, http.StatusOK, set, logger)
}
