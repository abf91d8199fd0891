// Package handlers は HTTP リクエストを解析してサービスを呼び出し、JSON レスポンスを返します。
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/webutil"
)

// bindJSON はボディをデコードしてバリデーションします。失敗時はエラーレスポンスを書き込み false を返します。
func bindJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return false
	}
	if err := webutil.ValidateStruct(dst); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return false
	}
	return true
}

// logServiceError は NotFound を Info、それ以外を Error で記録してからエラーレスポンスを返します
func logServiceError(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	if webutil.MapErrorToStatusCode(err) < http.StatusInternalServerError {
		logger.Info(msg, slog.Any("error", err))
	} else {
		logger.Error(msg, slog.Any("error", err))
	}
	webutil.HandleError(w, logger, err)
}
