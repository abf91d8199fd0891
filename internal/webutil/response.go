// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go_5_study_keep/internal/model"
)

// HandleError はエラーを解釈し、適切なJSONエラーレスポンスを返します。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	statusCode := MapErrorToStatusCode(err)

	var errResp model.APIErrorResponse
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		errResp = model.APIErrorResponse{Error: appErr.Detail()}
	} else {
		switch statusCode {
		case http.StatusNotFound:
			errResp = newErrorResponse("NOT_FOUND", "指定されたリソースが見つかりません。")
		case http.StatusBadRequest:
			errResp = newErrorResponse("INVALID_INPUT", "入力内容が正しくありません。")
		case http.StatusUnauthorized:
			errResp = newErrorResponse("UNAUTHORIZED", "認証が必要です。")
		case http.StatusForbidden:
			errResp = newErrorResponse("FORBIDDEN", "この操作は許可されていません。")
		case http.StatusConflict:
			errResp = newErrorResponse("CONFLICT", "リソースが競合しています。")
		case http.StatusBadGateway:
			errResp = newErrorResponse("UPSTREAM_ERROR", "外部サービスの呼び出しに失敗しました。")
		default:
			logger.Error("Unhandled error", slog.Any("error", err))
			errResp = newErrorResponse("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。")
		}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

func newErrorResponse(code, message string) model.APIErrorResponse {
	return model.APIErrorResponse{Error: model.ErrorDetail{Code: code, Message: message}}
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("Error marshaling JSON response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"レスポンス生成中にエラーが発生しました。"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondNoContent は 204 を返します
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
