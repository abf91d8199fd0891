// internal/middleware/dev_identity.go
package middleware

import (
	"net/http"

	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/webutil"
)

// DevUserIDHeader は開発時に利用者を指定するヘッダー
const DevUserIDHeader = "X-User-ID"

// DevIdentityMiddleware は開発時用ミドルウェアです。
// X-User-ID ヘッダーの値をそのまま利用者IDとして扱い、署名の検証は行いません。
// ヘッダーが無ければ未ログインです。
func DevIdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userID := r.Header.Get(DevUserIDHeader)
		if userID == "" {
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), model.Identity{})))
			return
		}

		if !userIDPattern.MatchString(userID) {
			logger.Warn("[DEV AUTH] Invalid X-User-ID format", "user_id", userID)
			appErr := model.NewAppError("UNAUTHORIZED", "[DEV] X-User-IDの形式が正しくありません。", DevUserIDHeader, model.ErrUnauthorized)
			webutil.HandleError(w, logger, appErr)
			return
		}

		logger.Debug("[DEV AUTH] User ID set to context (no validation)", "user_id", userID)
		ctx := WithIdentity(r.Context(), model.Identity{UserID: userID, SignedIn: true})
		ctx = WithLogger(ctx, logger.With("user_id", userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
