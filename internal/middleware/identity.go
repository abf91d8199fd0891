package middleware

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// userIDPattern はストレージのキーにそのまま使えるユーザーIDの形式
var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// JWTIdentityMiddleware は Authorization ヘッダーの Bearer トークンから利用者を特定します。
// ヘッダーが無ければ未ログインとして通し、トークンが不正なら 401 を返します。
func JWTIdentityMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), model.Identity{})))
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			token, err := jwt.Parse(headerParts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			}, jwt.WithIssuer(cfg.JWT.Issuer))
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || !userIDPattern.MatchString(subject) {
				logger.Warn("JWT auth failed: Invalid subject (sub) claim", "subject", subject, "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンのユーザー情報が不正です。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := WithIdentity(r.Context(), model.Identity{UserID: subject, SignedIn: true})
			ctx = WithLogger(ctx, logger.With("user_id", subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity は利用者情報をコンテキストに格納します
func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, model.UserIDKey, id)
}

// GetIdentity はコンテキストから利用者情報を取得します。無ければ未ログイン扱いです。
func GetIdentity(ctx context.Context) model.Identity {
	if id, ok := ctx.Value(model.UserIDKey).(model.Identity); ok {
		return id
	}
	return model.Identity{}
}
