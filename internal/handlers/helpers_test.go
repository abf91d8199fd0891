// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go_5_study_keep/internal/cloud"
	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/handlers"
	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/repository"
	"go_5_study_keep/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	UserID  string // 空なら未ログイン
	Headers map[string]string
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.URL = "file::memory:"
	config.ApplyDefaults(cfg)
	return cfg
}

// newTestRouter は指定した API を開発用 identity ミドルウェア付きで組み立てます
func newTestRouter(api *handlers.API) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.LoggingMiddleware(testLogger))
	api.Mount(r, middleware.DevIdentityMiddleware)
	return r
}

// newMemoryAPI はメモリ上のストアで動く本物のサービス一式を組み立てます
func newMemoryAPI(t *testing.T) *handlers.API {
	t.Helper()
	cfg := testConfig()
	store := repository.NewMemoryKVStore()
	syncSvc := service.NewSyncService(cloud.NewMemoryBlobStore(), nil, cfg)
	studySets := service.NewStudySetService(repository.NewStudySetRepository(store), syncSvc, cfg)
	sessions := service.NewSessionService(repository.NewSessionRepository(store), studySets)
	extractor, err := service.NewExtractor(cfg)
	require.NoError(t, err)

	return &handlers.API{
		StudySets:   handlers.NewStudySetHandler(studySets, testLogger),
		Sessions:    handlers.NewSessionHandler(sessions, testLogger),
		Analytics:   handlers.NewAnalyticsHandler(service.NewAnalyticsService(studySets, sessions), testLogger),
		Plays:       handlers.NewPlayHandler(service.NewPlayService(studySets, sessions, cfg), testLogger),
		Extractions: handlers.NewExtractionHandler(service.NewExtractionService(extractor), cfg.App.MaxUploadBytes, testLogger),
	}
}

// sendRequest はHTTPリクエストを送信し、ステータスコードとボディを返します。
func sendRequest(t *testing.T, handler http.Handler, details httpRequestDetails) (int, []byte) {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req := httptest.NewRequest(details.Method, details.Path, reqBodyReader)
	if details.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if details.UserID != "" {
		req.Header.Set(middleware.DevUserIDHeader, details.UserID)
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr.Code, rr.Body.Bytes()
}

// decodeBody はレスポンスボディを dst にデコードします
func decodeBody(t *testing.T, body []byte, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, dst), "body: %s", string(body))
}

// verifyErrorResponse はエラーレスポンスのコードを検証します。
func verifyErrorResponse(t *testing.T, body []byte, expectedCode string) {
	t.Helper()
	var errResp model.APIErrorResponse
	decodeBody(t, body, &errResp)
	assert.Equal(t, expectedCode, errResp.Error.Code, "body: %s", string(body))
	assert.NotEmpty(t, errResp.Error.Message)
}
