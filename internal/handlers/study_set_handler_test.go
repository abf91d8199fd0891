// internal/handlers/study_set_handler_test.go
package handlers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"go_5_study_keep/internal/handlers"
	"go_5_study_keep/internal/model"
	"go_5_study_keep/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStudySetRouter(t *testing.T) (*mocks.StudySetService, http.Handler) {
	mockService := mocks.NewStudySetService(t)
	api := newMemoryAPI(t)
	api.StudySets = handlers.NewStudySetHandler(mockService, testLogger)
	return mockService, newTestRouter(api)
}

func TestStudySetHandler_CreateStudySet(t *testing.T) {
	validReq := model.CreateStudySetRequest{
		Title: "Biology",
		Cards: []model.CardInput{{Term: "Cell", Definition: "Basic unit of life"}},
	}
	created := &model.StudySet{
		ID:        "set-1",
		Title:     "Biology",
		Cards:     []model.Card{{ID: "c1", Term: "Cell", Definition: "Basic unit of life"}},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	signedIn := model.Identity{UserID: "alice", SignedIn: true}

	tests := []struct {
		name           string
		userID         string
		body           interface{}
		setupMock      func(m *mocks.StudySetService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "正常系: 作成できる",
			userID: "alice",
			body:   validReq,
			setupMock: func(m *mocks.StudySetService) {
				m.On("CreateStudySet", mock.Anything, signedIn, &validReq).Return(created, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "JSONが壊れている",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:           "未知のフィールド",
			body:           `{"title":"t","cards":[{"term":"a","definition":"b"}],"extra":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:           "タイトルが空白",
			body:           model.CreateStudySetRequest{Title: "  ", Cards: validReq.Cards},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "カードが0枚",
			body:           model.CreateStudySetRequest{Title: "t", Cards: []model.CardInput{}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "定義が空のカード",
			body:           model.CreateStudySetRequest{Title: "t", Cards: []model.CardInput{{Term: "a"}}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "サービスの内部エラー",
			body: validReq,
			setupMock: func(m *mocks.StudySetService) {
				m.On("CreateStudySet", mock.Anything, model.Identity{}, &validReq).
					Return(nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の保存に失敗しました。", "", errors.New("disk full"))).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := newStudySetRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			status, body := sendRequest(t, router, httpRequestDetails{
				Method: http.MethodPost, Path: "/api/v1/study-sets", Body: tt.body, UserID: tt.userID,
			})

			assert.Equal(t, tt.expectedStatus, status, "body: %s", string(body))
			if tt.expectedCode != "" {
				verifyErrorResponse(t, body, tt.expectedCode)
				return
			}
			var got model.StudySet
			decodeBody(t, body, &got)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.Cards, got.Cards)
		})
	}
}

func TestStudySetHandler_ListStudySets(t *testing.T) {
	mockService, router := newStudySetRouter(t)
	mockService.On("ListStudySets", mock.Anything, model.Identity{}, "bio").Return(nil, nil).Once()

	status, body := sendRequest(t, router, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/study-sets?q=bio"})

	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestStudySetHandler_GetUpdateDelete(t *testing.T) {
	notFound := model.NewAppError("STUDY_SET_NOT_FOUND", "指定された単語帳が見つかりません。", "", model.ErrNotFound)
	updateReq := model.UpdateStudySetRequest{Title: "New", Cards: []model.CardInput{{ID: "c1", Term: "a", Definition: "b"}}}

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		setupMock      func(m *mocks.StudySetService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "取得",
			method: http.MethodGet,
			path:   "/api/v1/study-sets/set-1",
			setupMock: func(m *mocks.StudySetService) {
				m.On("GetStudySet", mock.Anything, model.Identity{}, "set-1").Return(&model.StudySet{ID: "set-1"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "存在しない単語帳の取得",
			method: http.MethodGet,
			path:   "/api/v1/study-sets/missing",
			setupMock: func(m *mocks.StudySetService) {
				m.On("GetStudySet", mock.Anything, model.Identity{}, "missing").Return(nil, notFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "STUDY_SET_NOT_FOUND",
		},
		{
			name:   "更新",
			method: http.MethodPut,
			path:   "/api/v1/study-sets/set-1",
			body:   updateReq,
			setupMock: func(m *mocks.StudySetService) {
				m.On("UpdateStudySet", mock.Anything, model.Identity{}, "set-1", &updateReq).
					Return(&model.StudySet{ID: "set-1", Title: "New"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "削除",
			method: http.MethodDelete,
			path:   "/api/v1/study-sets/set-1",
			setupMock: func(m *mocks.StudySetService) {
				m.On("DeleteStudySet", mock.Anything, model.Identity{}, "set-1").Return(nil).Once()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "存在しない単語帳の削除",
			method: http.MethodDelete,
			path:   "/api/v1/study-sets/missing",
			setupMock: func(m *mocks.StudySetService) {
				m.On("DeleteStudySet", mock.Anything, model.Identity{}, "missing").Return(notFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "STUDY_SET_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := newStudySetRouter(t)
			tt.setupMock(mockService)

			status, body := sendRequest(t, router, httpRequestDetails{Method: tt.method, Path: tt.path, Body: tt.body})

			assert.Equal(t, tt.expectedStatus, status, "body: %s", string(body))
			if tt.expectedCode != "" {
				verifyErrorResponse(t, body, tt.expectedCode)
			}
		})
	}
}

func TestStudySetHandler_InvalidDevUserID(t *testing.T) {
	_, router := newStudySetRouter(t)

	status, body := sendRequest(t, router, httpRequestDetails{
		Method: http.MethodGet, Path: "/api/v1/study-sets", UserID: "bad id!",
	})

	assert.Equal(t, http.StatusUnauthorized, status)
	verifyErrorResponse(t, body, "UNAUTHORIZED")
}
