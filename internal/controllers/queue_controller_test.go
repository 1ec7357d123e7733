package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthqueue-be/internal/apperrors"
	"healthqueue-be/internal/middleware"
	"healthqueue-be/internal/models"
	"healthqueue-be/internal/token"
)

type fakeQueueService struct {
	getResp    *models.QueueResponse
	getErr     error
	updateResp *models.QueueResponse
	updateErr  error
	deleteErr  error
	listResp   *models.QueueListResponse
	listErr    error
}

func (f *fakeQueueService) CreateQueue(userID int64, req *models.QueueRequest) (*models.QueueResponse, error) {
	return &models.QueueResponse{ID: 1, Title: req.Title, Content: req.Content, UserID: userID}, nil
}
func (f *fakeQueueService) GetQueue(id int64) (*models.QueueResponse, error) {
	return f.getResp, f.getErr
}
func (f *fakeQueueService) UpdateQueue(id, userID int64, req *models.QueueRequest) (*models.QueueResponse, error) {
	return f.updateResp, f.updateErr
}
func (f *fakeQueueService) DeleteQueue(id, userID int64) error {
	return f.deleteErr
}
func (f *fakeQueueService) ListQueues(page, perPage int) (*models.QueueListResponse, error) {
	return f.listResp, f.listErr
}
func (f *fakeQueueService) ListUserQueues(username string, page, perPage int) (*models.QueueListResponse, error) {
	return f.listResp, f.listErr
}

func testTokens() *token.Service {
	return token.NewService("test-secret", time.Hour, 720*time.Hour, 30*time.Minute)
}

func newTestRouter(svc *fakeQueueService, tokens *token.Service, denylist token.Denylist) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	qc := NewQueueController(svc)

	router.GET("/api/v1/queues/:id", qc.GetQueue)
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(tokens, denylist))
	{
		protected.PATCH("/queues/:id", qc.UpdateQueue)
		protected.DELETE("/queues/:id", qc.DeleteQueue)
	}
	return router
}

func bearer(t *testing.T, tokens *token.Service) string {
	t.Helper()
	tok, err := tokens.GenerateSessionToken(1, "jane@example.com", false)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestGetQueueNotFoundMapsTo404(t *testing.T) {
	router := newTestRouter(&fakeQueueService{getErr: apperrors.ErrNotFound}, testTokens(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/queues/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateQueueForbiddenMapsTo403(t *testing.T) {
	tokens := testTokens()
	router := newTestRouter(&fakeQueueService{updateErr: apperrors.ErrForbidden}, tokens, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/queues/1",
		strings.NewReader(`{"title":"Jane Doe","content":"MRI"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, tokens))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateQueueWithoutTokenIs401(t *testing.T) {
	router := newTestRouter(&fakeQueueService{}, testTokens(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/queues/1",
		strings.NewReader(`{"title":"Jane Doe","content":"MRI"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRevokedTokenIs401(t *testing.T) {
	tokens := testTokens()
	denylist := token.NewMemoryDenylist()
	router := newTestRouter(&fakeQueueService{}, tokens, denylist)

	tok, err := tokens.GenerateSessionToken(1, "jane@example.com", false)
	require.NoError(t, err)
	require.NoError(t, denylist.Revoke(context.Background(), tok, time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/queues/1",
		strings.NewReader(`{"title":"Jane Doe","content":"MRI"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateQueueRejectsEmptyTitle(t *testing.T) {
	tokens := testTokens()
	router := newTestRouter(&fakeQueueService{}, tokens, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/queues/1",
		strings.NewReader(`{"title":"","content":"MRI"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, tokens))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteQueueMissingMapsTo404(t *testing.T) {
	tokens := testTokens()
	router := newTestRouter(&fakeQueueService{deleteErr: apperrors.ErrNotFound}, tokens, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/queues/99", nil)
	req.Header.Set("Authorization", bearer(t, tokens))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQueueNonNumericIDIs404(t *testing.T) {
	router := newTestRouter(&fakeQueueService{getResp: &models.QueueResponse{ID: 1}}, testTokens(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/queues/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
