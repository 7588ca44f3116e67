package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docorch/internal/alert/noop"
	"docorch/internal/config"
	"docorch/internal/handler"
	"docorch/internal/metrics"
	"docorch/internal/router"
	"docorch/internal/service"
	"docorch/internal/session"
	"docorch/mocks"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Upload: config.UploadConfig{MaxFileSizeMB: 1},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:8501"}},
	}
	alertSvc := service.NewAlertService(noop.NewDispatcher(zap.NewNop()), zap.NewNop())
	sessionH := handler.NewSessionHandler(session.NewStore(0), new(mocks.MockExtractionService), alertSvc, cfg.Upload.MaxBytes())
	return router.Setup(cfg, zap.NewNop(), metrics.New(), sessionH, handler.NewHealthHandler(nil))
}

func TestRouter_SessionLifecycle(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sessions", http.NoBody)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/sessions/"+created.Data.ID, http.NoBody)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"populated":false`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/sessions/"+created.Data.ID+"/alert", strings.NewReader(`{"recipient_email":"a@b.c"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EMPTY")
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	r := newTestEngine(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/swagger/doc.json"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
		// gin-swagger matches on RequestURI, which only the server sets.
		req.RequestURI = path
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "docorch_http_requests_total")
}
