package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docorch/internal/domain"
	"docorch/internal/export"
	"docorch/internal/handler"
	"docorch/internal/parser"
	"docorch/internal/service"
	"docorch/internal/session"
	"docorch/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	h        *handler.SessionHandler
	store    *session.Store
	extract  *mocks.MockExtractionService
	alertSvc *mocks.MockAlertService
}

func newFixture(maxUpload int64) *fixture {
	store := session.NewStore(0)
	extract := new(mocks.MockExtractionService)
	alertSvc := new(mocks.MockAlertService)
	return &fixture{
		h:        handler.NewSessionHandler(store, extract, alertSvc, maxUpload),
		store:    store,
		extract:  extract,
		alertSvc: alertSvc,
	}
}

func decodeEnvelope(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	resp := decodeEnvelope(t, body)
	return resp["error"].(map[string]interface{})["code"].(string)
}

func multipartBody(t *testing.T, filename string, content []byte, question string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, _ = part.Write(content)
	}
	if question != "" {
		require.NoError(t, w.WriteField("question", question))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestSessionHandler_Create(t *testing.T) {
	f := newFixture(0)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sessions", http.NoBody)

	f.h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, resp["success"].(bool))
	id, err := uuid.Parse(resp["data"].(map[string]interface{})["id"].(string))
	require.NoError(t, err)
	_, err = f.store.Get(id)
	assert.NoError(t, err)
}

func TestSessionHandler_Get_EmptyThenPopulated(t *testing.T) {
	f := newFixture(0)
	sess := f.store.Create()

	get := func() map[string]interface{} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sessions/"+sess.ID().String(), http.NoBody)
		c.Params = gin.Params{{Key: "id", Value: sess.ID().String()}}
		f.h.Get(c)
		require.Equal(t, http.StatusOK, w.Code)
		return decodeEnvelope(t, w.Body.Bytes())["data"].(map[string]interface{})
	}

	data := get()
	assert.False(t, data["populated"].(bool))
	assert.Nil(t, data["state"])

	sess.Set("doc.txt", "q", "text", map[string]any{"risk_level": "Low"})
	data = get()
	assert.True(t, data["populated"].(bool))
	state := data["state"].(map[string]interface{})
	assert.Equal(t, "q", state["question"])
	assert.Equal(t, map[string]interface{}{"risk_level": "Low"}, state["extracted_json"])
}

func TestSessionHandler_Get_InvalidAndUnknownID(t *testing.T) {
	f := newFixture(0)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sessions/nope", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	f.h.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", errorCode(t, w.Body.Bytes()))

	id := uuid.New().String()
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sessions/"+id, http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id}}
	f.h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", errorCode(t, w.Body.Bytes()))
}

func extractRequest(t *testing.T, f *fixture, sess *session.Session, filename string, content []byte, question string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content, question)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sessions/"+sess.ID().String()+"/extract", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Params = gin.Params{{Key: "id", Value: sess.ID().String()}}
	f.h.Extract(c)
	return w
}

func TestSessionHandler_Extract_Success(t *testing.T) {
	f := newFixture(1024)
	sess := f.store.Create()

	f.extract.On("Extract", mock.Anything, sess, service.ExtractInput{
		Filename: "profile.txt",
		Data:     []byte("Alice has Python and Go skills."),
		Question: "List the skills mentioned.",
	}).Return(&domain.ExtractionResult{
		Result:    map[string]any{"risk_level": "Low"},
		Kind:      domain.DocumentKindText,
		ParseMode: domain.ParseModeStrict,
	}, nil)

	w := extractRequest(t, f, sess, "profile.txt", []byte("Alice has Python and Go skills."), "List the skills mentioned.")

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w.Body.Bytes())["data"].(map[string]interface{})
	assert.Equal(t, "text", data["kind"])
	assert.Equal(t, "strict", data["parse_mode"])
	f.extract.AssertExpectations(t)
}

func TestSessionHandler_Extract_MissingFile(t *testing.T) {
	f := newFixture(1024)
	sess := f.store.Create()

	w := extractRequest(t, f, sess, "", nil, "List the skills mentioned.")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DOCUMENT_REQUIRED", errorCode(t, w.Body.Bytes()))
	f.extract.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_Extract_FileTooLarge(t *testing.T) {
	f := newFixture(16)
	sess := f.store.Create()

	w := extractRequest(t, f, sess, "big.txt", bytes.Repeat([]byte("a"), 64), "q")

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "FILE_TOO_LARGE", errorCode(t, w.Body.Bytes()))
}

func TestSessionHandler_Extract_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"question", domain.ErrQuestionRequired, http.StatusBadRequest, "QUESTION_REQUIRED"},
		{"extraction", errors.Join(domain.ErrExtractionFailed, errors.New("xref")), http.StatusUnprocessableEntity, "EXTRACTION_FAILED"},
		{"llm", errors.Join(domain.ErrLLMUnavailable, errors.New("500")), http.StatusBadGateway, "LLM_UNAVAILABLE"},
		{"rate limit", errors.Join(domain.ErrLLMUnavailable, parser.NewRateLimitError("groq", 7*time.Second, errors.New("429"))), http.StatusTooManyRequests, "LLM_RATE_LIMITED"},
		{"busy", domain.ErrSessionBusy, http.StatusConflict, "SESSION_BUSY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(1024)
			sess := f.store.Create()
			f.extract.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := extractRequest(t, f, sess, "a.txt", []byte("x"), "q")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w.Body.Bytes()))
		})
	}
}

func TestSessionHandler_Extract_RateLimitSetsRetryAfter(t *testing.T) {
	f := newFixture(1024)
	sess := f.store.Create()
	f.extract.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, parser.NewRateLimitError("groq", 7*time.Second, errors.New("429")))

	w := extractRequest(t, f, sess, "a.txt", []byte("x"), "q")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "7", w.Header().Get("Retry-After"))
}

func alertRequest(f *fixture, sess *session.Session, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sessions/"+sess.ID().String()+"/alert", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: sess.ID().String()}}
	f.h.Alert(c)
	return w
}

func TestSessionHandler_Alert_Success(t *testing.T) {
	f := newFixture(0)
	sess := f.store.Create()
	sess.Set("doc.txt", "q", "text", map[string]any{})

	f.alertSvc.On("Send", mock.Anything, sess, "ops@example.com").Return(&domain.AlertView{
		FinalAnswer: domain.PlaceholderFinalAnswer,
		EmailBody:   domain.PlaceholderEmailBody,
		Status:      "queued",
	}, nil)

	w := alertRequest(f, sess, `{"recipient_email":"ops@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w.Body.Bytes())["data"].(map[string]interface{})
	assert.Equal(t, "queued", data["status"])
	assert.Equal(t, false, data["skipped"])
}

func TestSessionHandler_Alert_EmptySessionBeforeBody(t *testing.T) {
	f := newFixture(0)
	sess := f.store.Create()

	w := alertRequest(f, sess, `{}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SESSION_EMPTY", errorCode(t, w.Body.Bytes()))
	f.alertSvc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_Alert_MissingRecipient(t *testing.T) {
	f := newFixture(0)
	sess := f.store.Create()
	sess.Set("doc.txt", "q", "text", map[string]any{})

	w := alertRequest(f, sess, `{"recipient_email":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "RECIPIENT_REQUIRED", errorCode(t, w.Body.Bytes()))
}

func TestSessionHandler_Alert_WebhookFailure(t *testing.T) {
	f := newFixture(0)
	sess := f.store.Create()
	sess.Set("doc.txt", "q", "text", map[string]any{})
	f.alertSvc.On("Send", mock.Anything, sess, "ops@example.com").
		Return(nil, errors.Join(domain.ErrWebhookFailed, errors.New("refused")))

	w := alertRequest(f, sess, `{"recipient_email":"ops@example.com"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "WEBHOOK_FAILED", errorCode(t, w.Body.Bytes()))
}

func exportRequest(f *fixture, sess *session.Session, format string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sessions/"+sess.ID().String()+"/export?format="+format, http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: sess.ID().String()}}
	f.h.Export(c)
	return w
}

func TestSessionHandler_Export_CSV(t *testing.T) {
	f := newFixture(0)
	sess := f.store.Create()
	sess.Set("doc.txt", "q", "text", map[string]any{
		"key_points": []any{map[string]any{"key": "skills", "value": "Python, Go"}},
	})

	w := exportRequest(f, sess, "csv")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeCSV, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="doc_key_points_`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, export.BOM))
	records, err := csv.NewReader(bytes.NewReader(body[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Key", "Value"}, {"skills", "Python, Go"}}, records)
}

func TestSessionHandler_Export_XLSX(t *testing.T) {
	f := newFixture(0)
	sess := f.store.Create()
	sess.Set("doc.txt", "q", "text", map[string]any{"key_points": []any{}})

	w := exportRequest(f, sess, "xlsx")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestSessionHandler_Export_Errors(t *testing.T) {
	f := newFixture(0)
	sess := f.store.Create()

	w := exportRequest(f, sess, "csv")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SESSION_EMPTY", errorCode(t, w.Body.Bytes()))

	sess.Set("doc.txt", "q", "text", map[string]any{})
	w = exportRequest(f, sess, "docx")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_EXPORT_FORMAT", errorCode(t, w.Body.Bytes()))
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	handler.NewHealthHandler(func() error { return errors.New("not ready") }).Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	handler.NewHealthHandler(nil).Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMapDomainError_IncludesCause(t *testing.T) {
	extractErr := fmt.Errorf("extracting cv.pdf: %w", errors.Join(domain.ErrExtractionFailed, errors.New("malformed xref")))
	status, code, msg := handler.MapDomainError(extractErr)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "EXTRACTION_FAILED", code)
	assert.True(t, strings.HasPrefix(msg, "could not extract text from the document: "))
	assert.Contains(t, msg, "malformed xref")
	assert.NotContains(t, msg, "\n")

	llmErr := fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, errors.New("groq API error (status 500)"))
	_, code, msg = handler.MapDomainError(llmErr)
	assert.Equal(t, "LLM_UNAVAILABLE", code)
	assert.Contains(t, msg, "status 500")

	webhookErr := fmt.Errorf("%w: calling webhook: %w", domain.ErrWebhookFailed, &url.Error{
		Op:  "Post",
		URL: "https://n8n.example.com/webhook/secret-path",
		Err: errors.New("connection refused"),
	})
	_, code, msg = handler.MapDomainError(webhookErr)
	assert.Equal(t, "WEBHOOK_FAILED", code)
	assert.Equal(t, "the automation webhook could not be reached: connection refused", msg)
	assert.NotContains(t, msg, "secret-path")
}
