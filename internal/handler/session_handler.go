package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docorch/internal/domain"
	"docorch/internal/export"
	"docorch/internal/service"
	"docorch/internal/session"
)

// multipartOverhead is allowed on top of the file limit for form fields and boundaries.
const multipartOverhead = 1 << 20

// SessionHandler handles session, extract, alert and export endpoints.
type SessionHandler struct {
	store          *session.Store
	extractService service.ExtractionService
	alertService   service.AlertService
	maxUploadBytes int64
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	store *session.Store,
	extractService service.ExtractionService,
	alertService service.AlertService,
	maxUploadBytes int64,
) *SessionHandler {
	return &SessionHandler{
		store:          store,
		extractService: extractService,
		alertService:   alertService,
		maxUploadBytes: maxUploadBytes,
	}
}

// loadSession resolves the :id path parameter.
// Returns false if the session could not be loaded (error response already written).
func (h *SessionHandler) loadSession(c *gin.Context) (*session.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return nil, false
	}
	sess, err := h.store.Get(id)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return sess, true
}

// Create handles POST /api/v1/sessions
// @Summary Create a session
// @Description Create an empty session that holds the latest extraction for the alert action
// @Tags sessions
// @Produce json
// @Success 201 {object} Response{data=CreateSessionResponse} "Session created"
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.store.Create()
	RespondCreated(c, CreateSessionResponse{ID: sess.ID()})
}

// Get handles GET /api/v1/sessions/:id
// @Summary Get a session
// @Description Return the current snapshot; populated is false until the first extraction
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=SessionInfoDoc} "Session snapshot"
// @Failure 400 {object} ErrorResponseBody "Invalid session ID"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}
	RespondOK(c, sess.Info())
}

// Extract handles POST /api/v1/sessions/:id/extract
// @Summary Extract structured data from a document
// @Description Upload a PDF or text file with a question; the model answer replaces the session snapshot
// @Tags sessions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param file formData file true "Document (PDF, or any other file read as UTF-8 text)"
// @Param question formData string true "Question about the document" default(List the skills mentioned.)
// @Success 200 {object} Response{data=ExtractionResultDoc} "Extraction stored"
// @Failure 400 {object} ErrorResponseBody "Missing file or question"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Failure 409 {object} ErrorResponseBody "Extraction already running"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "Text could not be extracted"
// @Failure 429 {object} ErrorResponseBody "Model provider rate limit"
// @Failure 502 {object} ErrorResponseBody "Model request failed"
// @Router /sessions/{id}/extract [post]
func (h *SessionHandler) Extract(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}
		HandleError(c, domain.ErrEmptyDocument)
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.extractService.Extract(c.Request.Context(), sess, service.ExtractInput{
		Filename: header.Filename,
		Data:     data,
		Question: c.PostForm("question"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Alert handles POST /api/v1/sessions/:id/alert
// @Summary Send the alert mail
// @Description Post the session snapshot and recipient to the automation webhook and render its reply
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body AlertRequest true "Recipient"
// @Success 200 {object} Response{data=AlertViewDoc} "Webhook reply (skipped=true when no webhook is configured)"
// @Failure 400 {object} ErrorResponseBody "Missing recipient"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Failure 409 {object} ErrorResponseBody "No extraction yet, or alert already running"
// @Failure 502 {object} ErrorResponseBody "Webhook unreachable"
// @Router /sessions/{id}/alert [post]
func (h *SessionHandler) Alert(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req AlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if _, populated := sess.Get(); !populated {
			HandleError(c, domain.ErrSessionEmpty)
			return
		}
		HandleError(c, domain.ErrRecipientRequired)
		return
	}

	view, err := h.alertService.Send(c.Request.Context(), sess, req.RecipientEmail)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Export handles GET /api/v1/sessions/:id/export
// @Summary Download key points
// @Description Download the key points of the latest extraction as CSV (UTF-8 with BOM) or XLSX
// @Tags sessions
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Success 200 {file} file "Key points"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Failure 409 {object} ErrorResponseBody "No extraction yet"
// @Router /sessions/{id}/export [get]
func (h *SessionHandler) Export(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}
	state, populated := sess.Get()
	if !populated {
		HandleError(c, domain.ErrSessionEmpty)
		return
	}

	data, contentType, err := export.Render(format, state.Result)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(export.BaseName(state.Filename), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, contentType, data)
}
