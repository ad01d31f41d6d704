package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/timecraft-app/timecraft-api/internal/service"
	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
	"github.com/timecraft-app/timecraft-api/pkg/response"
)

// NoteHandler manages subject note endpoints.
type NoteHandler struct {
	service *service.NoteService
}

// NewNoteHandler constructs handler.
func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{service: svc}
}

// Subjects godoc
// @Summary List subjects that have notes
// @Tags Notes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notes/subjects [get]
func (h *NoteHandler) Subjects(c *gin.Context) {
	subjects, err := h.service.Subjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// BySubject godoc
// @Summary List notes under a subject
// @Tags Notes
// @Produce json
// @Param subject path string true "Subject"
// @Success 200 {object} response.Envelope
// @Router /notes/{subject} [get]
func (h *NoteHandler) BySubject(c *gin.Context) {
	notes, err := h.service.BySubject(c.Request.Context(), pathValue(c, "subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes, nil)
}

// Get godoc
// @Summary Get one note
// @Tags Notes
// @Produce json
// @Param subject path string true "Subject"
// @Param title path string true "Title"
// @Success 200 {object} response.Envelope
// @Router /notes/{subject}/{title} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.service.Get(c.Request.Context(), pathValue(c, "subject"), pathValue(c, "title"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note, nil)
}

// Save godoc
// @Summary Create or update a note
// @Tags Notes
// @Accept json
// @Produce json
// @Param payload body service.SaveNoteRequest true "Note payload"
// @Success 200 {object} response.Envelope
// @Router /notes [put]
func (h *NoteHandler) Save(c *gin.Context) {
	var req service.SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	note, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note, nil)
}

// Delete godoc
// @Summary Delete one note
// @Tags Notes
// @Produce json
// @Param subject path string true "Subject"
// @Param title path string true "Title"
// @Success 200 {object} response.Envelope
// @Router /notes/{subject}/{title} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), pathValue(c, "subject"), pathValue(c, "title")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// pathValue decodes a path parameter; subjects and titles may contain
// percent-encoded characters.
func pathValue(c *gin.Context, name string) string {
	raw := c.Param(name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
