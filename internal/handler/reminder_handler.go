package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timecraft-app/timecraft-api/internal/service"
	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
	"github.com/timecraft-app/timecraft-api/pkg/response"
)

// ReminderHandler manages reminder endpoints.
type ReminderHandler struct {
	service *service.ReminderService
}

// NewReminderHandler constructs handler.
func NewReminderHandler(svc *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: svc}
}

// List godoc
// @Summary List reminders
// @Tags Reminders
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminders, nil)
}

// Create godoc
// @Summary Create a reminder and schedule its notifications
// @Tags Reminders
// @Accept json
// @Produce json
// @Param payload body service.CreateReminderRequest true "Reminder payload"
// @Success 201 {object} response.Envelope
// @Router /reminders [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	var req service.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reminder, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reminder)
}

// Preview godoc
// @Summary Preview notification instants for a reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Param payload body service.PreviewOccurrencesRequest true "Occurrence inputs"
// @Success 200 {object} response.Envelope
// @Router /reminders/preview [post]
func (h *ReminderHandler) Preview(c *gin.Context) {
	var req service.PreviewOccurrencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Delete a reminder and cancel its notifications
// @Tags Reminders
// @Produce json
// @Param id path string true "Reminder ID"
// @Success 204
// @Router /reminders/{id} [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
