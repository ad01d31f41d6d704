package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timecraft-app/timecraft-api/internal/models"
	"github.com/timecraft-app/timecraft-api/internal/service"
	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
	"github.com/timecraft-app/timecraft-api/pkg/response"
)

// ScheduleHandler manages class grid endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
	export  *service.ExportService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc *service.ScheduleService, export *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{service: svc, export: export}
}

// List godoc
// @Summary List classes
// @Tags Schedule
// @Produce json
// @Param day query string false "Filter by day (Mon..Sat)"
// @Param subject query string false "Filter by subject"
// @Param kind query string false "Filter by kind (lecture|lab)"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	filter := models.ClassFilter{
		Day:     c.Query("day"),
		Subject: c.Query("subject"),
		Kind:    c.Query("kind"),
	}
	classes, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// Create godoc
// @Summary Add a class to the grid
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /schedule [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update a class
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req service.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Delete a class
// @Tags Schedule
// @Produce json
// @Param id path string true "Class ID"
// @Success 204
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Check godoc
// @Summary Dry-run conflict check for a candidate class
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.CheckClassRequest true "Candidate day and time range"
// @Success 200 {object} response.Envelope
// @Router /schedule/check [post]
func (h *ScheduleHandler) Check(c *gin.Context) {
	var req service.CheckClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Check(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Export the weekly timetable
// @Tags Schedule
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)
	result, err := h.export.Timetable(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
