package handlers

import (
	"github.com/gin-gonic/gin"

	"timetracker/helper"
	"timetracker/middleware"
	"timetracker/models"
	"timetracker/services"
)

type TimeTrackingHandler struct {
	timeTrackingService services.TimeTrackingService
	Helper              *helper.HTTPHelper
}

func NewTimeTrackingHandler(timeTrackingService services.TimeTrackingService, httpHelper *helper.HTTPHelper) *TimeTrackingHandler {
	return &TimeTrackingHandler{timeTrackingService: timeTrackingService, Helper: httpHelper}
}

func (h *TimeTrackingHandler) CreateTechnology(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req models.TechnologyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	technology, err := h.timeTrackingService.CreateTechnology(claims.TenantID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Technology created", technology)
}

func (h *TimeTrackingHandler) ListTechnologies(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var params models.TechnologyListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	technologies, err := h.timeTrackingService.ListTechnologies(claims.TenantID, params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Technologies loaded", technologies)
}

func (h *TimeTrackingHandler) CreateEntry(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req models.TimeEntryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	entry, err := h.timeTrackingService.CreateEntry(claims.TenantID, claims.UserID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Time entry created", entry)
}

func (h *TimeTrackingHandler) ListEntries(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var params models.TimeEntryListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.timeTrackingService.ListEntries(claims.TenantID, claims.UserID, params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Time entries loaded", response)
}

func (h *TimeTrackingHandler) StartTimer(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req models.TimerStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	entry, err := h.timeTrackingService.StartTimer(claims.TenantID, claims.UserID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Timer started", entry)
}

func (h *TimeTrackingHandler) StopTimer(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req models.TimerStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	entry, err := h.timeTrackingService.StopTimer(claims.TenantID, claims.UserID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Timer stopped", entry)
}

func (h *TimeTrackingHandler) Dashboard(c *gin.Context) {
	claims := middleware.GetClaims(c)

	summary, err := h.timeTrackingService.Dashboard(claims.TenantID, claims.UserID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Dashboard loaded", summary)
}
