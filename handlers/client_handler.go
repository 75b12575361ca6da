package handlers

import (
	"github.com/gin-gonic/gin"

	"timetracker/helper"
	"timetracker/middleware"
	"timetracker/models"
	"timetracker/services"
)

type ClientHandler struct {
	clientService services.ClientService
	Helper        *helper.HTTPHelper
}

func NewClientHandler(clientService services.ClientService, httpHelper *helper.HTTPHelper) *ClientHandler {
	return &ClientHandler{clientService: clientService, Helper: httpHelper}
}

func (h *ClientHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req models.ClientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.clientService.Create(claims.TenantID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Client created", response)
}

func (h *ClientHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var params models.ClientListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.clientService.List(claims.TenantID, params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Clients loaded", response)
}

func (h *ClientHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	clientID, ok := parseUUIDParam(c, h.Helper, "client_id")
	if !ok {
		return
	}

	response, err := h.clientService.Get(claims.TenantID, clientID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Client loaded", response)
}

func (h *ClientHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)

	clientID, ok := parseUUIDParam(c, h.Helper, "client_id")
	if !ok {
		return
	}

	var req models.ClientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.clientService.Update(claims.TenantID, clientID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Client updated", response)
}

func (h *ClientHandler) Deactivate(c *gin.Context) {
	claims := middleware.GetClaims(c)

	clientID, ok := parseUUIDParam(c, h.Helper, "client_id")
	if !ok {
		return
	}

	response, err := h.clientService.Deactivate(claims.TenantID, clientID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Client deactivated", response)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)

	clientID, ok := parseUUIDParam(c, h.Helper, "client_id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(claims.TenantID, clientID); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

func (h *ClientHandler) Projects(c *gin.Context) {
	claims := middleware.GetClaims(c)

	clientID, ok := parseUUIDParam(c, h.Helper, "client_id")
	if !ok {
		return
	}

	response, err := h.clientService.Projects(claims.TenantID, clientID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Client projects loaded", response)
}

func (h *ClientHandler) TimeSummary(c *gin.Context) {
	claims := middleware.GetClaims(c)

	clientID, ok := parseUUIDParam(c, h.Helper, "client_id")
	if !ok {
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		h.Helper.SendBadRequest(c, "start_date and end_date are required", h.Helper.EmptyJsonMap())
		return
	}

	response, err := h.clientService.TimeSummary(claims.TenantID, clientID, startDate, endDate)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Time summary loaded", response)
}
