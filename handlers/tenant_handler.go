package handlers

import (
	"github.com/gin-gonic/gin"

	"timetracker/helper"
	"timetracker/middleware"
	"timetracker/models"
	"timetracker/services"
)

type TenantHandler struct {
	tenantService services.TenantService
	Helper        *helper.HTTPHelper
}

func NewTenantHandler(tenantService services.TenantService, httpHelper *helper.HTTPHelper) *TenantHandler {
	return &TenantHandler{tenantService: tenantService, Helper: httpHelper}
}

func (h *TenantHandler) Create(c *gin.Context) {
	var req models.TenantCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.tenantService.Create(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Tenant created", response)
}

func (h *TenantHandler) List(c *gin.Context) {
	var params models.TenantListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.tenantService.List(params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tenants loaded", response)
}

func (h *TenantHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	tenantID, ok := parseUUIDParam(c, h.Helper, "tenant_id")
	if !ok {
		return
	}

	response, err := h.tenantService.Get(tenantID, claims.TenantID, claims.IsAdmin())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tenant loaded", response)
}

func (h *TenantHandler) Update(c *gin.Context) {
	tenantID, ok := parseUUIDParam(c, h.Helper, "tenant_id")
	if !ok {
		return
	}

	var req models.TenantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.tenantService.Update(tenantID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tenant updated", response)
}

func (h *TenantHandler) Deactivate(c *gin.Context) {
	tenantID, ok := parseUUIDParam(c, h.Helper, "tenant_id")
	if !ok {
		return
	}

	response, err := h.tenantService.Deactivate(tenantID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tenant deactivated", response)
}

func (h *TenantHandler) Invite(c *gin.Context) {
	claims := middleware.GetClaims(c)

	tenantID, ok := parseUUIDParam(c, h.Helper, "tenant_id")
	if !ok {
		return
	}

	var req models.UserInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	invitation, err := h.tenantService.Invite(tenantID, claims.UserID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Invitation sent", invitation)
}

func (h *TenantHandler) Users(c *gin.Context) {
	tenantID, ok := parseUUIDParam(c, h.Helper, "tenant_id")
	if !ok {
		return
	}

	var params models.UserListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.tenantService.Users(tenantID, params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tenant users loaded", response)
}

func (h *TenantHandler) UpdateUserRole(c *gin.Context) {
	tenantID, ok := parseUUIDParam(c, h.Helper, "tenant_id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, h.Helper, "user_id")
	if !ok {
		return
	}

	var req models.UserRoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	user, err := h.tenantService.UpdateUserRole(tenantID, userID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Role updated", user)
}

func (h *TenantHandler) RemoveUser(c *gin.Context) {
	tenantID, ok := parseUUIDParam(c, h.Helper, "tenant_id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, h.Helper, "user_id")
	if !ok {
		return
	}

	if err := h.tenantService.RemoveUser(tenantID, userID); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
