package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"timetracker/helper"
	"timetracker/middleware"
	"timetracker/models"
	"timetracker/services"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, httpHelper *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: httpHelper}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.authService.Register(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Registration successful", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.authService.Login(req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Login successful", response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)

	if err := h.authService.Logout(claims.UserID, c.ClientIP(), c.Request.UserAgent()); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Logout successful", models.StandardResponse{Message: "Successfully logged out"})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	claims := middleware.GetClaims(c)

	response, err := h.authService.Refresh(claims.UserID, claims.TenantID, claims.Email, claims.Role)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Token refreshed", response)
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)

	user, err := h.authService.Me(claims.UserID, claims.TenantID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", user)
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	if err := h.authService.RequestPasswordReset(req); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Password reset requested",
		models.StandardResponse{Message: "If the email exists, a password reset link has been sent"})
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req models.PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	if err := h.authService.ConfirmPasswordReset(req); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Password reset",
		models.StandardResponse{Message: "Password has been reset successfully"})
}

func (h *AuthHandler) SelectTenant(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req models.TenantSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.authService.SelectTenant(claims.UserID, claims.TenantID, claims.Role, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tenant selected", response)
}

func (h *AuthHandler) Tenants(c *gin.Context) {
	claims := middleware.GetClaims(c)

	response, err := h.authService.UserTenants(claims.TenantID, claims.Role)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tenants loaded", response)
}

func (h *AuthHandler) AcceptInvitation(c *gin.Context) {
	var req models.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.authService.AcceptInvitation(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Invitation accepted", response)
}

// parseUUIDParam reads a uuid path parameter, replying 400 on garbage input.
func parseUUIDParam(c *gin.Context, httpHelper *helper.HTTPHelper, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpHelper.SendBadRequest(c, "Invalid "+name, httpHelper.EmptyJsonMap())
		return uuid.Nil, false
	}
	return id, true
}
