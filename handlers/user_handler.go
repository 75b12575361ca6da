package handlers

import (
	"github.com/gin-gonic/gin"

	"timetracker/helper"
	"timetracker/middleware"
	"timetracker/models"
	"timetracker/services"
)

type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, httpHelper *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, Helper: httpHelper}
}

func (h *UserHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req models.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	user, err := h.userService.Create(claims.TenantID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "User created", user)
}

func (h *UserHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var params models.UserListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.userService.List(claims.TenantID, params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Users loaded", response)
}

func (h *UserHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	userID, ok := parseUUIDParam(c, h.Helper, "user_id")
	if !ok {
		return
	}

	user, err := h.userService.Get(claims.TenantID, claims.UserID, userID, claims.IsAdmin())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User loaded", user)
}

func (h *UserHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)

	userID, ok := parseUUIDParam(c, h.Helper, "user_id")
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	user, err := h.userService.Update(claims.TenantID, claims.UserID, userID, claims.IsAdmin(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User updated", user)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	claims := middleware.GetClaims(c)

	userID, ok := parseUUIDParam(c, h.Helper, "user_id")
	if !ok {
		return
	}

	var req models.UserRoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	user, err := h.userService.UpdateRole(claims.TenantID, userID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Role updated", user)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	claims := middleware.GetClaims(c)

	userID, ok := parseUUIDParam(c, h.Helper, "user_id")
	if !ok {
		return
	}

	user, err := h.userService.Deactivate(claims.TenantID, userID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User deactivated", user)
}

func (h *UserHandler) Profile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	user, err := h.userService.Get(claims.TenantID, claims.UserID, claims.UserID, claims.IsAdmin())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	user, err := h.userService.Update(claims.TenantID, claims.UserID, claims.UserID, claims.IsAdmin(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile updated", user)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	if err := h.userService.ChangePassword(claims.UserID, req, c.ClientIP(), c.Request.UserAgent()); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Password changed",
		models.StandardResponse{Message: "Password changed successfully"})
}

func (h *UserHandler) Activity(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var params struct {
		Page    int `form:"page,default=1"`
		PerPage int `form:"per_page,default=10"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.userService.Activity(claims.UserID, params.Page, params.PerPage)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Activity loaded", response)
}
