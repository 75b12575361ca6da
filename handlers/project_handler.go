package handlers

import (
	"github.com/gin-gonic/gin"

	"timetracker/helper"
	"timetracker/middleware"
	"timetracker/models"
	"timetracker/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
	Helper         *helper.HTTPHelper
}

func NewProjectHandler(projectService services.ProjectService, httpHelper *helper.HTTPHelper) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, Helper: httpHelper}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req models.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.projectService.Create(claims.TenantID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Project created", response)
}

func (h *ProjectHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var params models.ProjectListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.projectService.List(claims.TenantID, params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Projects loaded", response)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	projectID, ok := parseUUIDParam(c, h.Helper, "project_id")
	if !ok {
		return
	}

	response, err := h.projectService.Get(claims.TenantID, projectID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Project loaded", response)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)

	projectID, ok := parseUUIDParam(c, h.Helper, "project_id")
	if !ok {
		return
	}

	var req models.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	response, err := h.projectService.Update(claims.TenantID, projectID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Project updated", response)
}

func (h *ProjectHandler) Technologies(c *gin.Context) {
	claims := middleware.GetClaims(c)

	projectID, ok := parseUUIDParam(c, h.Helper, "project_id")
	if !ok {
		return
	}

	technologies, err := h.projectService.Technologies(claims.TenantID, projectID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Project technologies loaded", technologies)
}

func (h *ProjectHandler) AssignTechnology(c *gin.Context) {
	claims := middleware.GetClaims(c)

	projectID, ok := parseUUIDParam(c, h.Helper, "project_id")
	if !ok {
		return
	}
	technologyID, ok := parseUUIDParam(c, h.Helper, "technology_id")
	if !ok {
		return
	}

	if err := h.projectService.AssignTechnology(claims.TenantID, projectID, technologyID); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Technology assigned",
		models.StandardResponse{Message: "Technology assigned to project"})
}

func (h *ProjectHandler) RemoveTechnology(c *gin.Context) {
	claims := middleware.GetClaims(c)

	projectID, ok := parseUUIDParam(c, h.Helper, "project_id")
	if !ok {
		return
	}
	technologyID, ok := parseUUIDParam(c, h.Helper, "technology_id")
	if !ok {
		return
	}

	if err := h.projectService.RemoveTechnology(claims.TenantID, projectID, technologyID); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
