package services

import (
	"github.com/google/uuid"

	"timetracker/models"
	"timetracker/repositories"
)

type ProjectService interface {
	Create(tenantID uuid.UUID, req models.ProjectCreateRequest) (*models.ProjectResponse, error)
	List(tenantID uuid.UUID, params models.ProjectListParams) (*models.ProjectsListResponse, error)
	Get(tenantID, projectID uuid.UUID) (*models.ProjectResponse, error)
	Update(tenantID, projectID uuid.UUID, req models.ProjectUpdateRequest) (*models.ProjectResponse, error)
	Technologies(tenantID, projectID uuid.UUID) ([]models.Technology, error)
	AssignTechnology(tenantID, projectID, technologyID uuid.UUID) error
	RemoveTechnology(tenantID, projectID, technologyID uuid.UUID) error
}

type projectService struct {
	projectRepo    repositories.ProjectRepository
	clientRepo     repositories.ClientRepository
	technologyRepo repositories.TechnologyRepository
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	clientRepo repositories.ClientRepository,
	technologyRepo repositories.TechnologyRepository,
) ProjectService {
	return &projectService{
		projectRepo:    projectRepo,
		clientRepo:     clientRepo,
		technologyRepo: technologyRepo,
	}
}

func (s *projectService) Create(tenantID uuid.UUID, req models.ProjectCreateRequest) (*models.ProjectResponse, error) {
	client, err := s.clientRepo.GetByID(tenantID, req.ClientID)
	if err != nil || !client.Active {
		return nil, models.ErrorNotFound{Message: "Client not found"}
	}

	if _, err := s.projectRepo.GetByName(tenantID, req.ClientID, req.Name); err == nil {
		return nil, models.ErrorConflict{Message: "Project with this name already exists for this client"}
	}

	project := &models.Project{
		TenantID:    tenantID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectActive,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		HourlyRate:  req.HourlyRate,
		Active:      true,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}

	return &models.ProjectResponse{Project: *project}, nil
}

func (s *projectService) List(tenantID uuid.UUID, params models.ProjectListParams) (*models.ProjectsListResponse, error) {
	if params.Status != "" && !models.ProjectStatus(params.Status).Valid() {
		return nil, models.ErrorBadRequest{Message: "Invalid project status"}
	}

	projects, total, err := s.projectRepo.List(tenantID, params)
	if err != nil {
		return nil, err
	}

	response := &models.ProjectsListResponse{
		Projects: make([]models.ProjectResponse, 0, len(projects)),
		Total:    total,
	}

	for _, project := range projects {
		hours, err := s.projectRepo.HoursTracked(project.ID)
		if err != nil {
			return nil, err
		}

		response.Projects = append(response.Projects, models.ProjectResponse{
			Project:      project,
			HoursTracked: hours,
		})

		if project.Budget != nil {
			response.TotalBudget += *project.Budget
		}
		response.TotalHours += hours

		switch project.Status {
		case models.ProjectActive:
			response.ActiveCount++
		case models.ProjectCompleted:
			response.CompletedCount++
		}
	}

	return response, nil
}

func (s *projectService) Get(tenantID, projectID uuid.UUID) (*models.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(tenantID, projectID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "Project not found"}
	}

	hours, err := s.projectRepo.HoursTracked(project.ID)
	if err != nil {
		return nil, err
	}

	return &models.ProjectResponse{Project: *project, HoursTracked: hours}, nil
}

func (s *projectService) Update(tenantID, projectID uuid.UUID, req models.ProjectUpdateRequest) (*models.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(tenantID, projectID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "Project not found"}
	}

	if req.Name != nil && *req.Name != project.Name {
		if existing, err := s.projectRepo.GetByName(tenantID, project.ClientID, *req.Name); err == nil && existing.ID != project.ID {
			return nil, models.ErrorConflict{Message: "Project with this name already exists for this client"}
		}
		project.Name = *req.Name
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		if !status.Valid() {
			return nil, models.ErrorBadRequest{Message: "Invalid project status"}
		}
		project.Status = status
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.Budget != nil {
		project.Budget = req.Budget
	}
	if req.HourlyRate != nil {
		project.HourlyRate = req.HourlyRate
	}
	if req.Active != nil {
		project.Active = *req.Active
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, err
	}

	hours, err := s.projectRepo.HoursTracked(project.ID)
	if err != nil {
		return nil, err
	}

	return &models.ProjectResponse{Project: *project, HoursTracked: hours}, nil
}

func (s *projectService) Technologies(tenantID, projectID uuid.UUID) ([]models.Technology, error) {
	if _, err := s.projectRepo.GetByID(tenantID, projectID); err != nil {
		return nil, models.ErrorNotFound{Message: "Project not found"}
	}
	return s.projectRepo.ListTechnologies(projectID)
}

func (s *projectService) AssignTechnology(tenantID, projectID, technologyID uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(tenantID, projectID); err != nil {
		return models.ErrorNotFound{Message: "Project not found"}
	}

	if _, err := s.technologyRepo.GetByID(tenantID, technologyID); err != nil {
		return models.ErrorNotFound{Message: "Technology not found"}
	}

	if _, err := s.projectRepo.GetAssignment(projectID, technologyID); err == nil {
		return models.ErrorConflict{Message: "Technology already assigned to this project"}
	}

	return s.projectRepo.AssignTechnology(&models.ProjectTechnology{
		ProjectID:    projectID,
		TechnologyID: technologyID,
	})
}

func (s *projectService) RemoveTechnology(tenantID, projectID, technologyID uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(tenantID, projectID); err != nil {
		return models.ErrorNotFound{Message: "Project not found"}
	}

	assignment, err := s.projectRepo.GetAssignment(projectID, technologyID)
	if err != nil {
		return models.ErrorNotFound{Message: "Technology not assigned to this project"}
	}

	return s.projectRepo.RemoveAssignment(assignment)
}
