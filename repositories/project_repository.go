package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"timetracker/models"
)

type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(tenantID, id uuid.UUID) (*models.Project, error)
	GetActiveByID(tenantID, id uuid.UUID) (*models.Project, error)
	GetByName(tenantID, clientID uuid.UUID, name string) (*models.Project, error)
	List(tenantID uuid.UUID, params models.ProjectListParams) ([]models.Project, int64, error)
	ListByClient(clientID uuid.UUID) ([]models.Project, error)
	Update(project *models.Project) error
	HoursTracked(projectID uuid.UUID) (float64, error)

	ListTechnologies(projectID uuid.UUID) ([]models.Technology, error)
	GetAssignment(projectID, technologyID uuid.UUID) (*models.ProjectTechnology, error)
	AssignTechnology(assignment *models.ProjectTechnology) error
	RemoveAssignment(assignment *models.ProjectTechnology) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) GetByID(tenantID, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&project).Error
	return &project, err
}

func (r *projectRepository) GetActiveByID(tenantID, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("id = ? AND tenant_id = ? AND active = ?", id, tenantID, true).
		First(&project).Error
	return &project, err
}

func (r *projectRepository) GetByName(tenantID, clientID uuid.UUID, name string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("tenant_id = ? AND client_id = ? AND name = ?", tenantID, clientID, name).
		First(&project).Error
	return &project, err
}

func (r *projectRepository) List(tenantID uuid.UUID, params models.ProjectListParams) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := r.db.Model(&models.Project{}).Where("tenant_id = ?", tenantID)

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if params.ClientID != "" {
		query = query.Where("client_id = ?", params.ClientID)
	}

	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.PerPage
	err := query.Offset(offset).Limit(params.PerPage).Find(&projects).Error

	return projects, total, err
}

func (r *projectRepository) ListByClient(clientID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("client_id = ?", clientID).Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *projectRepository) HoursTracked(projectID uuid.UUID) (float64, error) {
	var minutes int64
	err := r.db.Model(&models.TimeEntry{}).
		Where("project_id = ? AND end_time IS NOT NULL", projectID).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&minutes).Error
	return float64(minutes) / 60.0, err
}

func (r *projectRepository) ListTechnologies(projectID uuid.UUID) ([]models.Technology, error) {
	var technologies []models.Technology
	err := r.db.
		Joins("JOIN project_technologies ON project_technologies.technology_id = technologies.id").
		Where("project_technologies.project_id = ?", projectID).
		Find(&technologies).Error
	return technologies, err
}

func (r *projectRepository) GetAssignment(projectID, technologyID uuid.UUID) (*models.ProjectTechnology, error) {
	var assignment models.ProjectTechnology
	err := r.db.Where("project_id = ? AND technology_id = ?", projectID, technologyID).
		First(&assignment).Error
	return &assignment, err
}

func (r *projectRepository) AssignTechnology(assignment *models.ProjectTechnology) error {
	return r.db.Create(assignment).Error
}

func (r *projectRepository) RemoveAssignment(assignment *models.ProjectTechnology) error {
	return r.db.Delete(assignment).Error
}
