package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"timetracker/models"
)

type ClientStats struct {
	ProjectCount int64
	TotalMinutes int64
	TotalRevenue float64
}

type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(tenantID, id uuid.UUID) (*models.Client, error)
	GetByName(tenantID uuid.UUID, name string) (*models.Client, error)
	List(tenantID uuid.UUID, params models.ClientListParams) ([]models.Client, int64, error)
	Update(client *models.Client) error
	Delete(client *models.Client) error
	CountActive(tenantID uuid.UUID) (int64, error)
	CountProjects(clientID uuid.UUID) (int64, error)
	Stats(clientID uuid.UUID) (*ClientStats, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

func (r *clientRepository) GetByID(tenantID, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&client).Error
	return &client, err
}

func (r *clientRepository) GetByName(tenantID uuid.UUID, name string) (*models.Client, error) {
	var client models.Client
	err := r.db.Where("tenant_id = ? AND name = ?", tenantID, name).First(&client).Error
	return &client, err
}

func (r *clientRepository) List(tenantID uuid.UUID, params models.ClientListParams) ([]models.Client, int64, error) {
	var clients []models.Client
	var total int64

	query := r.db.Model(&models.Client{}).Where("clients.tenant_id = ?", tenantID)

	if params.Active != nil {
		query = query.Where("clients.active = ?", *params.Active)
	}

	if params.Q != "" {
		pattern := "%" + params.Q + "%"
		query = query.Where("clients.name LIKE ? OR clients.contact_email LIKE ?", pattern, pattern)
	}

	if params.HasProjects != nil {
		if *params.HasProjects {
			query = query.Joins("JOIN projects ON projects.client_id = clients.id AND projects.active = ?", true).
				Distinct("clients.*")
		} else {
			query = query.Joins("LEFT JOIN projects ON projects.client_id = clients.id").
				Where("projects.id IS NULL")
		}
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.PerPage
	err := query.Offset(offset).Limit(params.PerPage).Find(&clients).Error

	return clients, total, err
}

func (r *clientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

func (r *clientRepository) Delete(client *models.Client) error {
	return r.db.Delete(client).Error
}

func (r *clientRepository) CountActive(tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Client{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Count(&count).Error
	return count, err
}

func (r *clientRepository) CountProjects(clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}

func (r *clientRepository) Stats(clientID uuid.UUID) (*ClientStats, error) {
	stats := &ClientStats{}

	err := r.db.Model(&models.Project{}).
		Where("client_id = ? AND active = ?", clientID, true).
		Count(&stats.ProjectCount).Error
	if err != nil {
		return nil, err
	}

	var result struct {
		Minutes int64
		Revenue float64
	}
	err = r.db.Raw(`
		SELECT
			COALESCE(SUM(time_entries.duration_minutes), 0) as minutes,
			COALESCE(SUM(time_entries.amount), 0) as revenue
		FROM time_entries
		JOIN projects ON projects.id = time_entries.project_id
		WHERE projects.client_id = ? AND time_entries.end_time IS NOT NULL
	`, clientID).Scan(&result).Error
	if err != nil {
		return nil, err
	}

	stats.TotalMinutes = result.Minutes
	stats.TotalRevenue = result.Revenue

	return stats, nil
}
