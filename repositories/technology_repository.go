package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"timetracker/models"
)

type TechnologyRepository interface {
	Create(technology *models.Technology) error
	GetByID(tenantID, id uuid.UUID) (*models.Technology, error)
	GetByName(tenantID uuid.UUID, name string) (*models.Technology, error)
	List(tenantID uuid.UUID, params models.TechnologyListParams) ([]models.Technology, error)
}

type technologyRepository struct {
	db *gorm.DB
}

func NewTechnologyRepository(db *gorm.DB) TechnologyRepository {
	return &technologyRepository{db: db}
}

func (r *technologyRepository) Create(technology *models.Technology) error {
	return r.db.Create(technology).Error
}

func (r *technologyRepository) GetByID(tenantID, id uuid.UUID) (*models.Technology, error) {
	var technology models.Technology
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&technology).Error
	return &technology, err
}

func (r *technologyRepository) GetByName(tenantID uuid.UUID, name string) (*models.Technology, error) {
	var technology models.Technology
	err := r.db.Where("tenant_id = ? AND name = ?", tenantID, name).First(&technology).Error
	return &technology, err
}

func (r *technologyRepository) List(tenantID uuid.UUID, params models.TechnologyListParams) ([]models.Technology, error) {
	var technologies []models.Technology

	query := r.db.Where("tenant_id = ?", tenantID)

	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	err := query.Find(&technologies).Error
	return technologies, err
}
