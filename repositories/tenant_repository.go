package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"timetracker/models"
)

type TenantRepository interface {
	Create(tenant *models.Tenant) error
	GetByID(id uuid.UUID) (*models.Tenant, error)
	GetActiveByID(id uuid.UUID) (*models.Tenant, error)
	GetByName(name string) (*models.Tenant, error)
	List(params models.TenantListParams) ([]models.Tenant, int64, error)
	Update(tenant *models.Tenant) error
	CountUsers(tenantID uuid.UUID) (int64, error)
	CountProjects(tenantID uuid.UUID) (int64, error)
	CountActive() (int64, error)
}

type tenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

func (r *tenantRepository) GetByID(id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Where("id = ?", id).First(&tenant).Error
	return &tenant, err
}

func (r *tenantRepository) GetActiveByID(id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Where("id = ? AND active = ?", id, true).First(&tenant).Error
	return &tenant, err
}

func (r *tenantRepository) GetByName(name string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Where("name = ?", name).First(&tenant).Error
	return &tenant, err
}

func (r *tenantRepository) List(params models.TenantListParams) ([]models.Tenant, int64, error) {
	var tenants []models.Tenant
	var total int64

	query := r.db.Model(&models.Tenant{})

	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.PerPage
	err := query.Offset(offset).Limit(params.PerPage).Find(&tenants).Error

	return tenants, total, err
}

func (r *tenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

func (r *tenantRepository) CountUsers(tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (r *tenantRepository) CountProjects(tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (r *tenantRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tenant{}).Where("active = ?", true).Count(&count).Error
	return count, err
}
