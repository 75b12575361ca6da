package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"timetracker/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetActiveByEmail(email string) (*models.User, error)
	GetByTenantAndID(tenantID, id uuid.UUID) (*models.User, error)
	GetByTenantAndEmail(tenantID uuid.UUID, email string) (*models.User, error)
	List(tenantID uuid.UUID, params models.UserListParams) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(user *models.User) error
	CountActive(tenantID uuid.UUID) (int64, error)
	CountByRole(tenantID uuid.UUID, role models.UserRole) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	return &user, err
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *userRepository) GetActiveByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? AND active = ?", email, true).First(&user).Error
	return &user, err
}

func (r *userRepository) GetByTenantAndID(tenantID, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&user).Error
	return &user, err
}

func (r *userRepository) GetByTenantAndEmail(tenantID uuid.UUID, email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("tenant_id = ? AND email = ?", tenantID, email).First(&user).Error
	return &user, err
}

func (r *userRepository) List(tenantID uuid.UUID, params models.UserListParams) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{}).Where("tenant_id = ?", tenantID)

	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}

	if params.Role != "" {
		query = query.Where("role = ?", params.Role)
	}

	if params.Q != "" {
		pattern := "%" + params.Q + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.PerPage
	err := query.Offset(offset).Limit(params.PerPage).Find(&users).Error

	return users, total, err
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(user *models.User) error {
	return r.db.Delete(user).Error
}

func (r *userRepository) CountActive(tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountByRole(tenantID uuid.UUID, role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("tenant_id = ? AND role = ?", tenantID, role).
		Count(&count).Error
	return count, err
}
