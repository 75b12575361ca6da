package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timetracker/models"
)

// AuthRepository covers authentication side tables: password reset tokens,
// invitations and the user activity log.
type AuthRepository interface {
	CreateResetToken(token *models.PasswordResetToken) error
	GetValidResetToken(token string) (*models.PasswordResetToken, error)
	UpdateResetToken(token *models.PasswordResetToken) error

	CreateInvitation(invitation *models.Invitation) error
	GetInvitationByToken(token string) (*models.Invitation, error)
	UpdateInvitation(invitation *models.Invitation) error

	RecordActivity(log *models.UserActivityLog) error
	ListActivity(userID uuid.UUID, page, perPage int) ([]models.UserActivityLog, int64, error)
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateResetToken(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

func (r *authRepository) GetValidResetToken(token string) (*models.PasswordResetToken, error) {
	var reset models.PasswordResetToken
	err := r.db.Where("token = ? AND used = ? AND expires_at > ?", token, false, time.Now().UTC()).
		First(&reset).Error
	return &reset, err
}

func (r *authRepository) UpdateResetToken(token *models.PasswordResetToken) error {
	return r.db.Save(token).Error
}

func (r *authRepository) CreateInvitation(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

func (r *authRepository) GetInvitationByToken(token string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.Where("token = ?", token).First(&invitation).Error
	return &invitation, err
}

func (r *authRepository) UpdateInvitation(invitation *models.Invitation) error {
	return r.db.Save(invitation).Error
}

func (r *authRepository) RecordActivity(log *models.UserActivityLog) error {
	return r.db.Create(log).Error
}

func (r *authRepository) ListActivity(userID uuid.UUID, page, perPage int) ([]models.UserActivityLog, int64, error) {
	var activities []models.UserActivityLog
	var total int64

	query := r.db.Model(&models.UserActivityLog{}).Where("user_id = ?", userID)
	query.Count(&total)

	offset := (page - 1) * perPage
	err := query.Order("timestamp desc").Offset(offset).Limit(perPage).Find(&activities).Error

	return activities, total, err
}
