package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
	InvitationRevoked  InvitationStatus = "revoked"
)

type Invitation struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primarykey"`
	TenantID    uuid.UUID        `json:"tenant_id" gorm:"type:uuid;not null"`
	Email       string           `json:"email" gorm:"size:255;not null"`
	Role        UserRole         `json:"role" gorm:"size:20;not null;default:'user'"`
	Token       string           `json:"token" gorm:"size:1024;uniqueIndex;not null"`
	Status      InvitationStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
	Message     *string          `json:"message" gorm:"type:text"`
	InvitedByID *uuid.UUID       `json:"invited_by_id" gorm:"type:uuid"`
	ExpiresAt   time.Time        `json:"expires_at" gorm:"not null"`
	CreatedAt   time.Time        `json:"created_at"`
	AcceptedAt  *time.Time       `json:"accepted_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
