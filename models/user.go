package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primarykey"`
	TenantID      uuid.UUID  `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:uq_user_email_per_tenant"`
	Email         string     `json:"email" gorm:"size:255;not null;uniqueIndex:uq_user_email_per_tenant"`
	PasswordHash  string     `json:"-" gorm:"size:255;not null"`
	FirstName     string     `json:"first_name" gorm:"size:100;not null"`
	LastName      string     `json:"last_name" gorm:"size:100;not null"`
	Role          UserRole   `json:"role" gorm:"size:20;not null;default:'user'"`
	Active        bool       `json:"active" gorm:"not null;default:true;index"`
	Preferences   JSONMap    `json:"preferences" gorm:"type:text;not null;default:'{}'"`
	LastLogin     *time.Time `json:"last_login"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
	DeactivatedAt *time.Time `json:"deactivated_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Preferences == nil {
		u.Preferences = JSONMap{}
	}
	return nil
}

type PasswordResetToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primarykey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Token     string    `json:"token" gorm:"size:255;uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Used      bool      `json:"used" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (t *PasswordResetToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type UserActivityLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primarykey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_activity_user_timestamp"`
	Action    string    `json:"action" gorm:"size:100;not null;index"`
	Details   JSONMap   `json:"details" gorm:"type:text"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index:idx_activity_user_timestamp"`
}

func (l *UserActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return nil
}
