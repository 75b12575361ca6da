package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tenant struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primarykey"`
	Name          string     `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Domain        *string    `json:"domain" gorm:"size:255"`
	Settings      JSONMap    `json:"settings" gorm:"type:text;not null;default:'{}'"`
	Active        bool       `json:"active" gorm:"not null;default:true"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
	DeactivatedAt *time.Time `json:"deactivated_at"`

	Users    []User    `json:"users,omitempty" gorm:"foreignKey:TenantID"`
	Clients  []Client  `json:"clients,omitempty" gorm:"foreignKey:TenantID"`
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:TenantID"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Settings == nil {
		t.Settings = JSONMap{}
	}
	return nil
}
