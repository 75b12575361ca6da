package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Technology struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primarykey"`
	TenantID    uuid.UUID  `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:uq_technology_name_per_tenant"`
	Name        string     `json:"name" gorm:"size:100;not null;uniqueIndex:uq_technology_name_per_tenant"`
	Category    *string    `json:"category" gorm:"size:100"`
	Version     *string    `json:"version" gorm:"size:50"`
	Description *string    `json:"description" gorm:"type:text"`
	Color       *string    `json:"color" gorm:"size:7"`
	Active      bool       `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (t *Technology) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
