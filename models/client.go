package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primarykey"`
	TenantID      uuid.UUID  `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:uq_client_name_per_tenant"`
	Name          string     `json:"name" gorm:"size:255;not null;uniqueIndex:uq_client_name_per_tenant"`
	ContactEmail  *string    `json:"contact_email" gorm:"size:255"`
	ContactPhone  *string    `json:"contact_phone" gorm:"size:50"`
	Address       *string    `json:"address" gorm:"type:text"`
	Active        bool       `json:"active" gorm:"not null;default:true"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
	DeactivatedAt *time.Time `json:"deactivated_at"`

	Tenant   *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:ClientID"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
