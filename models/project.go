package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

type Project struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primarykey"`
	TenantID    uuid.UUID     `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:uq_project_name_per_tenant_client"`
	ClientID    uuid.UUID     `json:"client_id" gorm:"type:uuid;not null;uniqueIndex:uq_project_name_per_tenant_client"`
	Name        string        `json:"name" gorm:"size:255;not null;uniqueIndex:uq_project_name_per_tenant_client"`
	Description *string       `json:"description" gorm:"type:text"`
	Status      ProjectStatus `json:"status" gorm:"size:20;not null;default:'active';index"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	Budget      *float64      `json:"budget"`
	HourlyRate  *float64      `json:"hourly_rate"`
	Active      bool          `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   *time.Time    `json:"updated_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProjectTechnology struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primarykey"`
	ProjectID    uuid.UUID `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:uq_project_technology"`
	TechnologyID uuid.UUID `json:"technology_id" gorm:"type:uuid;not null;uniqueIndex:uq_project_technology"`
	CreatedAt    time.Time `json:"created_at"`
}

func (pt *ProjectTechnology) BeforeCreate(tx *gorm.DB) error {
	if pt.ID == uuid.Nil {
		pt.ID = uuid.New()
	}
	return nil
}
