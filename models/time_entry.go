package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeEntry struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primarykey"`
	TenantID        uuid.UUID  `json:"tenant_id" gorm:"type:uuid;not null;index:idx_time_entry_tenant_user"`
	UserID          uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index:idx_time_entry_tenant_user"`
	ProjectID       uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	Description     *string    `json:"description" gorm:"type:text"`
	StartTime       time.Time  `json:"start_time" gorm:"not null;index"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes *int       `json:"duration_minutes"`
	// No column default: the service sets the flag explicitly, and a
	// default tag would make gorm drop billable=false on insert.
	Billable        bool       `json:"billable" gorm:"not null"`
	HourlyRate      *float64   `json:"hourly_rate"`
	Amount          *float64   `json:"amount"`
	IsRunning       bool       `json:"is_running" gorm:"not null;default:false;index"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`

	// Loaded explicitly through the join table, not a gorm association.
	Technologies []Technology `json:"technologies" gorm:"-"`
}

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type TimeEntryTechnology struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primarykey"`
	TimeEntryID  uuid.UUID `json:"time_entry_id" gorm:"type:uuid;not null;uniqueIndex:uq_time_entry_technology"`
	TechnologyID uuid.UUID `json:"technology_id" gorm:"type:uuid;not null;uniqueIndex:uq_time_entry_technology"`
	CreatedAt    time.Time `json:"created_at"`
}

func (et *TimeEntryTechnology) BeforeCreate(tx *gorm.DB) error {
	if et.ID == uuid.Nil {
		et.ID = uuid.New()
	}
	return nil
}
