package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timetracker/models"
)

type TimeEntryTotals struct {
	TotalMinutes    int64
	BillableMinutes int64
	TotalAmount     float64
}

type TimeEntryRepository interface {
	Create(entry *models.TimeEntry) error
	Update(entry *models.TimeEntry) error
	GetByID(tenantID, id uuid.UUID) (*models.TimeEntry, error)
	GetRunning(tenantID, userID uuid.UUID) (*models.TimeEntry, error)
	List(tenantID, userID uuid.UUID, params models.TimeEntryListParams) ([]models.TimeEntry, int64, error)
	Totals(tenantID, userID uuid.UUID, params models.TimeEntryListParams) (*TimeEntryTotals, error)
	Recent(tenantID, userID uuid.UUID, limit int) ([]models.TimeEntry, error)
	SumMinutesSince(tenantID, userID uuid.UUID, since time.Time) (int64, error)
	ListForClientPeriod(clientID uuid.UUID, start, end time.Time) ([]models.TimeEntry, error)

	AttachTechnology(link *models.TimeEntryTechnology) error
	TechnologiesFor(entryID uuid.UUID) ([]models.Technology, error)
}

type timeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

func (r *timeEntryRepository) Create(entry *models.TimeEntry) error {
	return r.db.Create(entry).Error
}

func (r *timeEntryRepository) Update(entry *models.TimeEntry) error {
	return r.db.Save(entry).Error
}

func (r *timeEntryRepository) GetByID(tenantID, id uuid.UUID) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&entry).Error
	return &entry, err
}

func (r *timeEntryRepository) GetRunning(tenantID, userID uuid.UUID) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := r.db.Where("tenant_id = ? AND user_id = ? AND is_running = ?", tenantID, userID, true).
		First(&entry).Error
	return &entry, err
}

func (r *timeEntryRepository) baseQuery(tenantID, userID uuid.UUID, params models.TimeEntryListParams) *gorm.DB {
	query := r.db.Model(&models.TimeEntry{}).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID)

	if params.ProjectID != "" {
		query = query.Where("project_id = ?", params.ProjectID)
	}

	if params.StartDate != "" {
		query = query.Where("start_time >= ?", params.StartDate)
	}

	if params.EndDate != "" {
		query = query.Where("start_time <= ?", params.EndDate)
	}

	if params.Billable != nil {
		query = query.Where("billable = ?", *params.Billable)
	}

	return query
}

func (r *timeEntryRepository) List(tenantID, userID uuid.UUID, params models.TimeEntryListParams) ([]models.TimeEntry, int64, error) {
	var entries []models.TimeEntry
	var total int64

	query := r.baseQuery(tenantID, userID, params)
	query.Count(&total)

	offset := (params.Page - 1) * params.PerPage
	err := query.Order("start_time desc").Offset(offset).Limit(params.PerPage).Find(&entries).Error

	return entries, total, err
}

func (r *timeEntryRepository) Totals(tenantID, userID uuid.UUID, params models.TimeEntryListParams) (*TimeEntryTotals, error) {
	totals := &TimeEntryTotals{}

	completed := r.baseQuery(tenantID, userID, params).Where("end_time IS NOT NULL")

	var result struct {
		Minutes int64
		Amount  float64
	}
	err := completed.Session(&gorm.Session{}).
		Select("COALESCE(SUM(duration_minutes), 0) as minutes, COALESCE(SUM(amount), 0) as amount").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	totals.TotalMinutes = result.Minutes
	totals.TotalAmount = result.Amount

	var billable int64
	err = r.baseQuery(tenantID, userID, params).
		Where("end_time IS NOT NULL AND billable = ?", true).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&billable).Error
	if err != nil {
		return nil, err
	}
	totals.BillableMinutes = billable

	return totals, nil
}

func (r *timeEntryRepository) Recent(tenantID, userID uuid.UUID, limit int) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	err := r.db.Where("tenant_id = ? AND user_id = ? AND end_time IS NOT NULL", tenantID, userID).
		Order("start_time desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *timeEntryRepository) SumMinutesSince(tenantID, userID uuid.UUID, since time.Time) (int64, error) {
	var minutes int64
	err := r.db.Model(&models.TimeEntry{}).
		Where("tenant_id = ? AND user_id = ? AND start_time >= ? AND end_time IS NOT NULL", tenantID, userID, since).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&minutes).Error
	return minutes, err
}

func (r *timeEntryRepository) ListForClientPeriod(clientID uuid.UUID, start, end time.Time) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	err := r.db.
		Joins("JOIN projects ON projects.id = time_entries.project_id").
		Where("projects.client_id = ?", clientID).
		Where("time_entries.start_time >= ? AND time_entries.start_time <= ?", start, end).
		Where("time_entries.end_time IS NOT NULL").
		Find(&entries).Error
	return entries, err
}

func (r *timeEntryRepository) AttachTechnology(link *models.TimeEntryTechnology) error {
	return r.db.Create(link).Error
}

func (r *timeEntryRepository) TechnologiesFor(entryID uuid.UUID) ([]models.Technology, error) {
	var technologies []models.Technology
	err := r.db.
		Joins("JOIN time_entry_technologies ON time_entry_technologies.technology_id = technologies.id").
		Where("time_entry_technologies.time_entry_id = ?", entryID).
		Find(&technologies).Error
	return technologies, err
}
