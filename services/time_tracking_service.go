package services

import (
	"time"

	"github.com/google/uuid"

	"timetracker/models"
	"timetracker/repositories"
)

type TimeTrackingService interface {
	CreateTechnology(tenantID uuid.UUID, req models.TechnologyCreateRequest) (*models.Technology, error)
	ListTechnologies(tenantID uuid.UUID, params models.TechnologyListParams) ([]models.Technology, error)

	CreateEntry(tenantID, userID uuid.UUID, req models.TimeEntryCreateRequest) (*models.TimeEntry, error)
	ListEntries(tenantID, userID uuid.UUID, params models.TimeEntryListParams) (*models.TimeEntriesListResponse, error)

	StartTimer(tenantID, userID uuid.UUID, req models.TimerStartRequest) (*models.TimeEntry, error)
	StopTimer(tenantID, userID uuid.UUID, req models.TimerStopRequest) (*models.TimeEntry, error)

	Dashboard(tenantID, userID uuid.UUID) (*models.DashboardSummary, error)
}

type timeTrackingService struct {
	entryRepo      repositories.TimeEntryRepository
	projectRepo    repositories.ProjectRepository
	technologyRepo repositories.TechnologyRepository
}

func NewTimeTrackingService(
	entryRepo repositories.TimeEntryRepository,
	projectRepo repositories.ProjectRepository,
	technologyRepo repositories.TechnologyRepository,
) TimeTrackingService {
	return &timeTrackingService{
		entryRepo:      entryRepo,
		projectRepo:    projectRepo,
		technologyRepo: technologyRepo,
	}
}

func (s *timeTrackingService) CreateTechnology(tenantID uuid.UUID, req models.TechnologyCreateRequest) (*models.Technology, error) {
	if _, err := s.technologyRepo.GetByName(tenantID, req.Name); err == nil {
		return nil, models.ErrorConflict{Message: "Technology with this name already exists in this tenant"}
	}

	technology := &models.Technology{
		TenantID:    tenantID,
		Name:        req.Name,
		Category:    req.Category,
		Version:     req.Version,
		Description: req.Description,
		Color:       req.Color,
		Active:      true,
	}
	if err := s.technologyRepo.Create(technology); err != nil {
		return nil, err
	}
	return technology, nil
}

func (s *timeTrackingService) ListTechnologies(tenantID uuid.UUID, params models.TechnologyListParams) ([]models.Technology, error) {
	return s.technologyRepo.List(tenantID, params)
}

// CreateEntry records a completed time entry, or a running timer when
// end_time is omitted.
func (s *timeTrackingService) CreateEntry(tenantID, userID uuid.UUID, req models.TimeEntryCreateRequest) (*models.TimeEntry, error) {
	if _, err := s.projectRepo.GetActiveByID(tenantID, req.ProjectID); err != nil {
		return nil, models.ErrorNotFound{Message: "Project not found"}
	}

	if req.EndTime == nil {
		if _, err := s.entryRepo.GetRunning(tenantID, userID); err == nil {
			return nil, models.ErrorBadRequest{Message: "You already have a running timer. Stop it before starting a new one."}
		}
	}

	entry := &models.TimeEntry{
		TenantID:    tenantID,
		UserID:      userID,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Billable:    true,
		HourlyRate:  req.HourlyRate,
		IsRunning:   req.EndTime == nil,
	}
	if req.Billable != nil {
		entry.Billable = *req.Billable
	}

	if req.EndTime != nil {
		minutes := int(req.EndTime.Sub(req.StartTime).Seconds() / 60)
		entry.DurationMinutes = &minutes

		if req.HourlyRate != nil && minutes != 0 {
			amount := *req.HourlyRate * float64(minutes) / 60.0
			entry.Amount = &amount
		}
	}

	if err := s.entryRepo.Create(entry); err != nil {
		return nil, err
	}

	if err := s.attachTechnologies(tenantID, entry, req.TechnologyIDs); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *timeTrackingService) ListEntries(tenantID, userID uuid.UUID, params models.TimeEntryListParams) (*models.TimeEntriesListResponse, error) {
	if params.StartDate != "" {
		if _, err := time.Parse("2006-01-02", params.StartDate); err != nil {
			return nil, models.ErrorBadRequest{Message: "Invalid start_date format. Use YYYY-MM-DD."}
		}
	}
	if params.EndDate != "" {
		if _, err := time.Parse("2006-01-02", params.EndDate); err != nil {
			return nil, models.ErrorBadRequest{Message: "Invalid end_date format. Use YYYY-MM-DD."}
		}
	}

	entries, total, err := s.entryRepo.List(tenantID, userID, params)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if err := s.loadTechnologies(&entries[i]); err != nil {
			return nil, err
		}
	}

	totals, err := s.entryRepo.Totals(tenantID, userID, params)
	if err != nil {
		return nil, err
	}

	return &models.TimeEntriesListResponse{
		Entries:       entries,
		Total:         total,
		TotalHours:    float64(totals.TotalMinutes) / 60.0,
		BillableHours: float64(totals.BillableMinutes) / 60.0,
		TotalAmount:   totals.TotalAmount,
	}, nil
}

func (s *timeTrackingService) StartTimer(tenantID, userID uuid.UUID, req models.TimerStartRequest) (*models.TimeEntry, error) {
	if _, err := s.entryRepo.GetRunning(tenantID, userID); err == nil {
		return nil, models.ErrorBadRequest{Message: "You already have a running timer. Stop it before starting a new one."}
	}

	if _, err := s.projectRepo.GetActiveByID(tenantID, req.ProjectID); err != nil {
		return nil, models.ErrorNotFound{Message: "Project not found"}
	}

	entry := &models.TimeEntry{
		TenantID:    tenantID,
		UserID:      userID,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		StartTime:   nowUTC(),
		Billable:    true,
		IsRunning:   true,
	}
	if err := s.entryRepo.Create(entry); err != nil {
		return nil, err
	}

	if err := s.attachTechnologies(tenantID, entry, req.TechnologyIDs); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *timeTrackingService) StopTimer(tenantID, userID uuid.UUID, req models.TimerStopRequest) (*models.TimeEntry, error) {
	entry, err := s.entryRepo.GetRunning(tenantID, userID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "No running timer found"}
	}

	endTime := nowUTC()
	minutes := int(endTime.Sub(entry.StartTime).Seconds() / 60)

	entry.EndTime = &endTime
	entry.DurationMinutes = &minutes
	entry.IsRunning = false

	if req.Description != nil {
		entry.Description = req.Description
	}

	if entry.HourlyRate != nil {
		amount := *entry.HourlyRate * float64(minutes) / 60.0
		entry.Amount = &amount
	}

	if err := s.entryRepo.Update(entry); err != nil {
		return nil, err
	}

	if err := s.loadTechnologies(entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *timeTrackingService) Dashboard(tenantID, userID uuid.UUID) (*models.DashboardSummary, error) {
	now := nowUTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := todayStart.AddDate(0, 0, -int((todayStart.Weekday()+6)%7))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	summary := &models.DashboardSummary{
		ProjectBreakdown:    []models.ProjectBreakdown{},
		ClientBreakdown:     []models.ClientBreakdown{},
		TechnologyBreakdown: []models.TechnologyBreakdown{},
	}

	if running, err := s.entryRepo.GetRunning(tenantID, userID); err == nil {
		if err := s.loadTechnologies(running); err != nil {
			return nil, err
		}
		summary.RunningTimer = running
	}

	for _, period := range []struct {
		since time.Time
		dest  *float64
	}{
		{todayStart, &summary.TodayHours},
		{weekStart, &summary.WeekHours},
		{monthStart, &summary.MonthHours},
	} {
		minutes, err := s.entryRepo.SumMinutesSince(tenantID, userID, period.since)
		if err != nil {
			return nil, err
		}
		*period.dest = float64(minutes) / 60.0
	}

	recent, err := s.entryRepo.Recent(tenantID, userID, 5)
	if err != nil {
		return nil, err
	}
	for i := range recent {
		if err := s.loadTechnologies(&recent[i]); err != nil {
			return nil, err
		}
	}
	summary.RecentEntries = recent

	return summary, nil
}

// attachTechnologies links known tenant technologies to the entry.
// Unknown identifiers are skipped rather than failing the whole entry.
func (s *timeTrackingService) attachTechnologies(tenantID uuid.UUID, entry *models.TimeEntry, technologyIDs []uuid.UUID) error {
	entry.Technologies = []models.Technology{}

	for _, technologyID := range technologyIDs {
		technology, err := s.technologyRepo.GetByID(tenantID, technologyID)
		if err != nil {
			continue
		}

		link := &models.TimeEntryTechnology{
			TimeEntryID:  entry.ID,
			TechnologyID: technologyID,
		}
		if err := s.entryRepo.AttachTechnology(link); err != nil {
			return err
		}
		entry.Technologies = append(entry.Technologies, *technology)
	}

	return nil
}

func (s *timeTrackingService) loadTechnologies(entry *models.TimeEntry) error {
	technologies, err := s.entryRepo.TechnologiesFor(entry.ID)
	if err != nil {
		return err
	}
	if technologies == nil {
		technologies = []models.Technology{}
	}
	entry.Technologies = technologies
	return nil
}
