package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"timetracker/models"
	"timetracker/repositories"
)

type trackingFixture struct {
	svc      TimeTrackingService
	db       *gorm.DB
	tenantID uuid.UUID
	userID   uuid.UUID
	project  *models.Project
}

func newTrackingFixture(t *testing.T) *trackingFixture {
	db := setupTestDB(t)

	tenant := &models.Tenant{Name: "Acme", Settings: models.JSONMap{}}
	require.NoError(t, db.Create(tenant).Error)

	user := &models.User{
		TenantID:     tenant.ID,
		Email:        "worker@example.com",
		PasswordHash: "x",
		FirstName:    "Wendy",
		LastName:     "Worker",
		Role:         models.RoleUser,
		Active:       true,
	}
	require.NoError(t, db.Create(user).Error)

	client := &models.Client{TenantID: tenant.ID, Name: "Initech", Active: true}
	require.NoError(t, db.Create(client).Error)

	rate := 60.0
	project := &models.Project{
		TenantID:   tenant.ID,
		ClientID:   client.ID,
		Name:       "Website",
		Status:     models.ProjectActive,
		HourlyRate: &rate,
		Active:     true,
	}
	require.NoError(t, db.Create(project).Error)

	svc := NewTimeTrackingService(
		repositories.NewTimeEntryRepository(db),
		repositories.NewProjectRepository(db),
		repositories.NewTechnologyRepository(db),
	)

	return &trackingFixture{
		svc:      svc,
		db:       db,
		tenantID: tenant.ID,
		userID:   user.ID,
		project:  project,
	}
}

func TestCreateEntryComputesDurationAndAmount(t *testing.T) {
	f := newTrackingFixture(t)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	rate := 60.0

	entry, err := f.svc.CreateEntry(f.tenantID, f.userID, models.TimeEntryCreateRequest{
		ProjectID:  f.project.ID,
		StartTime:  start,
		EndTime:    &end,
		HourlyRate: &rate,
	})
	require.NoError(t, err)

	require.NotNil(t, entry.DurationMinutes)
	assert.Equal(t, 90, *entry.DurationMinutes)
	require.NotNil(t, entry.Amount)
	assert.InDelta(t, 90.0, *entry.Amount, 0.001)
	assert.False(t, entry.IsRunning)
	assert.True(t, entry.Billable)
}

func TestCreateEntryTruncatesPartialMinutes(t *testing.T) {
	f := newTrackingFixture(t)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(119 * time.Second)

	entry, err := f.svc.CreateEntry(f.tenantID, f.userID, models.TimeEntryCreateRequest{
		ProjectID: f.project.ID,
		StartTime: start,
		EndTime:   &end,
	})
	require.NoError(t, err)

	require.NotNil(t, entry.DurationMinutes)
	assert.Equal(t, 1, *entry.DurationMinutes)
}

func TestCreateEntryPersistsNonBillable(t *testing.T) {
	f := newTrackingFixture(t)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	billable := false

	entry, err := f.svc.CreateEntry(f.tenantID, f.userID, models.TimeEntryCreateRequest{
		ProjectID: f.project.ID,
		StartTime: start,
		EndTime:   &end,
		Billable:  &billable,
	})
	require.NoError(t, err)
	assert.False(t, entry.Billable)

	var stored models.TimeEntry
	require.NoError(t, f.db.First(&stored, "id = ?", entry.ID).Error)
	assert.False(t, stored.Billable)
}

func TestCreateEntryUnknownProject(t *testing.T) {
	f := newTrackingFixture(t)

	_, err := f.svc.CreateEntry(f.tenantID, f.userID, models.TimeEntryCreateRequest{
		ProjectID: uuid.New(),
		StartTime: time.Now().UTC(),
	})
	assert.IsType(t, models.ErrorNotFound{}, err)
}

func TestSingleRunningTimerPerUser(t *testing.T) {
	f := newTrackingFixture(t)

	_, err := f.svc.StartTimer(f.tenantID, f.userID, models.TimerStartRequest{ProjectID: f.project.ID})
	require.NoError(t, err)

	_, err = f.svc.StartTimer(f.tenantID, f.userID, models.TimerStartRequest{ProjectID: f.project.ID})
	assert.IsType(t, models.ErrorBadRequest{}, err)

	// An open-ended entry counts as a running timer too.
	_, err = f.svc.CreateEntry(f.tenantID, f.userID, models.TimeEntryCreateRequest{
		ProjectID: f.project.ID,
		StartTime: time.Now().UTC(),
	})
	assert.IsType(t, models.ErrorBadRequest{}, err)
}

func TestStopTimer(t *testing.T) {
	f := newTrackingFixture(t)

	started, err := f.svc.StartTimer(f.tenantID, f.userID, models.TimerStartRequest{ProjectID: f.project.ID})
	require.NoError(t, err)
	assert.True(t, started.IsRunning)

	note := "wrapped up"
	stopped, err := f.svc.StopTimer(f.tenantID, f.userID, models.TimerStopRequest{Description: &note})
	require.NoError(t, err)

	assert.False(t, stopped.IsRunning)
	require.NotNil(t, stopped.EndTime)
	require.NotNil(t, stopped.DurationMinutes)
	require.NotNil(t, stopped.Description)
	assert.Equal(t, "wrapped up", *stopped.Description)

	_, err = f.svc.StopTimer(f.tenantID, f.userID, models.TimerStopRequest{})
	assert.IsType(t, models.ErrorNotFound{}, err)
}

func TestTimerIsScopedToUser(t *testing.T) {
	f := newTrackingFixture(t)

	other := &models.User{
		TenantID:     f.tenantID,
		Email:        "second@example.com",
		PasswordHash: "x",
		FirstName:    "Sam",
		LastName:     "Second",
		Role:         models.RoleUser,
		Active:       true,
	}
	require.NoError(t, f.db.Create(other).Error)

	_, err := f.svc.StartTimer(f.tenantID, f.userID, models.TimerStartRequest{ProjectID: f.project.ID})
	require.NoError(t, err)

	// A colleague's running timer must not block this user.
	_, err = f.svc.StartTimer(f.tenantID, other.ID, models.TimerStartRequest{ProjectID: f.project.ID})
	require.NoError(t, err)
}

func TestTechnologyConflict(t *testing.T) {
	f := newTrackingFixture(t)

	_, err := f.svc.CreateTechnology(f.tenantID, models.TechnologyCreateRequest{Name: "Go"})
	require.NoError(t, err)

	_, err = f.svc.CreateTechnology(f.tenantID, models.TechnologyCreateRequest{Name: "Go"})
	assert.IsType(t, models.ErrorConflict{}, err)
}

func TestEntryTechnologies(t *testing.T) {
	f := newTrackingFixture(t)

	tech, err := f.svc.CreateTechnology(f.tenantID, models.TechnologyCreateRequest{Name: "Go"})
	require.NoError(t, err)

	entry, err := f.svc.StartTimer(f.tenantID, f.userID, models.TimerStartRequest{
		ProjectID:     f.project.ID,
		TechnologyIDs: []uuid.UUID{tech.ID, uuid.New()}, // unknown ids are skipped
	})
	require.NoError(t, err)
	require.Len(t, entry.Technologies, 1)
	assert.Equal(t, "Go", entry.Technologies[0].Name)
}

func TestListEntriesTotals(t *testing.T) {
	f := newTrackingFixture(t)

	rate := 60.0
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for i, billable := range []bool{true, false} {
		start := base.Add(time.Duration(i) * 2 * time.Hour)
		end := start.Add(time.Hour)
		b := billable
		_, err := f.svc.CreateEntry(f.tenantID, f.userID, models.TimeEntryCreateRequest{
			ProjectID:  f.project.ID,
			StartTime:  start,
			EndTime:    &end,
			Billable:   &b,
			HourlyRate: &rate,
		})
		require.NoError(t, err)
	}

	response, err := f.svc.ListEntries(f.tenantID, f.userID, models.TimeEntryListParams{Page: 1, PerPage: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(2), response.Total)
	assert.InDelta(t, 2.0, response.TotalHours, 0.001)
	assert.InDelta(t, 1.0, response.BillableHours, 0.001)
	assert.InDelta(t, 120.0, response.TotalAmount, 0.001)
}

func TestDashboardSummary(t *testing.T) {
	f := newTrackingFixture(t)

	now := time.Now().UTC()
	start := now.Add(-30 * time.Minute)
	end := now
	_, err := f.svc.CreateEntry(f.tenantID, f.userID, models.TimeEntryCreateRequest{
		ProjectID: f.project.ID,
		StartTime: start,
		EndTime:   &end,
	})
	require.NoError(t, err)

	summary, err := f.svc.Dashboard(f.tenantID, f.userID)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, summary.TodayHours, 0.001)
	assert.Nil(t, summary.RunningTimer)
	assert.Len(t, summary.RecentEntries, 1)
}
