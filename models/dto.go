package models

import (
	"time"

	"github.com/google/uuid"
)

// Auth requests

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	FirstName  string `json:"first_name" binding:"required,min=1,max=100"`
	LastName   string `json:"last_name" binding:"required,min=1,max=100"`
	TenantName string `json:"tenant_name" binding:"required,min=1,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type TenantSelectionRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
}

type AcceptInvitationRequest struct {
	Token     string `json:"token" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
}

// Auth responses

type TenantInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type UserInfo struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Role            string    `json:"role"`
	Active          bool      `json:"active"`
	CurrentTenantID uuid.UUID `json:"current_tenant_id"`
	Preferences     JSONMap   `json:"preferences"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserInfo     `json:"user"`
	Tenants     []TenantInfo `json:"tenants"`
}

type RegistrationResponse struct {
	User        UserInfo   `json:"user"`
	Tenant      TenantInfo `json:"tenant"`
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
}

type TokenRefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type TenantSelectionResponse struct {
	Message       string     `json:"message"`
	CurrentTenant TenantInfo `json:"current_tenant"`
}

type TenantsInfoResponse struct {
	Tenants []TenantInfo `json:"tenants"`
}

type StandardResponse struct {
	Message string `json:"message"`
}

// User management

type UserCreateRequest struct {
	Email          string `json:"email" binding:"required,email"`
	FirstName      string `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string `json:"last_name" binding:"required,min=1,max=100"`
	Role           string `json:"role" binding:"required"`
	SendInvitation *bool  `json:"send_invitation"`
}

type UserUpdateRequest struct {
	FirstName   *string  `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName    *string  `json:"last_name" binding:"omitempty,min=1,max=100"`
	Preferences *JSONMap `json:"preferences"`
}

type UserRoleUpdateRequest struct {
	Role string `json:"role" binding:"required"`
}

type UserListParams struct {
	Active  *bool  `form:"active"`
	Role    string `form:"role"`
	Q       string `form:"q"`
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=10"`
}

type UsersListResponse struct {
	Users       []User `json:"users"`
	Total       int64  `json:"total"`
	ActiveCount int64  `json:"active_count"`
	AdminCount  int64  `json:"admin_count"`
}

type UserActivityResponse struct {
	Activities []UserActivityLog `json:"activities"`
	Total      int64             `json:"total"`
}

// Tenant management

type TenantCreateRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Domain   *string `json:"domain"`
	Settings JSONMap `json:"settings"`
}

type TenantUpdateRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Domain   *string  `json:"domain"`
	Settings *JSONMap `json:"settings"`
}

type UserInvitationRequest struct {
	Email   string  `json:"email" binding:"required,email"`
	Role    string  `json:"role" binding:"required"`
	Message *string `json:"message"`
}

type TenantListParams struct {
	Active  *bool `form:"active"`
	Page    int   `form:"page,default=1"`
	PerPage int   `form:"per_page,default=10"`
}

type TenantResponse struct {
	Tenant
	UserCount    int64 `json:"user_count"`
	ProjectCount int64 `json:"project_count"`
}

type TenantsListResponse struct {
	Tenants       []TenantResponse `json:"tenants"`
	Total         int64            `json:"total"`
	ActiveCount   int64            `json:"active_count"`
	InactiveCount int64            `json:"inactive_count"`
}

type TenantUsersResponse struct {
	Users       []User `json:"users"`
	Total       int64  `json:"total"`
	ActiveCount int64  `json:"active_count"`
}

// Clients

type ClientCreateRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=255"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
	Address      *string `json:"address"`
}

type ClientUpdateRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
	Address      *string `json:"address"`
	Active       *bool   `json:"active"`
}

type ClientListParams struct {
	Active      *bool  `form:"active"`
	HasProjects *bool  `form:"has_projects"`
	Q           string `form:"q"`
	Page        int    `form:"page,default=1"`
	PerPage     int    `form:"per_page,default=10"`
}

type ClientResponse struct {
	Client
	ProjectCount      int64   `json:"project_count"`
	TotalHoursTracked float64 `json:"total_hours_tracked"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type ClientsListResponse struct {
	Clients       []ClientResponse `json:"clients"`
	Total         int64            `json:"total"`
	ActiveCount   int64            `json:"active_count"`
	InactiveCount int64            `json:"inactive_count"`
}

type ProjectBreakdown struct {
	ProjectID   uuid.UUID `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Hours       float64   `json:"hours"`
}

type TimeSummaryPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type TimeSummary struct {
	TotalHours       float64            `json:"total_hours"`
	BillableHours    float64            `json:"billable_hours"`
	NonBillableHours float64            `json:"non_billable_hours"`
	TotalRevenue     float64            `json:"total_revenue"`
	ProjectBreakdown []ProjectBreakdown `json:"project_breakdown"`
}

type TimeSummaryResponse struct {
	ClientID uuid.UUID         `json:"client_id"`
	Period   TimeSummaryPeriod `json:"period"`
	Summary  TimeSummary       `json:"summary"`
}

// Projects

type ProjectCreateRequest struct {
	ClientID    uuid.UUID  `json:"client_id" binding:"required"`
	Name        string     `json:"name" binding:"required,min=1,max=255"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      *float64   `json:"budget" binding:"omitempty,gte=0"`
	HourlyRate  *float64   `json:"hourly_rate" binding:"omitempty,gte=0"`
}

type ProjectUpdateRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      *float64   `json:"budget" binding:"omitempty,gte=0"`
	HourlyRate  *float64   `json:"hourly_rate" binding:"omitempty,gte=0"`
	Active      *bool      `json:"active"`
}

type ProjectListParams struct {
	Status   string `form:"status"`
	ClientID string `form:"client_id"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page,default=1"`
	PerPage  int    `form:"per_page,default=10"`
}

type ProjectResponse struct {
	Project
	HoursTracked float64 `json:"hours_tracked"`
}

type ProjectsListResponse struct {
	Projects       []ProjectResponse `json:"projects"`
	Total          int64             `json:"total"`
	ActiveCount    int64             `json:"active_count"`
	CompletedCount int64             `json:"completed_count"`
	TotalBudget    float64           `json:"total_budget"`
	TotalHours     float64           `json:"total_hours"`
}

// Time tracking

type TechnologyCreateRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	Version     *string `json:"version" binding:"omitempty,max=50"`
	Description *string `json:"description"`
	Color       *string `json:"color" binding:"omitempty,max=7"`
}

type TechnologyListParams struct {
	Active   *bool  `form:"active"`
	Category string `form:"category"`
}

type TimeEntryCreateRequest struct {
	ProjectID     uuid.UUID   `json:"project_id" binding:"required"`
	Description   *string     `json:"description"`
	StartTime     time.Time   `json:"start_time" binding:"required"`
	EndTime       *time.Time  `json:"end_time"`
	Billable      *bool       `json:"billable"`
	HourlyRate    *float64    `json:"hourly_rate" binding:"omitempty,gte=0"`
	TechnologyIDs []uuid.UUID `json:"technology_ids"`
}

type TimeEntryListParams struct {
	ProjectID string `form:"project_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Billable  *bool  `form:"billable"`
	Page      int    `form:"page,default=1"`
	PerPage   int    `form:"per_page,default=10"`
}

type TimeEntriesListResponse struct {
	Entries       []TimeEntry `json:"entries"`
	Total         int64       `json:"total"`
	TotalHours    float64     `json:"total_hours"`
	BillableHours float64     `json:"billable_hours"`
	TotalAmount   float64     `json:"total_amount"`
}

type TimerStartRequest struct {
	ProjectID     uuid.UUID   `json:"project_id" binding:"required"`
	Description   *string     `json:"description"`
	TechnologyIDs []uuid.UUID `json:"technology_ids"`
}

type TimerStopRequest struct {
	Description *string `json:"description"`
}

type DashboardSummary struct {
	TodayHours          float64               `json:"today_hours"`
	WeekHours           float64               `json:"week_hours"`
	MonthHours          float64               `json:"month_hours"`
	RunningTimer        *TimeEntry            `json:"running_timer"`
	RecentEntries       []TimeEntry           `json:"recent_entries"`
	ProjectBreakdown    []ProjectBreakdown    `json:"project_breakdown"`
	ClientBreakdown     []ClientBreakdown     `json:"client_breakdown"`
	TechnologyBreakdown []TechnologyBreakdown `json:"technology_breakdown"`
}

type ClientBreakdown struct {
	ClientID   uuid.UUID `json:"client_id"`
	ClientName string    `json:"client_name"`
	Hours      float64   `json:"hours"`
}

type TechnologyBreakdown struct {
	TechnologyID   uuid.UUID `json:"technology_id"`
	TechnologyName string    `json:"technology_name"`
	Hours          float64   `json:"hours"`
}
