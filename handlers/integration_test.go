package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"timetracker/config"
	"timetracker/mailer"
	"timetracker/models"
)

type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage string          `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

type IntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	token    string
	userID   uuid.UUID
	tenantID uuid.UUID
}

func (suite *IntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	os.Setenv("SECRET_KEY", "integration-test-secret")
	os.Setenv("SMTP_HOST", "")

	cfg, err := config.Load()
	suite.Require().NoError(err)

	db, err := config.OpenDB("sqlite://file::memory:?cache=shared", false)
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(config.Migrate(db))

	suite.db = db
	suite.router = SetupRouter(db, cfg, mailer.New(cfg))
}

func (suite *IntegrationTestSuite) SetupTest() {
	for _, table := range []string{
		"time_entry_technologies", "time_entries", "project_technologies",
		"technologies", "projects", "clients", "user_activity_logs",
		"password_reset_tokens", "invitations", "users", "tenants",
	} {
		suite.db.Exec("DELETE FROM " + table)
	}

	suite.registerTestUser()
}

func (suite *IntegrationTestSuite) registerTestUser() {
	w := suite.request("POST", "/api/v1/auth/register", models.RegisterRequest{
		Email:      "admin@example.com",
		Password:   "password123",
		FirstName:  "Ada",
		LastName:   "Admin",
		TenantName: "Acme",
	}, "")
	suite.Require().Equal(http.StatusCreated, w.Code)

	var registration models.RegistrationResponse
	suite.decode(w, &registration)

	suite.token = registration.AccessToken
	suite.userID = registration.User.ID
	suite.tenantID = registration.Tenant.ID
}

func (suite *IntegrationTestSuite) request(method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	suite.Require().NoError(json.Unmarshal(env.Data, out))
}

func (suite *IntegrationTestSuite) TestRegisterDuplicateEmail() {
	w := suite.request("POST", "/api/v1/auth/register", models.RegisterRequest{
		Email:      "admin@example.com",
		Password:   "password123",
		FirstName:  "Copy",
		LastName:   "Cat",
		TenantName: "Other Co",
	}, "")
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *IntegrationTestSuite) TestRegisterWeakPassword() {
	w := suite.request("POST", "/api/v1/auth/register", models.RegisterRequest{
		Email:      "weak@example.com",
		Password:   "short",
		FirstName:  "Weak",
		LastName:   "Password",
		TenantName: "Weak Co",
	}, "")
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *IntegrationTestSuite) TestLoginFlow() {
	w := suite.request("POST", "/api/v1/auth/login", models.LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	}, "")
	suite.Equal(http.StatusOK, w.Code)

	var auth models.AuthResponse
	suite.decode(w, &auth)
	suite.NotEmpty(auth.AccessToken)
	suite.Equal("bearer", auth.TokenType)
	suite.Equal("admin@example.com", auth.User.Email)
	suite.Len(auth.Tenants, 1)

	w = suite.request("POST", "/api/v1/auth/login", models.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong-password",
	}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestMe() {
	w := suite.request("GET", "/api/v1/auth/me", nil, suite.token)
	suite.Equal(http.StatusOK, w.Code)

	var me models.UserInfo
	suite.decode(w, &me)
	suite.Equal(suite.userID, me.ID)
	suite.Equal(suite.tenantID, me.CurrentTenantID)
	suite.Equal("admin", me.Role)
}

func (suite *IntegrationTestSuite) TestMeRequiresToken() {
	w := suite.request("GET", "/api/v1/auth/me", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestTenantHeaderMismatch() {
	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	req.Header.Set("X-Tenant-ID", uuid.NewString())

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *IntegrationTestSuite) TestChangePassword() {
	w := suite.request("POST", "/api/v1/users/me/change-password", models.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "password456",
	}, suite.token)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("POST", "/api/v1/auth/login", models.LoginRequest{
		Email:    "admin@example.com",
		Password: "password456",
	}, "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("POST", "/api/v1/users/me/change-password", models.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "password789",
	}, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *IntegrationTestSuite) TestClientCRUD() {
	w := suite.request("POST", "/api/v1/clients", models.ClientCreateRequest{Name: "Globex"}, suite.token)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created models.ClientResponse
	suite.decode(w, &created)
	suite.Equal("Globex", created.Name)
	suite.True(created.Active)

	// Duplicate name within tenant
	w = suite.request("POST", "/api/v1/clients", models.ClientCreateRequest{Name: "Globex"}, suite.token)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request("GET", "/api/v1/clients", nil, suite.token)
	suite.Equal(http.StatusOK, w.Code)

	var list models.ClientsListResponse
	suite.decode(w, &list)
	suite.Equal(int64(1), list.Total)
	suite.Equal(int64(1), list.ActiveCount)

	newName := "Globex Corp"
	w = suite.request("PUT", fmt.Sprintf("/api/v1/clients/%s", created.ID), models.ClientUpdateRequest{Name: &newName}, suite.token)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("POST", fmt.Sprintf("/api/v1/clients/%s/deactivate", created.ID), nil, suite.token)
	suite.Equal(http.StatusOK, w.Code)

	var deactivated models.ClientResponse
	suite.decode(w, &deactivated)
	suite.False(deactivated.Active)
	suite.NotNil(deactivated.DeactivatedAt)

	w = suite.request("DELETE", fmt.Sprintf("/api/v1/clients/%s", created.ID), nil, suite.token)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request("GET", fmt.Sprintf("/api/v1/clients/%s", created.ID), nil, suite.token)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestProjectRequiresClient() {
	w := suite.request("POST", "/api/v1/projects", models.ProjectCreateRequest{
		ClientID: uuid.New(),
		Name:     "Orphan",
	}, suite.token)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) createClientAndProject() (models.ClientResponse, models.ProjectResponse) {
	w := suite.request("POST", "/api/v1/clients", models.ClientCreateRequest{Name: "Initech"}, suite.token)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var client models.ClientResponse
	suite.decode(w, &client)

	rate := 60.0
	w = suite.request("POST", "/api/v1/projects", models.ProjectCreateRequest{
		ClientID:   client.ID,
		Name:       "Website",
		HourlyRate: &rate,
	}, suite.token)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var project models.ProjectResponse
	suite.decode(w, &project)

	return client, project
}

func (suite *IntegrationTestSuite) TestTimerLifecycle() {
	_, project := suite.createClientAndProject()

	w := suite.request("POST", "/api/v1/timer/start", models.TimerStartRequest{ProjectID: project.ID}, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)

	var running models.TimeEntry
	suite.decode(w, &running)
	suite.True(running.IsRunning)
	suite.Nil(running.EndTime)

	// Only one timer may run per user.
	w = suite.request("POST", "/api/v1/timer/start", models.TimerStartRequest{ProjectID: project.ID}, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request("POST", "/api/v1/timer/stop", models.TimerStopRequest{}, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)

	var stopped models.TimeEntry
	suite.decode(w, &stopped)
	suite.False(stopped.IsRunning)
	suite.NotNil(stopped.EndTime)
	suite.NotNil(stopped.DurationMinutes)

	w = suite.request("POST", "/api/v1/timer/stop", models.TimerStopRequest{}, suite.token)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestTimeEntryTotals() {
	_, project := suite.createClientAndProject()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	rate := 60.0

	w := suite.request("POST", "/api/v1/time-entries", models.TimeEntryCreateRequest{
		ProjectID:  project.ID,
		StartTime:  start,
		EndTime:    &end,
		HourlyRate: &rate,
	}, suite.token)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var entry models.TimeEntry
	suite.decode(w, &entry)
	suite.Require().NotNil(entry.DurationMinutes)
	suite.Equal(90, *entry.DurationMinutes)
	suite.Require().NotNil(entry.Amount)
	suite.InDelta(90.0, *entry.Amount, 0.001)

	w = suite.request("GET", "/api/v1/time-entries", nil, suite.token)
	suite.Equal(http.StatusOK, w.Code)

	var list models.TimeEntriesListResponse
	suite.decode(w, &list)
	suite.Equal(int64(1), list.Total)
	suite.InDelta(1.5, list.TotalHours, 0.001)
	suite.InDelta(1.5, list.BillableHours, 0.001)
	suite.InDelta(90.0, list.TotalAmount, 0.001)
}

func (suite *IntegrationTestSuite) TestDashboard() {
	_, project := suite.createClientAndProject()

	w := suite.request("POST", "/api/v1/timer/start", models.TimerStartRequest{ProjectID: project.ID}, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/api/v1/dashboard", nil, suite.token)
	suite.Equal(http.StatusOK, w.Code)

	var summary models.DashboardSummary
	suite.decode(w, &summary)
	suite.NotNil(summary.RunningTimer)
	suite.Equal(project.ID, summary.RunningTimer.ProjectID)
}

func (suite *IntegrationTestSuite) TestTenantIsolation() {
	w := suite.request("POST", "/api/v1/clients", models.ClientCreateRequest{Name: "Secret Client"}, suite.token)
	suite.Require().Equal(http.StatusCreated, w.Code)

	// Second tenant with its own admin.
	w = suite.request("POST", "/api/v1/auth/register", models.RegisterRequest{
		Email:      "other@example.com",
		Password:   "password123",
		FirstName:  "Olive",
		LastName:   "Other",
		TenantName: "Other Co",
	}, "")
	suite.Require().Equal(http.StatusCreated, w.Code)

	var other models.RegistrationResponse
	suite.decode(w, &other)

	w = suite.request("GET", "/api/v1/clients", nil, other.AccessToken)
	suite.Equal(http.StatusOK, w.Code)

	var list models.ClientsListResponse
	suite.decode(w, &list)
	suite.Equal(int64(0), list.Total)
}

func (suite *IntegrationTestSuite) TestAdminGate() {
	// Create a plain user in the tenant and log in with a known password
	// via the invitation flow.
	w := suite.request("POST", fmt.Sprintf("/api/v1/tenants/%s/invite", suite.tenantID), models.UserInvitationRequest{
		Email: "member@example.com",
		Role:  "user",
	}, suite.token)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var invitation models.Invitation
	suite.decode(w, &invitation)
	suite.Equal(models.InvitationPending, invitation.Status)

	w = suite.request("POST", "/api/v1/auth/accept-invitation", models.AcceptInvitationRequest{
		Token:     invitation.Token,
		Password:  "password123",
		FirstName: "Mem",
		LastName:  "Ber",
	}, "")
	suite.Require().Equal(http.StatusCreated, w.Code)

	var member models.RegistrationResponse
	suite.decode(w, &member)
	suite.Equal("user", member.User.Role)
	suite.Equal(suite.tenantID, member.Tenant.ID)

	w = suite.request("GET", "/api/v1/users", nil, member.AccessToken)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request("GET", "/api/v1/users", nil, suite.token)
	suite.Equal(http.StatusOK, w.Code)

	var users models.UsersListResponse
	suite.decode(w, &users)
	suite.Equal(int64(2), users.Total)
	suite.Equal(int64(1), users.AdminCount)
}

func (suite *IntegrationTestSuite) TestPasswordResetFlow() {
	w := suite.request("POST", "/api/v1/auth/password-reset-request", models.PasswordResetRequest{
		Email: "admin@example.com",
	}, "")
	suite.Equal(http.StatusOK, w.Code)

	var reset models.PasswordResetToken
	err := suite.db.Where("user_id = ?", suite.userID).First(&reset).Error
	suite.Require().NoError(err)

	w = suite.request("POST", "/api/v1/auth/password-reset-confirm", models.PasswordResetConfirm{
		Token:       reset.Token,
		NewPassword: "brand-new-password",
	}, "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("POST", "/api/v1/auth/login", models.LoginRequest{
		Email:    "admin@example.com",
		Password: "brand-new-password",
	}, "")
	suite.Equal(http.StatusOK, w.Code)

	// Tokens are single use.
	w = suite.request("POST", "/api/v1/auth/password-reset-confirm", models.PasswordResetConfirm{
		Token:       reset.Token,
		NewPassword: "yet-another-password",
	}, "")
	suite.Equal(http.StatusBadRequest, w.Code)

	// Unknown emails do not leak existence.
	w = suite.request("POST", "/api/v1/auth/password-reset-request", models.PasswordResetRequest{
		Email: "nobody@example.com",
	}, "")
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) TestHealth() {
	w := suite.request("GET", "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
