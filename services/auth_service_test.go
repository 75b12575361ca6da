package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/models"
	"timetracker/repositories"
)

func newAuthService(t *testing.T) (AuthService, *captureMailer, repositories.UserRepository, repositories.TenantRepository) {
	db := setupTestDB(t)

	userRepo := repositories.NewUserRepository(db)
	tenantRepo := repositories.NewTenantRepository(db)
	authRepo := repositories.NewAuthRepository(db)
	mail := &captureMailer{}

	return NewAuthService(userRepo, tenantRepo, authRepo, mail), mail, userRepo, tenantRepo
}

func registerAdmin(t *testing.T, svc AuthService) *models.RegistrationResponse {
	t.Helper()

	response, err := svc.Register(models.RegisterRequest{
		Email:      "owner@example.com",
		Password:   "password123",
		FirstName:  "Olive",
		LastName:   "Owner",
		TenantName: "Acme",
	})
	require.NoError(t, err)
	return response
}

func TestRegisterCreatesTenantAdmin(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	response := registerAdmin(t, svc)

	assert.Equal(t, "admin", response.User.Role)
	assert.Equal(t, "Acme", response.Tenant.Name)
	assert.NotEmpty(t, response.AccessToken)
	assert.Equal(t, "bearer", response.TokenType)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	registerAdmin(t, svc)

	_, err := svc.Register(models.RegisterRequest{
		Email:      "owner@example.com",
		Password:   "password123",
		FirstName:  "Copy",
		LastName:   "Cat",
		TenantName: "Other",
	})
	assert.IsType(t, models.ErrorConflict{}, err)
}

func TestRegisterDuplicateTenantName(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	registerAdmin(t, svc)

	_, err := svc.Register(models.RegisterRequest{
		Email:      "second@example.com",
		Password:   "password123",
		FirstName:  "Second",
		LastName:   "Founder",
		TenantName: "Acme",
	})
	assert.IsType(t, models.ErrorConflict{}, err)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, err := svc.Register(models.RegisterRequest{
		Email:      "weak@example.com",
		Password:   "short",
		FirstName:  "Weak",
		LastName:   "Password",
		TenantName: "Weak Co",
	})
	assert.IsType(t, models.ErrorValidation{}, err)
}

func TestLogin(t *testing.T) {
	svc, _, userRepo, _ := newAuthService(t)
	registerAdmin(t, svc)

	response, err := svc.Login(models.LoginRequest{
		Email:    "owner@example.com",
		Password: "password123",
	}, "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.Len(t, response.Tenants, 1)

	user, err := userRepo.GetByEmail("owner@example.com")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	registerAdmin(t, svc)

	_, err := svc.Login(models.LoginRequest{
		Email:    "owner@example.com",
		Password: "not-the-password",
	}, "", "")
	assert.IsType(t, models.ErrorUnauthorized{}, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, err := svc.Login(models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	}, "", "")
	assert.IsType(t, models.ErrorUnauthorized{}, err)
}

func TestLoginInactiveTenant(t *testing.T) {
	svc, _, _, tenantRepo := newAuthService(t)
	response := registerAdmin(t, svc)

	tenant, err := tenantRepo.GetByID(response.Tenant.ID)
	require.NoError(t, err)
	tenant.Active = false
	require.NoError(t, tenantRepo.Update(tenant))

	_, err = svc.Login(models.LoginRequest{
		Email:    "owner@example.com",
		Password: "password123",
	}, "", "")
	assert.IsType(t, models.ErrorUnauthorized{}, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, mail, _, _ := newAuthService(t)
	registerAdmin(t, svc)

	err := svc.RequestPasswordReset(models.PasswordResetRequest{Email: "owner@example.com"})
	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "owner@example.com", mail.sent[0])

	// Unknown emails succeed silently.
	err = svc.RequestPasswordReset(models.PasswordResetRequest{Email: "ghost@example.com"})
	require.NoError(t, err)
	assert.Len(t, mail.sent, 1)
}

func TestConfirmPasswordResetInvalidToken(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	err := svc.ConfirmPasswordReset(models.PasswordResetConfirm{
		Token:       "no-such-token",
		NewPassword: "password123",
	})
	assert.IsType(t, models.ErrorBadRequest{}, err)
}

func TestSelectTenant(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	response := registerAdmin(t, svc)

	selected, err := svc.SelectTenant(response.User.ID, response.Tenant.ID, "admin",
		models.TenantSelectionRequest{TenantID: response.Tenant.ID})
	require.NoError(t, err)
	assert.Equal(t, response.Tenant.ID, selected.CurrentTenant.ID)
}

func TestSelectForeignTenant(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	first := registerAdmin(t, svc)

	second, err := svc.Register(models.RegisterRequest{
		Email:      "other@example.com",
		Password:   "password123",
		FirstName:  "Olive",
		LastName:   "Other",
		TenantName: "Other Co",
	})
	require.NoError(t, err)

	_, err = svc.SelectTenant(first.User.ID, first.Tenant.ID, "admin",
		models.TenantSelectionRequest{TenantID: second.Tenant.ID})
	assert.IsType(t, models.ErrorForbidden{}, err)
}

func TestInvitationTokenRoundTrip(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	response := registerAdmin(t, svc)

	token, err := generateInvitationToken("invitee@example.com", response.Tenant.ID, models.RoleUser)
	require.NoError(t, err)

	accepted, err := svc.AcceptInvitation(models.AcceptInvitationRequest{
		Token:     token,
		Password:  "password123",
		FirstName: "Ina",
		LastName:  "Vitee",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", accepted.User.Role)
	assert.Equal(t, response.Tenant.ID, accepted.Tenant.ID)

	// A second acceptance hits the duplicate user guard.
	_, err = svc.AcceptInvitation(models.AcceptInvitationRequest{
		Token:     token,
		Password:  "password123",
		FirstName: "Ina",
		LastName:  "Vitee",
	})
	assert.IsType(t, models.ErrorConflict{}, err)
}

func TestAcceptInvitationGarbageToken(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, err := svc.AcceptInvitation(models.AcceptInvitationRequest{
		Token:     "not-a-jwt",
		Password:  "password123",
		FirstName: "Ina",
		LastName:  "Vitee",
	})
	assert.IsType(t, models.ErrorBadRequest{}, err)
}

func TestAccessTokenRejectedAsInvitation(t *testing.T) {
	svc, _, userRepo, _ := newAuthService(t)
	response := registerAdmin(t, svc)

	user, err := userRepo.GetByID(response.User.ID)
	require.NoError(t, err)

	accessToken, err := generateAccessToken(user, response.Tenant.ID)
	require.NoError(t, err)

	_, _, _, err = verifyInvitationToken(accessToken)
	assert.Error(t, err)
}
