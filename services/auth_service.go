package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timetracker/mailer"
	"timetracker/models"
	"timetracker/repositories"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.RegistrationResponse, error)
	Login(req models.LoginRequest, ip, userAgent string) (*models.AuthResponse, error)
	Logout(userID uuid.UUID, ip, userAgent string) error
	Refresh(userID, tenantID uuid.UUID, email, role string) (*models.TokenRefreshResponse, error)
	Me(userID, tenantID uuid.UUID) (*models.UserInfo, error)
	RequestPasswordReset(req models.PasswordResetRequest) error
	ConfirmPasswordReset(req models.PasswordResetConfirm) error
	SelectTenant(userID, userTenantID uuid.UUID, role string, req models.TenantSelectionRequest) (*models.TenantSelectionResponse, error)
	UserTenants(tenantID uuid.UUID, role string) (*models.TenantsInfoResponse, error)
	AcceptInvitation(req models.AcceptInvitationRequest) (*models.RegistrationResponse, error)
}

type authService struct {
	userRepo   repositories.UserRepository
	tenantRepo repositories.TenantRepository
	authRepo   repositories.AuthRepository
	mail       mailer.Mailer
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tenantRepo repositories.TenantRepository,
	authRepo repositories.AuthRepository,
	mail mailer.Mailer,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		authRepo:   authRepo,
		mail:       mail,
	}
}

// Register creates a new tenant together with its first user, who becomes
// the tenant admin.
func (s *authService) Register(req models.RegisterRequest) (*models.RegistrationResponse, error) {
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, models.ErrorConflict{Message: "User with this email already exists"}
	}

	if _, err := s.tenantRepo.GetByName(req.TenantName); err == nil {
		return nil, models.ErrorConflict{Message: "Tenant with this name already exists"}
	}

	if !validPassword(req.Password) {
		return nil, models.ErrorValidation{Message: "Password does not meet requirements"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		Name:     req.TenantName,
		Settings: models.JSONMap{"timezone": "UTC", "currency": "USD"},
		Active:   true,
	}
	if err := s.tenantRepo.Create(tenant); err != nil {
		return nil, err
	}

	user := &models.User{
		TenantID:     tenant.ID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := generateAccessToken(user, tenant.ID)
	if err != nil {
		return nil, err
	}

	return &models.RegistrationResponse{
		User:        toUserInfo(user, tenant.ID),
		Tenant:      models.TenantInfo{ID: tenant.ID, Name: tenant.Name, Role: string(user.Role)},
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

func (s *authService) Login(req models.LoginRequest, ip, userAgent string) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetActiveByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: "Invalid credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Message: "Invalid credentials"}
	}

	tenant, err := s.tenantRepo.GetActiveByID(user.TenantID)
	if err != nil {
		return nil, models.ErrorUnauthorized{Message: "User's tenant is not active"}
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	_ = s.authRepo.RecordActivity(&models.UserActivityLog{
		UserID:    user.ID,
		Action:    "login",
		IPAddress: ip,
		UserAgent: userAgent,
	})

	token, err := generateAccessToken(user, tenant.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserInfo(user, tenant.ID),
		Tenants: []models.TenantInfo{
			{ID: tenant.ID, Name: tenant.Name, Role: string(user.Role)},
		},
	}, nil
}

func (s *authService) Logout(userID uuid.UUID, ip, userAgent string) error {
	return s.authRepo.RecordActivity(&models.UserActivityLog{
		UserID:    userID,
		Action:    "logout",
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

func (s *authService) Refresh(userID, tenantID uuid.UUID, email, role string) (*models.TokenRefreshResponse, error) {
	token, err := signAccessToken(userID, tenantID, email, role)
	if err != nil {
		return nil, err
	}
	return &models.TokenRefreshResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *authService) Me(userID, tenantID uuid.UUID) (*models.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "User not found"}
	}
	info := toUserInfo(user, tenantID)
	return &info, nil
}

// RequestPasswordReset always reports success so email addresses cannot be
// enumerated.
func (s *authService) RequestPasswordReset(req models.PasswordResetRequest) error {
	user, err := s.userRepo.GetActiveByEmail(req.Email)
	if err != nil {
		return nil
	}

	secret, err := randomToken()
	if err != nil {
		return err
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     secret,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	if err := s.authRepo.CreateResetToken(token); err != nil {
		return err
	}

	return s.mail.Send(user.Email, "Password reset",
		"Use this token to reset your password: "+token.Token)
}

func (s *authService) ConfirmPasswordReset(req models.PasswordResetConfirm) error {
	reset, err := s.authRepo.GetValidResetToken(req.Token)
	if err != nil {
		return models.ErrorBadRequest{Message: "Invalid or expired reset token"}
	}

	if !validPassword(req.NewPassword) {
		return models.ErrorValidation{Message: "Password does not meet requirements"}
	}

	user, err := s.userRepo.GetByID(reset.UserID)
	if err != nil {
		return models.ErrorBadRequest{Message: "Invalid or expired reset token"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	reset.Used = true
	return s.authRepo.UpdateResetToken(reset)
}

func (s *authService) SelectTenant(userID, userTenantID uuid.UUID, role string, req models.TenantSelectionRequest) (*models.TenantSelectionResponse, error) {
	// Users currently belong to exactly one tenant.
	if req.TenantID != userTenantID {
		return nil, models.ErrorForbidden{Message: "Access to this tenant is not allowed"}
	}

	tenant, err := s.tenantRepo.GetActiveByID(req.TenantID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "Tenant not found"}
	}

	return &models.TenantSelectionResponse{
		Message:       "Tenant selected successfully",
		CurrentTenant: models.TenantInfo{ID: tenant.ID, Name: tenant.Name, Role: role},
	}, nil
}

func (s *authService) UserTenants(tenantID uuid.UUID, role string) (*models.TenantsInfoResponse, error) {
	tenant, err := s.tenantRepo.GetActiveByID(tenantID)
	if err != nil {
		return &models.TenantsInfoResponse{Tenants: []models.TenantInfo{}}, nil
	}

	return &models.TenantsInfoResponse{
		Tenants: []models.TenantInfo{
			{ID: tenant.ID, Name: tenant.Name, Role: role},
		},
	}, nil
}

func (s *authService) AcceptInvitation(req models.AcceptInvitationRequest) (*models.RegistrationResponse, error) {
	email, tenantID, role, err := verifyInvitationToken(req.Token)
	if err != nil {
		return nil, models.ErrorBadRequest{Message: "Invalid or expired invitation token"}
	}

	if !validPassword(req.Password) {
		return nil, models.ErrorValidation{Message: "Password does not meet requirements"}
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, models.ErrorConflict{Message: "User with this email already exists"}
	}

	tenant, err := s.tenantRepo.GetActiveByID(tenantID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "Tenant not found"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		TenantID:     tenant.ID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Active:       true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if invitation, err := s.authRepo.GetInvitationByToken(req.Token); err == nil {
		now := time.Now().UTC()
		invitation.Status = models.InvitationAccepted
		invitation.AcceptedAt = &now
		_ = s.authRepo.UpdateInvitation(invitation)
	}

	token, err := generateAccessToken(user, tenant.ID)
	if err != nil {
		return nil, err
	}

	return &models.RegistrationResponse{
		User:        toUserInfo(user, tenant.ID),
		Tenant:      models.TenantInfo{ID: tenant.ID, Name: tenant.Name, Role: string(user.Role)},
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

func toUserInfo(user *models.User, tenantID uuid.UUID) models.UserInfo {
	return models.UserInfo{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Role:            string(user.Role),
		Active:          user.Active,
		CurrentTenantID: tenantID,
		Preferences:     user.Preferences,
	}
}

func validPassword(password string) bool {
	return len(password) >= 8
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
