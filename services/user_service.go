package services

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"timetracker/mailer"
	"timetracker/models"
	"timetracker/repositories"
)

type UserService interface {
	Create(tenantID uuid.UUID, req models.UserCreateRequest) (*models.User, error)
	List(tenantID uuid.UUID, params models.UserListParams) (*models.UsersListResponse, error)
	Get(tenantID, requesterID, targetID uuid.UUID, requesterIsAdmin bool) (*models.User, error)
	Update(tenantID, requesterID, targetID uuid.UUID, requesterIsAdmin bool, req models.UserUpdateRequest) (*models.User, error)
	UpdateRole(tenantID, targetID uuid.UUID, req models.UserRoleUpdateRequest) (*models.User, error)
	Deactivate(tenantID, targetID uuid.UUID) (*models.User, error)
	ChangePassword(userID uuid.UUID, req models.ChangePasswordRequest, ip, userAgent string) error
	Activity(userID uuid.UUID, page, perPage int) (*models.UserActivityResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
	authRepo repositories.AuthRepository
	mail     mailer.Mailer
}

func NewUserService(
	userRepo repositories.UserRepository,
	authRepo repositories.AuthRepository,
	mail mailer.Mailer,
) UserService {
	return &userService{
		userRepo: userRepo,
		authRepo: authRepo,
		mail:     mail,
	}
}

// Create adds a user to the tenant with a random password. The user is
// expected to come in through an invitation or a password reset.
func (s *userService) Create(tenantID uuid.UUID, req models.UserCreateRequest) (*models.User, error) {
	role := models.UserRole(req.Role)
	if !role.Valid() {
		return nil, models.ErrorValidation{Message: "Invalid role"}
	}

	if _, err := s.userRepo.GetByTenantAndEmail(tenantID, req.Email); err == nil {
		return nil, models.ErrorConflict{Message: "User with this email already exists in this tenant"}
	}

	tempPassword, err := randomToken()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		TenantID:     tenantID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Active:       true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if req.SendInvitation == nil || *req.SendInvitation {
		if token, err := generateInvitationToken(req.Email, tenantID, role); err == nil {
			_ = s.mail.Send(req.Email, "You have been invited",
				"Use this token to activate your account: "+token)
		}
	}

	return user, nil
}

func (s *userService) List(tenantID uuid.UUID, params models.UserListParams) (*models.UsersListResponse, error) {
	users, total, err := s.userRepo.List(tenantID, params)
	if err != nil {
		return nil, err
	}

	activeCount, err := s.userRepo.CountActive(tenantID)
	if err != nil {
		return nil, err
	}

	adminCount, err := s.userRepo.CountByRole(tenantID, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &models.UsersListResponse{
		Users:       users,
		Total:       total,
		ActiveCount: activeCount,
		AdminCount:  adminCount,
	}, nil
}

func (s *userService) Get(tenantID, requesterID, targetID uuid.UUID, requesterIsAdmin bool) (*models.User, error) {
	if targetID != requesterID && !requesterIsAdmin {
		return nil, models.ErrorForbidden{Message: "Cannot view other user's profile"}
	}

	user, err := s.userRepo.GetByTenantAndID(tenantID, targetID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "User not found"}
	}
	return user, nil
}

func (s *userService) Update(tenantID, requesterID, targetID uuid.UUID, requesterIsAdmin bool, req models.UserUpdateRequest) (*models.User, error) {
	if targetID != requesterID && !requesterIsAdmin {
		return nil, models.ErrorForbidden{Message: "Cannot modify other user's profile"}
	}

	user, err := s.userRepo.GetByTenantAndID(tenantID, targetID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "User not found"}
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRole(tenantID, targetID uuid.UUID, req models.UserRoleUpdateRequest) (*models.User, error) {
	user, err := s.userRepo.GetByTenantAndID(tenantID, targetID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "User not found"}
	}

	role := models.UserRole(req.Role)
	if !role.Valid() {
		return nil, models.ErrorValidation{Message: "Invalid role"}
	}
	user.Role = role

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Deactivate(tenantID, targetID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByTenantAndID(tenantID, targetID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "User not found"}
	}

	now := nowUTC()
	user.Active = false
	user.DeactivatedAt = &now

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(userID uuid.UUID, req models.ChangePasswordRequest, ip, userAgent string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return models.ErrorNotFound{Message: "User not found"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return models.ErrorBadRequest{Message: "Current password is incorrect"}
	}

	if !validPassword(req.NewPassword) {
		return models.ErrorValidation{Message: "New password does not meet requirements"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	return s.authRepo.RecordActivity(&models.UserActivityLog{
		UserID:    user.ID,
		Action:    "password_change",
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

func (s *userService) Activity(userID uuid.UUID, page, perPage int) (*models.UserActivityResponse, error) {
	activities, total, err := s.authRepo.ListActivity(userID, page, perPage)
	if err != nil {
		return nil, err
	}
	return &models.UserActivityResponse{Activities: activities, Total: total}, nil
}
