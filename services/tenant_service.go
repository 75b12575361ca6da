package services

import (
	"github.com/google/uuid"

	"timetracker/mailer"
	"timetracker/models"
	"timetracker/repositories"
)

type TenantService interface {
	Create(req models.TenantCreateRequest) (*models.TenantResponse, error)
	List(params models.TenantListParams) (*models.TenantsListResponse, error)
	Get(tenantID, userTenantID uuid.UUID, isAdmin bool) (*models.TenantResponse, error)
	Update(tenantID uuid.UUID, req models.TenantUpdateRequest) (*models.TenantResponse, error)
	Deactivate(tenantID uuid.UUID) (*models.TenantResponse, error)
	Invite(tenantID, invitedByID uuid.UUID, req models.UserInvitationRequest) (*models.Invitation, error)
	Users(tenantID uuid.UUID, params models.UserListParams) (*models.TenantUsersResponse, error)
	UpdateUserRole(tenantID, userID uuid.UUID, req models.UserRoleUpdateRequest) (*models.User, error)
	RemoveUser(tenantID, userID uuid.UUID) error
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	userRepo   repositories.UserRepository
	authRepo   repositories.AuthRepository
	mail       mailer.Mailer
}

func NewTenantService(
	tenantRepo repositories.TenantRepository,
	userRepo repositories.UserRepository,
	authRepo repositories.AuthRepository,
	mail mailer.Mailer,
) TenantService {
	return &tenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		authRepo:   authRepo,
		mail:       mail,
	}
}

func (s *tenantService) Create(req models.TenantCreateRequest) (*models.TenantResponse, error) {
	if _, err := s.tenantRepo.GetByName(req.Name); err == nil {
		return nil, models.ErrorConflict{Message: "Tenant with this name already exists"}
	}

	settings := req.Settings
	if settings == nil {
		settings = models.JSONMap{}
	}

	tenant := &models.Tenant{
		Name:     req.Name,
		Domain:   req.Domain,
		Settings: settings,
		Active:   true,
	}
	if err := s.tenantRepo.Create(tenant); err != nil {
		return nil, err
	}

	return &models.TenantResponse{Tenant: *tenant}, nil
}

func (s *tenantService) List(params models.TenantListParams) (*models.TenantsListResponse, error) {
	tenants, total, err := s.tenantRepo.List(params)
	if err != nil {
		return nil, err
	}

	responses := make([]models.TenantResponse, 0, len(tenants))
	for _, tenant := range tenants {
		userCount, err := s.tenantRepo.CountUsers(tenant.ID)
		if err != nil {
			return nil, err
		}
		projectCount, err := s.tenantRepo.CountProjects(tenant.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, models.TenantResponse{
			Tenant:       tenant,
			UserCount:    userCount,
			ProjectCount: projectCount,
		})
	}

	activeCount, err := s.tenantRepo.CountActive()
	if err != nil {
		return nil, err
	}

	return &models.TenantsListResponse{
		Tenants:       responses,
		Total:         total,
		ActiveCount:   activeCount,
		InactiveCount: total - activeCount,
	}, nil
}

func (s *tenantService) Get(tenantID, userTenantID uuid.UUID, isAdmin bool) (*models.TenantResponse, error) {
	if tenantID != userTenantID && !isAdmin {
		return nil, models.ErrorForbidden{Message: "Access denied"}
	}

	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "Tenant not found"}
	}

	userCount, err := s.tenantRepo.CountUsers(tenant.ID)
	if err != nil {
		return nil, err
	}
	projectCount, err := s.tenantRepo.CountProjects(tenant.ID)
	if err != nil {
		return nil, err
	}

	return &models.TenantResponse{
		Tenant:       *tenant,
		UserCount:    userCount,
		ProjectCount: projectCount,
	}, nil
}

func (s *tenantService) Update(tenantID uuid.UUID, req models.TenantUpdateRequest) (*models.TenantResponse, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "Tenant not found"}
	}

	if req.Name != nil && *req.Name != tenant.Name {
		if existing, err := s.tenantRepo.GetByName(*req.Name); err == nil && existing.ID != tenant.ID {
			return nil, models.ErrorConflict{Message: "Tenant with this name already exists"}
		}
		tenant.Name = *req.Name
	}
	if req.Domain != nil {
		tenant.Domain = req.Domain
	}
	if req.Settings != nil {
		tenant.Settings = *req.Settings
	}

	if err := s.tenantRepo.Update(tenant); err != nil {
		return nil, err
	}
	return &models.TenantResponse{Tenant: *tenant}, nil
}

func (s *tenantService) Deactivate(tenantID uuid.UUID) (*models.TenantResponse, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "Tenant not found"}
	}

	now := nowUTC()
	tenant.Active = false
	tenant.DeactivatedAt = &now

	if err := s.tenantRepo.Update(tenant); err != nil {
		return nil, err
	}
	return &models.TenantResponse{Tenant: *tenant}, nil
}

// Invite creates a pending invitation carrying a signed token and mails it
// to the invitee.
func (s *tenantService) Invite(tenantID, invitedByID uuid.UUID, req models.UserInvitationRequest) (*models.Invitation, error) {
	role := models.UserRole(req.Role)
	if !role.Valid() {
		return nil, models.ErrorValidation{Message: "Invalid role"}
	}

	if _, err := s.tenantRepo.GetActiveByID(tenantID); err != nil {
		return nil, models.ErrorNotFound{Message: "Tenant not found"}
	}

	if _, err := s.userRepo.GetByTenantAndEmail(tenantID, req.Email); err == nil {
		return nil, models.ErrorConflict{Message: "User with this email already exists in this tenant"}
	}

	token, err := generateInvitationToken(req.Email, tenantID, role)
	if err != nil {
		return nil, err
	}

	invitation := &models.Invitation{
		TenantID:    tenantID,
		Email:       req.Email,
		Role:        role,
		Token:       token,
		Status:      models.InvitationPending,
		Message:     req.Message,
		InvitedByID: &invitedByID,
		ExpiresAt:   nowUTC().Add(invitationTokenLifetime),
	}
	if err := s.authRepo.CreateInvitation(invitation); err != nil {
		return nil, err
	}

	_ = s.mail.Send(req.Email, "You have been invited",
		"Use this token to join: "+token)

	return invitation, nil
}

func (s *tenantService) Users(tenantID uuid.UUID, params models.UserListParams) (*models.TenantUsersResponse, error) {
	if _, err := s.tenantRepo.GetByID(tenantID); err != nil {
		return nil, models.ErrorNotFound{Message: "Tenant not found"}
	}

	users, total, err := s.userRepo.List(tenantID, params)
	if err != nil {
		return nil, err
	}

	activeCount, err := s.userRepo.CountActive(tenantID)
	if err != nil {
		return nil, err
	}

	return &models.TenantUsersResponse{
		Users:       users,
		Total:       total,
		ActiveCount: activeCount,
	}, nil
}

func (s *tenantService) UpdateUserRole(tenantID, userID uuid.UUID, req models.UserRoleUpdateRequest) (*models.User, error) {
	user, err := s.userRepo.GetByTenantAndID(tenantID, userID)
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

func (s *tenantService) RemoveUser(tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.GetByTenantAndID(tenantID, userID)
	if err != nil {
		return models.ErrorNotFound{Message: "User not found"}
	}
	return s.userRepo.Delete(user)
}
