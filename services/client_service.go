package services

import (
	"time"

	"github.com/google/uuid"

	"timetracker/models"
	"timetracker/repositories"
)

type ClientService interface {
	Create(tenantID uuid.UUID, req models.ClientCreateRequest) (*models.ClientResponse, error)
	List(tenantID uuid.UUID, params models.ClientListParams) (*models.ClientsListResponse, error)
	Get(tenantID, clientID uuid.UUID) (*models.ClientResponse, error)
	Update(tenantID, clientID uuid.UUID, req models.ClientUpdateRequest) (*models.ClientResponse, error)
	Deactivate(tenantID, clientID uuid.UUID) (*models.ClientResponse, error)
	Delete(tenantID, clientID uuid.UUID) error
	Projects(tenantID, clientID uuid.UUID) (*models.ProjectsListResponse, error)
	TimeSummary(tenantID, clientID uuid.UUID, startDate, endDate string) (*models.TimeSummaryResponse, error)
}

type clientService struct {
	clientRepo  repositories.ClientRepository
	projectRepo repositories.ProjectRepository
	entryRepo   repositories.TimeEntryRepository
}

func NewClientService(
	clientRepo repositories.ClientRepository,
	projectRepo repositories.ProjectRepository,
	entryRepo repositories.TimeEntryRepository,
) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		entryRepo:   entryRepo,
	}
}

func (s *clientService) Create(tenantID uuid.UUID, req models.ClientCreateRequest) (*models.ClientResponse, error) {
	if _, err := s.clientRepo.GetByName(tenantID, req.Name); err == nil {
		return nil, models.ErrorConflict{Message: "Client with this name already exists in this tenant"}
	}

	client := &models.Client{
		TenantID:     tenantID,
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		Active:       true,
	}
	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}

	return &models.ClientResponse{Client: *client}, nil
}

func (s *clientService) List(tenantID uuid.UUID, params models.ClientListParams) (*models.ClientsListResponse, error) {
	clients, total, err := s.clientRepo.List(tenantID, params)
	if err != nil {
		return nil, err
	}

	responses := make([]models.ClientResponse, 0, len(clients))
	for _, client := range clients {
		response, err := s.withStats(client)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}

	activeCount, err := s.clientRepo.CountActive(tenantID)
	if err != nil {
		return nil, err
	}

	return &models.ClientsListResponse{
		Clients:       responses,
		Total:         total,
		ActiveCount:   activeCount,
		InactiveCount: total - activeCount,
	}, nil
}

func (s *clientService) Get(tenantID, clientID uuid.UUID) (*models.ClientResponse, error) {
	client, err := s.clientRepo.GetByID(tenantID, clientID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "Client not found"}
	}
	return s.withStats(*client)
}

func (s *clientService) Update(tenantID, clientID uuid.UUID, req models.ClientUpdateRequest) (*models.ClientResponse, error) {
	client, err := s.clientRepo.GetByID(tenantID, clientID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "Client not found"}
	}

	if req.Name != nil && *req.Name != client.Name {
		if existing, err := s.clientRepo.GetByName(tenantID, *req.Name); err == nil && existing.ID != client.ID {
			return nil, models.ErrorConflict{Message: "Client with this name already exists in this tenant"}
		}
		client.Name = *req.Name
	}
	if req.ContactEmail != nil {
		client.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != nil {
		client.ContactPhone = req.ContactPhone
	}
	if req.Address != nil {
		client.Address = req.Address
	}
	if req.Active != nil {
		client.Active = *req.Active
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return s.withStats(*client)
}

func (s *clientService) Deactivate(tenantID, clientID uuid.UUID) (*models.ClientResponse, error) {
	client, err := s.clientRepo.GetByID(tenantID, clientID)
	if err != nil {
		return nil, models.ErrorNotFound{Message: "Client not found"}
	}

	now := nowUTC()
	client.Active = false
	client.DeactivatedAt = &now

	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return &models.ClientResponse{Client: *client}, nil
}

// Delete removes a client permanently, but only when no projects reference
// it. Clients with projects are deactivated instead.
func (s *clientService) Delete(tenantID, clientID uuid.UUID) error {
	client, err := s.clientRepo.GetByID(tenantID, clientID)
	if err != nil {
		return models.ErrorNotFound{Message: "Client not found"}
	}

	projectCount, err := s.clientRepo.CountProjects(clientID)
	if err != nil {
		return err
	}
	if projectCount > 0 {
		return models.ErrorBadRequest{Message: "Cannot delete client with active projects"}
	}

	return s.clientRepo.Delete(client)
}

func (s *clientService) Projects(tenantID, clientID uuid.UUID) (*models.ProjectsListResponse, error) {
	if _, err := s.clientRepo.GetByID(tenantID, clientID); err != nil {
		return nil, models.ErrorNotFound{Message: "Client not found"}
	}

	projects, err := s.projectRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}

	response := &models.ProjectsListResponse{
		Projects: make([]models.ProjectResponse, 0, len(projects)),
		Total:    int64(len(projects)),
	}

	for _, project := range projects {
		hours, err := s.projectRepo.HoursTracked(project.ID)
		if err != nil {
			return nil, err
		}

		response.Projects = append(response.Projects, models.ProjectResponse{
			Project:      project,
			HoursTracked: hours,
		})

		if project.Budget != nil {
			response.TotalBudget += *project.Budget
		}
		response.TotalHours += hours

		switch project.Status {
		case models.ProjectActive:
			response.ActiveCount++
		case models.ProjectCompleted:
			response.CompletedCount++
		}
	}

	return response, nil
}

func (s *clientService) TimeSummary(tenantID, clientID uuid.UUID, startDate, endDate string) (*models.TimeSummaryResponse, error) {
	if _, err := s.clientRepo.GetByID(tenantID, clientID); err != nil {
		return nil, models.ErrorNotFound{Message: "Client not found"}
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, models.ErrorBadRequest{Message: "Invalid date format. Use YYYY-MM-DD."}
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, models.ErrorBadRequest{Message: "Invalid date format. Use YYYY-MM-DD."}
	}
	// Make the end date inclusive.
	end = end.Add(24*time.Hour - time.Nanosecond)

	entries, err := s.entryRepo.ListForClientPeriod(clientID, start, end)
	if err != nil {
		return nil, err
	}

	summary := models.TimeSummary{ProjectBreakdown: []models.ProjectBreakdown{}}
	breakdownIndex := map[uuid.UUID]int{}

	for _, entry := range entries {
		minutes := 0
		if entry.DurationMinutes != nil {
			minutes = *entry.DurationMinutes
		}
		hours := float64(minutes) / 60.0

		summary.TotalHours += hours
		if entry.Billable {
			summary.BillableHours += hours
		}
		if entry.Amount != nil {
			summary.TotalRevenue += *entry.Amount
		}

		idx, ok := breakdownIndex[entry.ProjectID]
		if !ok {
			name := "Unknown"
			if project, err := s.projectRepo.GetByID(tenantID, entry.ProjectID); err == nil {
				name = project.Name
			}
			summary.ProjectBreakdown = append(summary.ProjectBreakdown, models.ProjectBreakdown{
				ProjectID:   entry.ProjectID,
				ProjectName: name,
			})
			idx = len(summary.ProjectBreakdown) - 1
			breakdownIndex[entry.ProjectID] = idx
		}
		summary.ProjectBreakdown[idx].Hours += hours
	}

	summary.NonBillableHours = summary.TotalHours - summary.BillableHours

	return &models.TimeSummaryResponse{
		ClientID: clientID,
		Period:   models.TimeSummaryPeriod{StartDate: startDate, EndDate: endDate},
		Summary:  summary,
	}, nil
}

func (s *clientService) withStats(client models.Client) (*models.ClientResponse, error) {
	stats, err := s.clientRepo.Stats(client.ID)
	if err != nil {
		return nil, err
	}

	return &models.ClientResponse{
		Client:            client,
		ProjectCount:      stats.ProjectCount,
		TotalHoursTracked: float64(stats.TotalMinutes) / 60.0,
		TotalRevenue:      stats.TotalRevenue,
	}, nil
}
