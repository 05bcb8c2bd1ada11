package application

import (
	"errors"

	"github.com/adflow-io/adflow-go/internal/domain/client"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound = errors.New("client not found")
	// ErrUserNotClient rejects linking a client record to a non-client
	// login.
	ErrUserNotClient = errors.New("linked user must have the client role")
)

type ClientService struct {
	Repos *repository.Repos
}

func NewClientService(repos *repository.Repos) *ClientService {
	return &ClientService{Repos: repos}
}

func (s *ClientService) checkUserLink(userID uint) error {
	p, err := s.Repos.Profile.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	if p.Role != profile.RoleClient {
		return ErrUserNotClient
	}
	return nil
}

func (s *ClientService) CreateClient(input client.CreateClientDTO) (client.Client, error) {
	if input.UserID != nil {
		if err := s.checkUserLink(*input.UserID); err != nil {
			return client.Client{}, err
		}
	}

	c := client.Client{
		UserID:             input.UserID,
		DepartmentName:     input.DepartmentName,
		ContactName:        input.ContactName,
		Email:              input.Email,
		Phone:              input.Phone,
		Status:             profile.StatusActive,
		AssignedOperatorID: input.AssignedOperatorID,
	}
	if err := s.Repos.Client.Save(&c); err != nil {
		return client.Client{}, err
	}
	return c, nil
}

func (s *ClientService) ListClients() ([]client.Client, error) {
	return s.Repos.Client.ListAll()
}

func (s *ClientService) FindClientByID(id uint) (client.Client, error) {
	c, err := s.Repos.Client.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return client.Client{}, ErrClientNotFound
		}
		return client.Client{}, err
	}
	return c, nil
}

// FindClientByUserID resolves the client record behind a client-role
// login so the UI can scope its request list.
func (s *ClientService) FindClientByUserID(userID uint) (client.Client, error) {
	c, err := s.Repos.Client.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return client.Client{}, ErrClientNotFound
		}
		return client.Client{}, err
	}
	return c, nil
}

func (s *ClientService) UpdateClient(id uint, input client.UpdateClientDTO) (client.Client, error) {
	c, err := s.Repos.Client.GetByID(id)
	if err != nil {
		return client.Client{}, ErrClientNotFound
	}

	if input.UserID != nil {
		if err := s.checkUserLink(*input.UserID); err != nil {
			return client.Client{}, err
		}
		c.UserID = input.UserID
	}
	if input.DepartmentName != nil {
		c.DepartmentName = *input.DepartmentName
	}
	if input.ContactName != nil {
		c.ContactName = *input.ContactName
	}
	if input.Email != nil {
		c.Email = *input.Email
	}
	if input.Phone != nil {
		c.Phone = input.Phone
	}
	if input.Status != nil {
		c.Status = profile.Status(*input.Status)
	}
	if input.AssignedOperatorID != nil {
		c.AssignedOperatorID = input.AssignedOperatorID
	}

	c.AssignedOperator = nil
	if err := s.Repos.Client.Save(&c); err != nil {
		return client.Client{}, err
	}
	return c, nil
}

func (s *ClientService) DeleteClient(id uint) error {
	if err := s.Repos.Client.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}
