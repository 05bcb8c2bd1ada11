package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/internal/domain/request"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	// ErrRequestLocked means the request left pending and its content
	// is frozen for the client.
	ErrRequestLocked      = errors.New("request can no longer be edited")
	ErrInvalidTransition  = errors.New("status transition not permitted")
	ErrOperatorNotStaff   = errors.New("assignee must be an operator or admin")
	ErrNoClientForProfile = errors.New("no client record linked to this profile")
)

type RequestService struct {
	Repos *repository.Repos
}

func NewRequestService(repos *repository.Repos) *RequestService {
	return &RequestService{Repos: repos}
}

// generateRequestNumber builds the opaque unique token stamped on a
// request at insert. The date prefix keeps numbers sortable for
// humans; the UUID-derived suffix guards uniqueness.
var generateRequestNumber = func(now time.Time) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("REQ-%s-%s", now.Format("20060102"), token)
}

// ownClient resolves the actor's client record. Only client-role
// actors have one.
func (s *RequestService) ownClient(actor types.Viewer) (uint, error) {
	c, err := s.Repos.Client.GetByUserID(actor.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoClientForProfile
		}
		return 0, err
	}
	return c.ID, nil
}

// CreateRequest submits a new request for the actor's client record.
// Status starts pending with no operator.
func (s *RequestService) CreateRequest(actor types.Viewer, input request.CreateRequestDTO) (request.Request, error) {
	if actor.Staff() {
		return request.Request{}, ErrPermissionDenied
	}
	clientID, err := s.ownClient(actor)
	if err != nil {
		return request.Request{}, err
	}

	priority := request.PriorityNormal
	if input.Priority != "" {
		priority = request.Priority(input.Priority)
	}

	req := request.Request{
		RequestNumber: generateRequestNumber(time.Now()),
		ClientID:      clientID,
		RequestType:   request.Type(input.RequestType),
		Platform:      request.Platform(input.Platform),
		Priority:      priority,
		Title:         input.Title,
		Description:   input.Description,
		DesiredDate:   input.DesiredDate,
		Status:        request.StatusPending,
	}
	if err := s.Repos.Request.Create(&req); err != nil {
		return request.Request{}, err
	}
	return req, nil
}

// ListRequests is the staff listing; client actors get their own
// requests only.
func (s *RequestService) ListRequests(actor types.Viewer) ([]request.WithRelations, error) {
	if actor.Staff() {
		return s.Repos.Request.ListAll()
	}
	clientID, err := s.ownClient(actor)
	if err != nil {
		return nil, err
	}
	return s.Repos.Request.ListByClientID(clientID)
}

func (s *RequestService) ListRequestsByClientID(actor types.Viewer, clientID uint) ([]request.WithRelations, error) {
	if !actor.Staff() {
		own, err := s.ownClient(actor)
		if err != nil {
			return nil, err
		}
		if own != clientID {
			return nil, ErrPermissionDenied
		}
	}
	return s.Repos.Request.ListByClientID(clientID)
}

func (s *RequestService) FindRequestByID(actor types.Viewer, id uint) (request.Request, error) {
	req, err := s.Repos.Request.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return request.Request{}, ErrRequestNotFound
		}
		return request.Request{}, err
	}
	if !actor.Staff() {
		clientID, err := s.ownClient(actor)
		if err != nil {
			return request.Request{}, err
		}
		if req.ClientID != clientID {
			return request.Request{}, ErrPermissionDenied
		}
	}
	return req, nil
}

// UpdateRequest rewrites client-editable content. Only the owning
// client may call it and only while the request is still pending.
func (s *RequestService) UpdateRequest(actor types.Viewer, id uint, input request.UpdateRequestDTO) (request.Request, error) {
	req, err := s.Repos.Request.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return request.Request{}, ErrRequestNotFound
		}
		return request.Request{}, err
	}

	clientID, err := s.ownClient(actor)
	if err != nil {
		return request.Request{}, err
	}
	if req.ClientID != clientID {
		return request.Request{}, ErrPermissionDenied
	}
	if !req.Editable() {
		return request.Request{}, ErrRequestLocked
	}

	if input.RequestType != nil {
		req.RequestType = request.Type(*input.RequestType)
	}
	if input.Platform != nil {
		req.Platform = request.Platform(*input.Platform)
	}
	if input.Priority != nil {
		req.Priority = request.Priority(*input.Priority)
	}
	if input.Title != nil {
		req.Title = *input.Title
	}
	if input.Description != nil {
		req.Description = *input.Description
	}
	if input.DesiredDate != nil {
		req.DesiredDate = input.DesiredDate
	}

	req.Client = nil
	req.Operator = nil
	if err := s.Repos.Request.Save(&req); err != nil {
		return request.Request{}, err
	}
	return req, nil
}

// UpdateStatus moves the request through its lifecycle. Operators get
// the forward/lateral set; admins may select any status. The first
// transition into completed stamps CompletedAt; it is never cleared
// afterwards.
func (s *RequestService) UpdateStatus(actor types.Viewer, id uint, newStatus request.Status) (request.Request, error) {
	if !actor.Staff() {
		return request.Request{}, ErrPermissionDenied
	}
	if !request.ValidStatus(newStatus) {
		return request.Request{}, ErrInvalidTransition
	}

	req, err := s.Repos.Request.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return request.Request{}, ErrRequestNotFound
		}
		return request.Request{}, err
	}

	if !actor.Admin() && !request.OperatorCanTransition(req.Status, newStatus) {
		return request.Request{}, ErrInvalidTransition
	}

	req.Status = newStatus
	if newStatus == request.StatusCompleted && req.CompletedAt == nil {
		now := time.Now()
		req.CompletedAt = &now
	}

	req.Client = nil
	req.Operator = nil
	if err := s.Repos.Request.Save(&req); err != nil {
		return request.Request{}, err
	}
	return req, nil
}

// AssignOperator sets the handling operator. Allowed at any status and
// never changes the status by itself.
func (s *RequestService) AssignOperator(actor types.Viewer, id uint, operatorID uint) (request.Request, error) {
	if !actor.Staff() {
		return request.Request{}, ErrPermissionDenied
	}

	operator, err := s.Repos.Profile.GetByID(operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return request.Request{}, ErrProfileNotFound
		}
		return request.Request{}, err
	}
	if operator.Role != profile.RoleOperator && operator.Role != profile.RoleAdmin {
		return request.Request{}, ErrOperatorNotStaff
	}

	req, err := s.Repos.Request.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return request.Request{}, ErrRequestNotFound
		}
		return request.Request{}, err
	}

	req.OperatorID = &operatorID
	req.Client = nil
	req.Operator = nil
	if err := s.Repos.Request.Save(&req); err != nil {
		return request.Request{}, err
	}
	return req, nil
}

// DeleteRequest hard-deletes a request and its children. Admin-only.
func (s *RequestService) DeleteRequest(actor types.Viewer, id uint) error {
	if !actor.Admin() {
		return ErrPermissionDenied
	}
	if err := s.Repos.Request.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	return nil
}
