package application

import (
	"errors"
	"time"

	"github.com/adflow-io/adflow-go/internal/api/middleware"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/pkg/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrEmailTaken          = errors.New("email already taken")
	ErrIncorrectPassword   = errors.New("old password is incorrect")
	ErrMissingOldPassword  = errors.New("old password is required to change password")
	ErrPasswordHashFailure = errors.New("failed to hash new password")
	ErrPermissionDenied    = errors.New("permission denied")
)

type ProfileService struct {
	Repos *repository.Repos
}

func NewProfileService(repos *repository.Repos) *ProfileService {
	return &ProfileService{Repos: repos}
}

// CreateProfile provisions an account. Admin-only; the route enforces
// the role, the service owns uniqueness and hashing.
func (s *ProfileService) CreateProfile(input profile.CreateProfileDTO) (profile.Profile, error) {
	_, err := s.Repos.Profile.GetByEmail(input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return profile.Profile{}, err
	}
	if err == nil {
		return profile.Profile{}, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return profile.Profile{}, ErrPasswordHashFailure
	}

	p := profile.Profile{
		Email:      input.Email,
		Name:       input.Name,
		Password:   string(hashed),
		Role:       profile.Role(input.Role),
		Department: input.Department,
		Status:     profile.StatusActive,
	}
	if err := s.Repos.Profile.Save(&p); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func (s *ProfileService) Login(email, password string) (profile.Profile, string, error) {
	p, err := s.Repos.Profile.GetByEmail(email)
	if err != nil {
		return profile.Profile{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password)); err != nil {
		return profile.Profile{}, "", ErrInvalidCredentials
	}
	if p.Status != profile.StatusActive {
		return profile.Profile{}, "", ErrAccountInactive
	}

	token, err := middleware.GenerateToken(p.ID, p.Name, string(p.Role), 24*time.Hour)
	if err != nil {
		return profile.Profile{}, "", err
	}
	return p, token, nil
}

func (s *ProfileService) ListProfiles() ([]profile.Profile, error) {
	return s.Repos.Profile.ListAll()
}

// ListOperators returns the staff profiles offered in assignment
// selectors.
func (s *ProfileService) ListOperators() ([]profile.Profile, error) {
	return s.Repos.Profile.ListStaff()
}

func (s *ProfileService) FindProfileByID(id uint) (profile.Profile, error) {
	p, err := s.Repos.Profile.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (s *ProfileService) UpdateProfile(id uint, input profile.UpdateProfileDTO) (profile.Profile, error) {
	p, err := s.Repos.Profile.GetByID(id)
	if err != nil {
		return profile.Profile{}, ErrProfileNotFound
	}

	if input.Email != nil && *input.Email != p.Email {
		existing, err := s.Repos.Profile.GetByEmail(*input.Email)
		if err == nil && existing.ID != id {
			return profile.Profile{}, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return profile.Profile{}, err
		}
		p.Email = *input.Email
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Role != nil {
		p.Role = profile.Role(*input.Role)
	}
	if input.Department != nil {
		p.Department = input.Department
	}
	if input.Status != nil {
		p.Status = profile.Status(*input.Status)
	}

	if err := s.Repos.Profile.Save(&p); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

// ChangePassword lets a profile rotate its own password with the old
// one, and admins override without it.
func (s *ProfileService) ChangePassword(actor types.Viewer, id uint, input profile.ChangePasswordDTO) error {
	if actor.ProfileID != id && !actor.Admin() {
		return ErrPermissionDenied
	}

	p, err := s.Repos.Profile.GetByID(id)
	if err != nil {
		return ErrProfileNotFound
	}

	if !actor.Admin() {
		if input.OldPassword == nil {
			return ErrMissingOldPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(*input.OldPassword)); err != nil {
			return ErrIncorrectPassword
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrPasswordHashFailure
	}
	p.Password = string(hashed)
	return s.Repos.Profile.Save(&p)
}

// DeactivateProfile is the "delete" operation; accounts are retained
// as inactive so authored comments keep their history.
func (s *ProfileService) DeactivateProfile(id uint) error {
	if err := s.Repos.Profile.Deactivate(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}
