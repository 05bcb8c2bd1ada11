package repository

import (
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"gorm.io/gorm"
)

type ProfileRepo interface {
	GetByID(id uint) (profile.Profile, error)
	GetByEmail(email string) (profile.Profile, error)
	ListAll() ([]profile.Profile, error)
	// ListStaff returns operator and admin profiles ordered by name,
	// the pool shown in operator-assignment selectors.
	ListStaff() ([]profile.Profile, error)
	ListByRole(role profile.Role) ([]profile.Profile, error)
	Save(p *profile.Profile) error
	// Deactivate flips status to inactive; profiles are never
	// hard-deleted.
	Deactivate(id uint) error
	WithTx(tx *gorm.DB) ProfileRepo
}

type DBProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *DBProfileRepo {
	return &DBProfileRepo{db: db}
}

func (r *DBProfileRepo) GetByID(id uint) (profile.Profile, error) {
	var p profile.Profile
	if err := r.db.First(&p, id).Error; err != nil {
		return p, err
	}
	return p, nil
}

func (r *DBProfileRepo) GetByEmail(email string) (profile.Profile, error) {
	var p profile.Profile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		return p, err
	}
	return p, nil
}

func (r *DBProfileRepo) ListAll() ([]profile.Profile, error) {
	var profiles []profile.Profile
	err := r.db.Order("name asc").Find(&profiles).Error
	return profiles, err
}

func (r *DBProfileRepo) ListStaff() ([]profile.Profile, error) {
	var profiles []profile.Profile
	err := r.db.
		Where("role IN ?", []profile.Role{profile.RoleOperator, profile.RoleAdmin}).
		Order("name asc").
		Find(&profiles).Error
	return profiles, err
}

func (r *DBProfileRepo) ListByRole(role profile.Role) ([]profile.Profile, error) {
	var profiles []profile.Profile
	err := r.db.Where("role = ?", role).Order("name asc").Find(&profiles).Error
	return profiles, err
}

func (r *DBProfileRepo) Save(p *profile.Profile) error {
	return r.db.Save(p).Error
}

func (r *DBProfileRepo) Deactivate(id uint) error {
	res := r.db.Model(&profile.Profile{}).Where("id = ?", id).Update("status", profile.StatusInactive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBProfileRepo) WithTx(tx *gorm.DB) ProfileRepo {
	return &DBProfileRepo{db: tx}
}
