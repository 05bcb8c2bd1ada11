package repository

import (
	"github.com/adflow-io/adflow-go/internal/domain/client"
	"gorm.io/gorm"
)

type ClientRepo interface {
	GetByID(id uint) (client.Client, error)
	// GetByUserID resolves the client record linked to a client-role
	// profile. Returns gorm.ErrRecordNotFound for unlinked logins.
	GetByUserID(userID uint) (client.Client, error)
	ListAll() ([]client.Client, error)
	Save(c *client.Client) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) ClientRepo
}

type DBClientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) *DBClientRepo {
	return &DBClientRepo{db: db}
}

func (r *DBClientRepo) GetByID(id uint) (client.Client, error) {
	var c client.Client
	if err := r.db.Preload("AssignedOperator").First(&c, id).Error; err != nil {
		return c, err
	}
	return c, nil
}

func (r *DBClientRepo) GetByUserID(userID uint) (client.Client, error) {
	var c client.Client
	if err := r.db.Where("user_id = ?", userID).First(&c).Error; err != nil {
		return c, err
	}
	return c, nil
}

func (r *DBClientRepo) ListAll() ([]client.Client, error) {
	var clients []client.Client
	err := r.db.Preload("AssignedOperator").Order("created_at desc").Find(&clients).Error
	return clients, err
}

func (r *DBClientRepo) Save(c *client.Client) error {
	return r.db.Save(c).Error
}

func (r *DBClientRepo) Delete(id uint) error {
	res := r.db.Delete(&client.Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBClientRepo) WithTx(tx *gorm.DB) ClientRepo {
	return &DBClientRepo{db: tx}
}
