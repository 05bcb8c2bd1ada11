package repository

import (
	"github.com/adflow-io/adflow-go/internal/domain/attachment"
	"gorm.io/gorm"
)

type AttachmentRepo interface {
	Create(a *attachment.Attachment) error
	GetByID(id uint) (attachment.Attachment, error)
	// ListByRequestID returns request-level attachments only;
	// comment-scoped files are listed through their comment.
	ListByRequestID(requestID uint) ([]attachment.Attachment, error)
	ListByCommentID(commentID uint) ([]attachment.Attachment, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) AttachmentRepo
}

type DBAttachmentRepo struct {
	db *gorm.DB
}

func NewAttachmentRepo(db *gorm.DB) *DBAttachmentRepo {
	return &DBAttachmentRepo{db: db}
}

func (r *DBAttachmentRepo) Create(a *attachment.Attachment) error {
	return r.db.Create(a).Error
}

func (r *DBAttachmentRepo) GetByID(id uint) (attachment.Attachment, error) {
	var a attachment.Attachment
	if err := r.db.First(&a, id).Error; err != nil {
		return a, err
	}
	return a, nil
}

func (r *DBAttachmentRepo) ListByRequestID(requestID uint) ([]attachment.Attachment, error) {
	var attachments []attachment.Attachment
	err := r.db.
		Where("request_id = ? AND comment_id IS NULL", requestID).
		Order("created_at desc").
		Find(&attachments).Error
	return attachments, err
}

func (r *DBAttachmentRepo) ListByCommentID(commentID uint) ([]attachment.Attachment, error) {
	var attachments []attachment.Attachment
	err := r.db.
		Where("comment_id = ?", commentID).
		Order("created_at desc").
		Find(&attachments).Error
	return attachments, err
}

func (r *DBAttachmentRepo) Delete(id uint) error {
	res := r.db.Delete(&attachment.Attachment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBAttachmentRepo) WithTx(tx *gorm.DB) AttachmentRepo {
	return &DBAttachmentRepo{db: tx}
}
