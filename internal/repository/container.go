package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	Profile    ProfileRepo
	Client     ClientRepo
	Request    RequestRepo
	Comment    CommentRepo
	Attachment AttachmentRepo
	Audit      AuditRepo
	Stats      StatsRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Profile:    NewProfileRepo(db),
		Client:     NewClientRepo(db),
		Request:    NewRequestRepo(db),
		Comment:    NewCommentRepo(db),
		Attachment: NewAttachmentRepo(db),
		Audit:      NewAuditRepo(db),
		Stats:      NewStatsRepo(db),
		db:         db,
	}
}

func (r *Repos) Begin() *gorm.DB {
	return r.db.Begin()
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Profile:    r.Profile.WithTx(tx),
		Client:     r.Client.WithTx(tx),
		Request:    r.Request.WithTx(tx),
		Comment:    r.Comment.WithTx(tx),
		Attachment: r.Attachment.WithTx(tx),
		Audit:      r.Audit.WithTx(tx),
		Stats:      r.Stats.WithTx(tx),
		db:         tx,
	}
}

// ExecTx runs fn inside one database transaction against
// transaction-scoped repositories. A container built without a
// database (in-memory doubles) runs fn directly.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
