package repository

import (
	"time"

	"github.com/adflow-io/adflow-go/internal/domain/attachment"
	"github.com/adflow-io/adflow-go/internal/domain/comment"
	"github.com/adflow-io/adflow-go/internal/domain/request"
	"gorm.io/gorm"
)

type RequestRepo interface {
	Create(req *request.Request) error
	GetByID(id uint) (request.Request, error)
	// ListAll is the staff view: all requests newest-first with client
	// and operator summaries, total comment counts and the latest
	// public client comment.
	ListAll() ([]request.WithRelations, error)
	// ListByClientID is the owning client's view; comment counts skip
	// internal comments so their existence is not leaked.
	ListByClientID(clientID uint) ([]request.WithRelations, error)
	Save(req *request.Request) error
	// Delete hard-deletes the request with its comments and attachment
	// metadata in one transaction.
	Delete(id uint) error
	WithTx(tx *gorm.DB) RequestRepo
}

type DBRequestRepo struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) *DBRequestRepo {
	return &DBRequestRepo{db: db}
}

func (r *DBRequestRepo) Create(req *request.Request) error {
	return r.db.Create(req).Error
}

func (r *DBRequestRepo) GetByID(id uint) (request.Request, error) {
	var req request.Request
	if err := r.db.Preload("Client").Preload("Operator").First(&req, id).Error; err != nil {
		return req, err
	}
	return req, nil
}

func (r *DBRequestRepo) ListAll() ([]request.WithRelations, error) {
	var requests []request.Request
	err := r.db.Preload("Client").Preload("Operator").Order("created_at desc").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return r.withRelations(requests, false)
}

func (r *DBRequestRepo) ListByClientID(clientID uint) ([]request.WithRelations, error) {
	var requests []request.Request
	err := r.db.
		Where("client_id = ?", clientID).
		Preload("Client").Preload("Operator").
		Order("created_at desc").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return r.withRelations(requests, true)
}

type commentCountRow struct {
	RequestID uint
	Count     int64
}

type latestCommentRow struct {
	ID         uint
	RequestID  uint
	Content    string
	AuthorID   uint
	AuthorName string
	CreatedAt  time.Time
}

func (r *DBRequestRepo) withRelations(requests []request.Request, publicOnly bool) ([]request.WithRelations, error) {
	result := make([]request.WithRelations, 0, len(requests))
	if len(requests) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ID)
	}

	countQuery := r.db.Model(&comment.Comment{}).
		Select("request_id, COUNT(*) AS count").
		Where("request_id IN ?", ids)
	if publicOnly {
		countQuery = countQuery.Where("is_internal = ?", false)
	}
	var counts []commentCountRow
	if err := countQuery.Group("request_id").Scan(&counts).Error; err != nil {
		return nil, err
	}
	countMap := make(map[uint]int64, len(counts))
	for _, row := range counts {
		countMap[row.RequestID] = row.Count
	}

	// Newest public comment per request authored by the client side,
	// shown on staff listings as "what the client said last".
	var latest []latestCommentRow
	err := r.db.Table("request_comments c").
		Select("c.id, c.request_id, c.content, c.author_id, p.name AS author_name, c.created_at").
		Joins("JOIN profiles p ON p.id = c.author_id").
		Where("c.request_id IN ? AND c.is_internal = ? AND p.role = ?", ids, false, "client").
		Order("c.created_at desc, c.id desc").
		Scan(&latest).Error
	if err != nil {
		return nil, err
	}
	latestMap := make(map[uint]*request.LatestClientComment)
	for i := range latest {
		row := latest[i]
		if _, seen := latestMap[row.RequestID]; seen {
			continue
		}
		latestMap[row.RequestID] = &request.LatestClientComment{
			ID:         row.ID,
			Content:    row.Content,
			AuthorID:   row.AuthorID,
			AuthorName: row.AuthorName,
			CreatedAt:  row.CreatedAt,
		}
	}

	for _, req := range requests {
		item := request.WithRelations{
			Request:             req,
			CommentCount:        countMap[req.ID],
			LatestClientComment: latestMap[req.ID],
		}
		if req.Client != nil {
			summary := req.Client.Summary()
			item.ClientSummary = &summary
		}
		if req.Operator != nil {
			summary := req.Operator.Summary()
			item.OperatorSummary = &summary
		}
		item.Request.Client = nil
		item.Request.Operator = nil
		result = append(result, item)
	}
	return result, nil
}

func (r *DBRequestRepo) Save(req *request.Request) error {
	return r.db.Save(req).Error
}

func (r *DBRequestRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var req request.Request
		if err := tx.First(&req, id).Error; err != nil {
			return err
		}
		if err := tx.Where("request_id = ?", id).Delete(&attachment.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("request_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&request.Request{}, id).Error
	})
}

func (r *DBRequestRepo) WithTx(tx *gorm.DB) RequestRepo {
	return &DBRequestRepo{db: tx}
}
