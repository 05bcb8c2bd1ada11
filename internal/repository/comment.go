package repository

import (
	"github.com/adflow-io/adflow-go/internal/domain/attachment"
	"github.com/adflow-io/adflow-go/internal/domain/comment"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/pkg/types"
	"gorm.io/gorm"
)

type CommentRepo interface {
	Create(c *comment.Comment) error
	GetByID(id uint) (comment.Comment, error)
	// ListByRequestID returns comments oldest-first with author
	// summaries and attachments. Internal comments are filtered out
	// here, at the data-access boundary, for client-role viewers.
	ListByRequestID(requestID uint, viewer types.Viewer) ([]comment.WithRelations, error)
	Save(c *comment.Comment) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) CommentRepo
}

type DBCommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *DBCommentRepo {
	return &DBCommentRepo{db: db}
}

func (r *DBCommentRepo) Create(c *comment.Comment) error {
	return r.db.Create(c).Error
}

func (r *DBCommentRepo) GetByID(id uint) (comment.Comment, error) {
	var c comment.Comment
	if err := r.db.First(&c, id).Error; err != nil {
		return c, err
	}
	return c, nil
}

func (r *DBCommentRepo) ListByRequestID(requestID uint, viewer types.Viewer) ([]comment.WithRelations, error) {
	query := r.db.Model(&comment.Comment{}).Where("request_id = ?", requestID)
	if !viewer.Staff() {
		query = query.Where("is_internal = ?", false)
	}

	var comments []comment.Comment
	// id as tiebreaker keeps comments with equal timestamps in
	// insertion order.
	if err := query.Order("created_at asc, id asc").Find(&comments).Error; err != nil {
		return nil, err
	}

	result := make([]comment.WithRelations, 0, len(comments))
	if len(comments) == 0 {
		return result, nil
	}

	authorIDs := make([]uint, 0, len(comments))
	commentIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
		if c.AuthorID != nil {
			authorIDs = append(authorIDs, *c.AuthorID)
		}
	}

	authorMap := make(map[uint]profile.Summary)
	if len(authorIDs) > 0 {
		var authors []profile.Profile
		if err := r.db.Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
			return nil, err
		}
		for i := range authors {
			authorMap[authors[i].ID] = authors[i].Summary()
		}
	}

	var attachments []attachment.Attachment
	err := r.db.
		Where("comment_id IN ?", commentIDs).
		Order("created_at desc").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	attachmentMap := make(map[uint][]attachment.Attachment)
	for _, a := range attachments {
		if a.CommentID != nil {
			attachmentMap[*a.CommentID] = append(attachmentMap[*a.CommentID], a)
		}
	}

	for _, c := range comments {
		item := comment.WithRelations{
			Comment:     c,
			Attachments: attachmentMap[c.ID],
		}
		if item.Attachments == nil {
			item.Attachments = []attachment.Attachment{}
		}
		if c.AuthorID != nil {
			if summary, ok := authorMap[*c.AuthorID]; ok {
				item.Author = &summary
			}
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *DBCommentRepo) Save(c *comment.Comment) error {
	return r.db.Save(c).Error
}

func (r *DBCommentRepo) Delete(id uint) error {
	res := r.db.Delete(&comment.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBCommentRepo) WithTx(tx *gorm.DB) CommentRepo {
	return &DBCommentRepo{db: tx}
}
