package application

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/adflow-io/adflow-go/internal/domain/comment"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/internal/storage"
	"github.com/adflow-io/adflow-go/pkg/types"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	// ErrNotCommentAuthor guards update/delete: only the original
	// author may touch a comment.
	ErrNotCommentAuthor = errors.New("only the author may modify this comment")
	ErrEmptyContent     = errors.New("comment content cannot be empty")
)

type CommentService struct {
	Repos *repository.Repos
	Store storage.ObjectStore
}

func NewCommentService(repos *repository.Repos, store storage.ObjectStore) *CommentService {
	return &CommentService{Repos: repos, Store: store}
}

// requestVisible checks the actor may read the request at all; client
// actors only see their own requests.
func (s *CommentService) requestVisible(actor types.Viewer, requestID uint) error {
	req, err := s.Repos.Request.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if actor.Staff() {
		return nil
	}
	c, err := s.Repos.Client.GetByUserID(actor.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoClientForProfile
		}
		return err
	}
	if req.ClientID != c.ID {
		return ErrPermissionDenied
	}
	return nil
}

// ListComments returns the request's thread scoped to the viewer:
// internal comments never reach client-role actors.
func (s *CommentService) ListComments(actor types.Viewer, requestID uint) ([]comment.WithRelations, error) {
	if err := s.requestVisible(actor, requestID); err != nil {
		return nil, err
	}
	return s.Repos.Comment.ListByRequestID(requestID, actor)
}

// CreateComment adds a remark. The internal flag is forced off for
// client authors regardless of what the payload claims.
func (s *CommentService) CreateComment(actor types.Viewer, requestID uint, input comment.CreateCommentDTO) (comment.Comment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return comment.Comment{}, ErrEmptyContent
	}
	if err := s.requestVisible(actor, requestID); err != nil {
		return comment.Comment{}, err
	}

	isInternal := input.IsInternal
	if !actor.Staff() {
		isInternal = false
	}

	authorID := actor.ProfileID
	c := comment.Comment{
		RequestID:  requestID,
		AuthorID:   &authorID,
		Content:    input.Content,
		IsInternal: isInternal,
	}
	if err := s.Repos.Comment.Create(&c); err != nil {
		return comment.Comment{}, err
	}
	return c, nil
}

func (s *CommentService) UpdateComment(actor types.Viewer, id uint, input comment.UpdateCommentDTO) (comment.Comment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return comment.Comment{}, ErrEmptyContent
	}

	c, err := s.Repos.Comment.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return comment.Comment{}, ErrCommentNotFound
		}
		return comment.Comment{}, err
	}
	if c.AuthorID == nil || *c.AuthorID != actor.ProfileID {
		return comment.Comment{}, ErrNotCommentAuthor
	}

	c.Content = input.Content
	c.IsInternal = input.IsInternal
	if !actor.Staff() {
		c.IsInternal = false
	}
	if err := s.Repos.Comment.Save(&c); err != nil {
		return comment.Comment{}, err
	}
	return c, nil
}

// DeleteComment removes a comment and cascades to its attachments:
// metadata rows go first inside one transaction, blobs afterwards
// best-effort so a storage hiccup cannot resurrect the comment.
func (s *CommentService) DeleteComment(ctx context.Context, actor types.Viewer, id uint) error {
	c, err := s.Repos.Comment.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if c.AuthorID == nil || *c.AuthorID != actor.ProfileID {
		return ErrNotCommentAuthor
	}

	attachments, err := s.Repos.Attachment.ListByCommentID(id)
	if err != nil {
		return err
	}

	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		for _, a := range attachments {
			if err := tx.Attachment.Delete(a.ID); err != nil {
				return err
			}
		}
		return tx.Comment.Delete(id)
	})
	if err != nil {
		return err
	}

	for _, a := range attachments {
		if err := s.Store.Remove(ctx, a.FilePath); err != nil {
			log.Printf("[comment] orphaned blob %s after deleting comment %d: %v", a.FilePath, id, err)
		}
	}
	return nil
}
