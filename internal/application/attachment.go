package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/adflow-io/adflow-go/internal/domain/attachment"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/internal/storage"
	"github.com/adflow-io/adflow-go/pkg/types"
	"gorm.io/gorm"
)

var (
	ErrAttachmentNotFound = errors.New("attachment not found")
	// ErrCommentRequestMismatch rejects attaching a file to a comment
	// that belongs to a different request.
	ErrCommentRequestMismatch = errors.New("comment does not belong to this request")
)

// SignedURLTTL bounds presigned download links.
const SignedURLTTL = time.Hour

type UploadInput struct {
	RequestID uint
	CommentID *uint
	FileName  string
	FileSize  int64
	MimeType  string
	Reader    io.Reader
}

type AttachmentService struct {
	Repos *repository.Repos
	Store storage.ObjectStore
}

func NewAttachmentService(repos *repository.Repos, store storage.ObjectStore) *AttachmentService {
	return &AttachmentService{Repos: repos, Store: store}
}

func (s *AttachmentService) requestVisible(actor types.Viewer, requestID uint) error {
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

// objectKey builds the blob path: uploader, request, then a
// nanosecond timestamp with the original extension. Time-based naming
// keeps keys collision-free without coordination.
func objectKey(uploaderID, requestID uint, fileName string, now time.Time) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%d/%d/%d%s", uploaderID, requestID, now.UnixNano(), ext)
}

// Upload stores the blob then inserts the metadata row. When the
// insert fails the blob is removed again so the two phases cannot
// leave an orphan behind.
func (s *AttachmentService) Upload(ctx context.Context, actor types.Viewer, input UploadInput) (attachment.Attachment, error) {
	if err := s.requestVisible(actor, input.RequestID); err != nil {
		return attachment.Attachment{}, err
	}

	if input.CommentID != nil {
		c, err := s.Repos.Comment.GetByID(*input.CommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attachment.Attachment{}, ErrCommentNotFound
			}
			return attachment.Attachment{}, err
		}
		if c.RequestID != input.RequestID {
			return attachment.Attachment{}, ErrCommentRequestMismatch
		}
	}

	key := objectKey(actor.ProfileID, input.RequestID, input.FileName, time.Now())
	if err := s.Store.Upload(ctx, key, input.MimeType, input.Reader, input.FileSize); err != nil {
		return attachment.Attachment{}, fmt.Errorf("upload blob: %w", err)
	}

	var mimeType *string
	if input.MimeType != "" {
		mt := input.MimeType
		mimeType = &mt
	}

	a := attachment.Attachment{
		RequestID:  input.RequestID,
		CommentID:  input.CommentID,
		FileName:   input.FileName,
		FilePath:   key,
		FileSize:   input.FileSize,
		MimeType:   mimeType,
		UploadedBy: actor.ProfileID,
	}
	if err := s.Repos.Attachment.Create(&a); err != nil {
		// Compensating delete keeps the store consistent with the
		// metadata table.
		if rmErr := s.Store.Remove(ctx, key); rmErr != nil {
			log.Printf("[attachment] orphaned blob %s after failed metadata insert: %v", key, rmErr)
		}
		return attachment.Attachment{}, err
	}
	return a, nil
}

func (s *AttachmentService) ListByRequestID(actor types.Viewer, requestID uint) ([]attachment.Attachment, error) {
	if err := s.requestVisible(actor, requestID); err != nil {
		return nil, err
	}
	return s.Repos.Attachment.ListByRequestID(requestID)
}

func (s *AttachmentService) ListByCommentID(actor types.Viewer, commentID uint) ([]attachment.Attachment, error) {
	c, err := s.Repos.Comment.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	// Files on internal comments follow the comment's visibility.
	if c.IsInternal && !actor.Staff() {
		return nil, ErrPermissionDenied
	}
	if err := s.requestVisible(actor, c.RequestID); err != nil {
		return nil, err
	}
	return s.Repos.Attachment.ListByCommentID(commentID)
}

// SignURL issues a one-hour presigned download link, optionally
// forcing a download filename.
func (s *AttachmentService) SignURL(ctx context.Context, filePath string, downloadName *string) (string, error) {
	name := ""
	if downloadName != nil {
		name = *downloadName
	}
	u, err := s.Store.PresignedURL(ctx, filePath, SignedURLTTL, name)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Delete removes the metadata row first, then the blob best-effort.
// A partial failure leaves an orphaned blob rather than a metadata row
// pointing at nothing.
func (s *AttachmentService) Delete(ctx context.Context, actor types.Viewer, id uint) error {
	a, err := s.Repos.Attachment.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttachmentNotFound
		}
		return err
	}
	if a.UploadedBy != actor.ProfileID && !actor.Staff() {
		return ErrPermissionDenied
	}

	if err := s.Repos.Attachment.Delete(id); err != nil {
		return err
	}
	if err := s.Store.Remove(ctx, a.FilePath); err != nil {
		log.Printf("[attachment] orphaned blob %s after deleting metadata %d: %v", a.FilePath, id, err)
	}
	return nil
}
