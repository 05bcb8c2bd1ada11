package application

import (
	"context"
	"errors"
	"testing"

	"github.com/adflow-io/adflow-go/internal/domain/attachment"
	"github.com/adflow-io/adflow-go/internal/domain/client"
	"github.com/adflow-io/adflow-go/internal/domain/comment"
	"github.com/adflow-io/adflow-go/internal/domain/request"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/internal/repository/mock"
	storagemock "github.com/adflow-io/adflow-go/internal/storage/mock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --------------------- Setup ---------------------
type commentServiceMocks struct {
	comment    *mock.MockCommentRepo
	request    *mock.MockRequestRepo
	client     *mock.MockClientRepo
	attachment *mock.MockAttachmentRepo
	store      *storagemock.MockObjectStore
}

func setupCommentServiceMocks(t *testing.T) (*CommentService, commentServiceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := commentServiceMocks{
		comment:    mock.NewMockCommentRepo(ctrl),
		request:    mock.NewMockRequestRepo(ctrl),
		client:     mock.NewMockClientRepo(ctrl),
		attachment: mock.NewMockAttachmentRepo(ctrl),
		store:      storagemock.NewMockObjectStore(ctrl),
	}
	repos := &repository.Repos{
		Comment:    m.comment,
		Request:    m.request,
		Client:     m.client,
		Attachment: m.attachment,
	}
	svc := NewCommentService(repos, m.store)
	return svc, m
}

// --------------------- ListComments ---------------------
func TestListComments_ViewerReachesRepo(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)
	actor := operatorViewer(20)

	m.request.EXPECT().GetByID(uint(1)).Return(request.Request{ID: 1, ClientID: 5}, nil)
	m.comment.EXPECT().ListByRequestID(uint(1), actor).Return([]comment.WithRelations{{}}, nil)

	result, err := svc.ListComments(actor, 1)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestListComments_ForeignRequestDenied(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)
	actor := clientViewer(10)

	m.request.EXPECT().GetByID(uint(1)).Return(request.Request{ID: 1, ClientID: 7}, nil)
	m.client.EXPECT().GetByUserID(uint(10)).Return(client.Client{ID: 5}, nil)

	_, err := svc.ListComments(actor, 1)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListComments_RequestNotFound(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)

	m.request.EXPECT().GetByID(uint(9)).Return(request.Request{}, gorm.ErrRecordNotFound)

	_, err := svc.ListComments(operatorViewer(20), 9)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

// --------------------- CreateComment ---------------------
func TestCreateComment_StaffInternal(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)
	actor := operatorViewer(20)

	m.request.EXPECT().GetByID(uint(1)).Return(request.Request{ID: 1, ClientID: 5}, nil)
	m.comment.EXPECT().Create(gomock.Any()).DoAndReturn(func(c *comment.Comment) error {
		assert.True(t, c.IsInternal)
		assert.Equal(t, uint(20), *c.AuthorID)
		c.ID = 1
		return nil
	})

	created, err := svc.CreateComment(actor, 1, comment.CreateCommentDTO{Content: "needs budget sign-off", IsInternal: true})
	assert.NoError(t, err)
	assert.True(t, created.IsInternal)
}

func TestCreateComment_ClientCannotPostInternal(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)
	actor := clientViewer(10)

	m.request.EXPECT().GetByID(uint(1)).Return(request.Request{ID: 1, ClientID: 5}, nil)
	m.client.EXPECT().GetByUserID(uint(10)).Return(client.Client{ID: 5}, nil)
	m.comment.EXPECT().Create(gomock.Any()).DoAndReturn(func(c *comment.Comment) error {
		assert.False(t, c.IsInternal)
		return nil
	})

	created, err := svc.CreateComment(actor, 1, comment.CreateCommentDTO{Content: "any update?", IsInternal: true})
	assert.NoError(t, err)
	assert.False(t, created.IsInternal)
}

func TestCreateComment_EmptyContent(t *testing.T) {
	svc, _ := setupCommentServiceMocks(t)

	_, err := svc.CreateComment(operatorViewer(20), 1, comment.CreateCommentDTO{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

// --------------------- UpdateComment ---------------------
func TestUpdateComment_AuthorOnly(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)

	m.comment.EXPECT().GetByID(uint(1)).Return(comment.Comment{ID: 1, AuthorID: ptrUint(99)}, nil)

	_, err := svc.UpdateComment(operatorViewer(20), 1, comment.UpdateCommentDTO{Content: "edit"})
	assert.ErrorIs(t, err, ErrNotCommentAuthor)
}

func TestUpdateComment_Success(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)
	actor := operatorViewer(20)

	m.comment.EXPECT().GetByID(uint(1)).Return(comment.Comment{ID: 1, AuthorID: ptrUint(20), Content: "old"}, nil)
	m.comment.EXPECT().Save(gomock.Any()).Return(nil)

	updated, err := svc.UpdateComment(actor, 1, comment.UpdateCommentDTO{Content: "new", IsInternal: true})
	assert.NoError(t, err)
	assert.Equal(t, "new", updated.Content)
	assert.True(t, updated.IsInternal)
}

func TestUpdateComment_ClientCannotFlipInternal(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)
	actor := clientViewer(10)

	m.comment.EXPECT().GetByID(uint(1)).Return(comment.Comment{ID: 1, AuthorID: ptrUint(10)}, nil)
	m.comment.EXPECT().Save(gomock.Any()).Return(nil)

	updated, err := svc.UpdateComment(actor, 1, comment.UpdateCommentDTO{Content: "new", IsInternal: true})
	assert.NoError(t, err)
	assert.False(t, updated.IsInternal)
}

func TestUpdateComment_NotFound(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)

	m.comment.EXPECT().GetByID(uint(9)).Return(comment.Comment{}, gorm.ErrRecordNotFound)

	_, err := svc.UpdateComment(operatorViewer(20), 9, comment.UpdateCommentDTO{Content: "edit"})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

// --------------------- DeleteComment ---------------------
func TestDeleteComment_CascadesToAttachments(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)
	actor := operatorViewer(20)

	files := []attachment.Attachment{
		{ID: 1, FilePath: "20/1/111.png"},
		{ID: 2, FilePath: "20/1/222.pdf"},
	}

	m.comment.EXPECT().GetByID(uint(1)).Return(comment.Comment{ID: 1, AuthorID: ptrUint(20)}, nil)
	m.attachment.EXPECT().ListByCommentID(uint(1)).Return(files, nil)
	m.attachment.EXPECT().Delete(uint(1)).Return(nil)
	m.attachment.EXPECT().Delete(uint(2)).Return(nil)
	m.comment.EXPECT().Delete(uint(1)).Return(nil)
	m.store.EXPECT().Remove(gomock.Any(), "20/1/111.png").Return(nil)
	m.store.EXPECT().Remove(gomock.Any(), "20/1/222.pdf").Return(nil)

	err := svc.DeleteComment(context.Background(), actor, 1)
	assert.NoError(t, err)
}

func TestDeleteComment_BlobFailureStillDeletes(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)
	actor := operatorViewer(20)

	files := []attachment.Attachment{{ID: 1, FilePath: "20/1/111.png"}}

	m.comment.EXPECT().GetByID(uint(1)).Return(comment.Comment{ID: 1, AuthorID: ptrUint(20)}, nil)
	m.attachment.EXPECT().ListByCommentID(uint(1)).Return(files, nil)
	m.attachment.EXPECT().Delete(uint(1)).Return(nil)
	m.comment.EXPECT().Delete(uint(1)).Return(nil)
	m.store.EXPECT().Remove(gomock.Any(), "20/1/111.png").Return(errors.New("store down"))

	err := svc.DeleteComment(context.Background(), actor, 1)
	assert.NoError(t, err)
}

func TestDeleteComment_MetadataFailureKeepsBlobs(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)
	actor := operatorViewer(20)

	files := []attachment.Attachment{{ID: 1, FilePath: "20/1/111.png"}}

	m.comment.EXPECT().GetByID(uint(1)).Return(comment.Comment{ID: 1, AuthorID: ptrUint(20)}, nil)
	m.attachment.EXPECT().ListByCommentID(uint(1)).Return(files, nil)
	m.attachment.EXPECT().Delete(uint(1)).Return(errors.New("db error"))
	// No Store.Remove call: blobs survive a failed transaction.

	err := svc.DeleteComment(context.Background(), actor, 1)
	assert.EqualError(t, err, "db error")
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	svc, m := setupCommentServiceMocks(t)

	m.comment.EXPECT().GetByID(uint(1)).Return(comment.Comment{ID: 1, AuthorID: ptrUint(99)}, nil)

	err := svc.DeleteComment(context.Background(), operatorViewer(20), 1)
	assert.ErrorIs(t, err, ErrNotCommentAuthor)
}
