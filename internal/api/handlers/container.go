package handlers

import (
	"errors"
	"net/http"

	"github.com/adflow-io/adflow-go/internal/application"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/internal/ws"
	"github.com/adflow-io/adflow-go/pkg/response"
	"github.com/gin-gonic/gin"
)

type Container struct {
	Auth       *AuthHandler
	Profile    *ProfileHandler
	Client     *ClientHandler
	Request    *RequestHandler
	Comment    *CommentHandler
	Attachment *AttachmentHandler
	Stats      *StatsHandler
	Audit      *AuditHandler
	WS         *WSHandler
}

func New(services *application.Services, repos *repository.Repos, hub *ws.Hub) *Container {
	return &Container{
		Auth:       NewAuthHandler(services.Profile),
		Profile:    NewProfileHandler(services.Profile, repos),
		Client:     NewClientHandler(services.Client, repos),
		Request:    NewRequestHandler(services.Request, repos, hub),
		Comment:    NewCommentHandler(services.Comment, repos, hub),
		Attachment: NewAttachmentHandler(services.Attachment, repos),
		Stats:      NewStatsHandler(services.Stats),
		Audit:      NewAuditHandler(services.Audit),
		WS:         NewWSHandler(hub),
	}
}

// statusForError maps service sentinel errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, application.ErrProfileNotFound),
		errors.Is(err, application.ErrClientNotFound),
		errors.Is(err, application.ErrRequestNotFound),
		errors.Is(err, application.ErrCommentNotFound),
		errors.Is(err, application.ErrAttachmentNotFound),
		errors.Is(err, application.ErrNoClientForProfile):
		return http.StatusNotFound
	case errors.Is(err, application.ErrPermissionDenied),
		errors.Is(err, application.ErrNotCommentAuthor):
		return http.StatusForbidden
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrAccountInactive):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, application.ErrRequestLocked),
		errors.Is(err, application.ErrInvalidTransition),
		errors.Is(err, application.ErrEmptyContent),
		errors.Is(err, application.ErrOperatorNotStaff),
		errors.Is(err, application.ErrUserNotClient),
		errors.Is(err, application.ErrCommentRequestMismatch),
		errors.Is(err, application.ErrIncorrectPassword),
		errors.Is(err, application.ErrMissingOldPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), response.ErrorResponse{Error: err.Error()})
}
