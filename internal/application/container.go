package application

import (
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/internal/storage"
)

type Services struct {
	Profile    *ProfileService
	Client     *ClientService
	Request    *RequestService
	Comment    *CommentService
	Attachment *AttachmentService
	Stats      *StatsService
	Audit      *AuditService
}

func New(repos *repository.Repos, store storage.ObjectStore) *Services {
	return &Services{
		Profile:    NewProfileService(repos),
		Client:     NewClientService(repos),
		Request:    NewRequestService(repos),
		Comment:    NewCommentService(repos, store),
		Attachment: NewAttachmentService(repos, store),
		Stats:      NewStatsService(repos),
		Audit:      NewAuditService(repos),
	}
}
