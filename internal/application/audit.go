package application

import (
	"github.com/adflow-io/adflow-go/internal/domain/audit"
	"github.com/adflow-io/adflow-go/internal/repository"
)

type AuditService struct {
	Repos *repository.Repos
}

func NewAuditService(repos *repository.Repos) *AuditService {
	return &AuditService{Repos: repos}
}

func (s *AuditService) GetAuditLogs(params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	return s.Repos.Audit.GetAuditLogs(params)
}

func (s *AuditService) CleanupOldLogs(retentionDays int) error {
	return s.Repos.Audit.DeleteOldAuditLogs(retentionDays)
}
