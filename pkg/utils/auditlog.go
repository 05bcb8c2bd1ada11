package utils

import (
	"encoding/json"
	"log"

	"github.com/adflow-io/adflow-go/internal/domain/audit"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/gin-gonic/gin"
)

// LogAuditWithConsole records an audit entry and logs instead of
// failing the surrounding mutation when the write does not go through.
// Overridable in tests.
var LogAuditWithConsole = func(c *gin.Context, action, resourceType, resourceID string, oldData, newData any, description string, repo repository.AuditRepo) {
	claims, _ := GetClaimsFromContext(c)
	var userID uint
	if claims != nil {
		userID = claims.ProfileID
	}
	if err := LogAudit(c, userID, action, resourceType, resourceID, oldData, newData, description, repo); err != nil {
		log.Printf("[audit] failed to record %s %s/%s: %v", action, resourceType, resourceID, err)
	}
}

func LogAudit(
	c *gin.Context,
	userID uint,
	action string,
	resourceType string,
	resourceID string,
	before any,
	after any,
	description string,
	repo repository.AuditRepo,
) error {
	var oldData, newData []byte
	var err error

	if before != nil {
		oldData, err = json.Marshal(before)
		if err != nil {
			log.Printf("[audit] marshal old data: %v", err)
		}
	}
	if after != nil {
		newData, err = json.Marshal(after)
		if err != nil {
			log.Printf("[audit] marshal new data: %v", err)
		}
	}

	entry := &audit.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldData:      oldData,
		NewData:      newData,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
		Description:  description,
	}

	return repo.CreateAuditLog(entry)
}
