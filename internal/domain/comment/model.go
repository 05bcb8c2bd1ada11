package comment

import (
	"time"

	"github.com/adflow-io/adflow-go/internal/domain/attachment"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
)

// Comment is a threaded remark on a request. Internal comments are
// visible to staff only; the repository strips them for client-role
// viewers so no read path can leak them.
type Comment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID  uint      `gorm:"not null;index" json:"request_id"`
	AuthorID   *uint     `gorm:"index" json:"author_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsInternal bool      `gorm:"default:false;not null" json:"is_internal"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string {
	return "request_comments"
}

// WithRelations joins the author summary and comment-scoped
// attachments. Author is nil when the account was removed; the UI
// renders "deleted user".
type WithRelations struct {
	Comment
	Author      *profile.Summary        `json:"author,omitempty"`
	Attachments []attachment.Attachment `json:"attachments"`
}
