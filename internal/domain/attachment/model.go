package attachment

import "time"

// Attachment is the metadata row for a blob in the object store.
// CommentID nil means the file hangs directly off the request.
type Attachment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID  uint      `gorm:"not null;index" json:"request_id"`
	CommentID  *uint     `gorm:"index" json:"comment_id"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	FilePath   string    `gorm:"size:512;not null" json:"file_path"`
	FileSize   int64     `gorm:"not null" json:"file_size"`
	MimeType   *string   `gorm:"size:100" json:"mime_type"`
	UploadedBy uint      `gorm:"not null" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Attachment) TableName() string {
	return "request_attachments"
}
