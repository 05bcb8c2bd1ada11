package request

import (
	"time"

	"github.com/adflow-io/adflow-go/internal/domain/client"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

type Type string

const (
	TypeBudgetChange     Type = "budget_change"
	TypeKeywordAddDelete Type = "keyword_add_delete"
	TypeAdMaterialEdit   Type = "ad_material_edit"
	TypeTargetingChange  Type = "targeting_change"
	TypeReportRequest    Type = "report_request"
	TypeAccountSetting   Type = "account_setting"
	TypeOther            Type = "other"
)

type Platform string

const (
	PlatformNaver  Platform = "naver"
	PlatformKakao  Platform = "kakao"
	PlatformGoogle Platform = "google"
	PlatformOther  Platform = "other"
)

type Priority string

const (
	PriorityNormal   Priority = "normal"
	PriorityUrgent   Priority = "urgent"
	PriorityCritical Priority = "critical"
)

// Request is a trackable unit of work a client submits against an ad
// platform. RequestNumber is assigned at insert time and never changes.
// CompletedAt records the first transition into completed and is never
// cleared, even if an admin later moves the request back.
type Request struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestNumber string           `gorm:"size:30;not null;uniqueIndex" json:"request_number"`
	ClientID      uint             `gorm:"not null;index" json:"client_id"`
	OperatorID    *uint            `gorm:"index" json:"operator_id"`
	RequestType   Type             `gorm:"type:request_type;not null" json:"request_type"`
	Platform      Platform         `gorm:"type:ad_platform;not null" json:"platform"`
	Priority      Priority         `gorm:"type:request_priority;default:'normal';not null" json:"priority"`
	Title         string           `gorm:"size:200;not null" json:"title"`
	Description   string           `gorm:"type:text;not null" json:"description"`
	DesiredDate   *time.Time       `json:"desired_date"`
	Status        Status           `gorm:"type:request_status;default:'pending';not null;index" json:"status"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt   *time.Time       `json:"completed_at"`
	Client        *client.Client   `gorm:"foreignKey:ClientID" json:"-"`
	Operator      *profile.Profile `gorm:"foreignKey:OperatorID" json:"-"`
}

func (Request) TableName() string {
	return "requests"
}

// Editable reports whether the owning client may still rewrite the
// request content. Content freezes as soon as an operator picks it up.
func (r *Request) Editable() bool {
	return r.Status == StatusPending
}

// operatorTransitions is the forward/lateral set exposed to operators.
// Admins bypass it and may select any status.
var operatorTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusOnHold, StatusCompleted},
	StatusOnHold:     {StatusInProgress},
	StatusCompleted:  {},
}

// OperatorCanTransition reports whether an operator may move a request
// from one status to another. Setting the current status again is
// always permitted (idempotent refresh).
func OperatorCanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range operatorTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// LatestClientComment is the newest public comment authored by the
// client, surfaced on staff request listings.
type LatestClientComment struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// WithRelations is the listing/detail projection: the request joined
// with client and operator summaries plus denormalized comment info.
type WithRelations struct {
	Request
	ClientSummary       *client.Summary      `json:"client,omitempty"`
	OperatorSummary     *profile.Summary     `json:"operator,omitempty"`
	CommentCount        int64                `json:"comment_count"`
	LatestClientComment *LatestClientComment `json:"latest_client_comment,omitempty"`
}
