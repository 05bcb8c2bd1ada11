package client

import (
	"time"

	"github.com/adflow-io/adflow-go/internal/domain/profile"
)

// Client is an advertising customer's contact record. UserID links the
// record to a client-role login when one exists; unlinked records are
// valid (contacts provisioned before their account).
type Client struct {
	ID                 uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             *uint            `gorm:"uniqueIndex" json:"user_id"`
	DepartmentName     string           `gorm:"size:100;not null" json:"department_name"`
	ContactName        string           `gorm:"size:50;not null" json:"contact_name"`
	Email              string           `gorm:"size:100;not null" json:"email"`
	Phone              *string          `gorm:"size:30" json:"phone"`
	Status             profile.Status   `gorm:"type:account_status;default:'active';not null" json:"status"`
	AssignedOperatorID *uint            `json:"assigned_operator_id"`
	AssignedOperator   *profile.Profile `gorm:"foreignKey:AssignedOperatorID" json:"assigned_operator,omitempty"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// Summary is the client projection embedded in request payloads.
type Summary struct {
	ID             uint    `json:"id"`
	DepartmentName string  `json:"department_name"`
	ContactName    string  `json:"contact_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
}

func (c *Client) Summary() Summary {
	return Summary{
		ID:             c.ID,
		DepartmentName: c.DepartmentName,
		ContactName:    c.ContactName,
		Email:          c.Email,
		Phone:          c.Phone,
	}
}
