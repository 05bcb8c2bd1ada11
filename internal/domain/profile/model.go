package profile

import "time"

type Role string

const (
	RoleClient   Role = "client"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Profile is one account per authenticated identity. Accounts are
// provisioned by admins and never hard-deleted; deactivation sets
// Status to inactive.
type Profile struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"size:100;not null;unique" json:"email"`
	Name       string    `gorm:"size:50;not null" json:"name"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Role       Role      `gorm:"type:profile_role;default:'client';not null" json:"role"`
	Department *string   `gorm:"size:100" json:"department"`
	Status     Status    `gorm:"type:account_status;default:'active';not null" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// IsStaff reports whether the profile may see internal comments and
// operate on requests it does not own.
func (p *Profile) IsStaff() bool {
	return p.Role == RoleOperator || p.Role == RoleAdmin
}

// Summary is the author/operator projection embedded in request and
// comment payloads.
type Summary struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	Department *string `json:"department,omitempty"`
}

func (p *Profile) Summary() Summary {
	return Summary{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Role:       p.Role,
		Department: p.Department,
	}
}
