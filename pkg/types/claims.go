package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload carried on every authenticated call.
type Claims struct {
	ProfileID uint   `json:"profile_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Viewer scopes every read that is subject to role-based visibility.
// The repositories filter internal comments with it instead of trusting
// callers to do so after the fetch.
type Viewer struct {
	ProfileID uint
	Role      string
}

// Staff reports whether the viewer may see internal comments.
func (v Viewer) Staff() bool {
	return v.Role == "operator" || v.Role == "admin"
}

// Admin reports whether the viewer holds the admin role.
func (v Viewer) Admin() bool {
	return v.Role == "admin"
}
