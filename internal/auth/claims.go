package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the only supported JWT claims shape for this service.
// Tokens identify studio staff using the admin API; callers on the voice
// line are never authenticated this way.
type Claims struct {
	jwt.RegisteredClaims

	StaffID string `json:"staff_id"`
	Role    string `json:"role"`
}
