package jwt

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"relief-dispatch/internal/domain/identity"
)

// Claims defines our canonical JWT claims payload.
type Claims struct {
	Role identity.Role `json:"role"` // actor role for RBAC (citizen/responder/admin)
	jwtlib.RegisteredClaims
}

// ensure Claims implements jwtlib.Claims interface
var _ jwtlib.Claims = (*Claims)(nil)

// NewUserClaims constructs end-user claims.
func NewUserClaims(userID string, role identity.Role, ttl time.Duration) *Claims {
	now := time.Now().UTC()
	return &Claims{
		Role: role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
}
