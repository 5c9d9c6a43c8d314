package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/domain/identity"
	"relief-dispatch/internal/general/jwt"
)

const claimsKey = "jwtClaims"

// JWTAuthMiddleware validates the bearer token and stores the claims on the
// gin context for actor attribution.
func JWTAuthMiddleware(mgr *jwt.Manager, log *logrus.Logger, allowedRoles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := jwt.FromAuthorization(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := mgr.ParseAndValidate(raw)
		if err != nil {
			log.WithError(err).Warn("Rejected invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if err := jwt.RoleAllowed(claims, allowedRoles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// actorID returns the authenticated actor's id, or nil on unauthenticated
// routes and malformed subjects.
func actorID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil
	}
	return &id
}
