package middleware

import (
	"context"
	"strings"

	"churchhub/internal/access"
	"churchhub/internal/apperror"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

var (
	errMissingToken = apperror.Unauthorized("Authentication required")
	errBadHeader    = apperror.Unauthorized("Invalid authorization header format")
	errForbidden    = apperror.Forbidden("Insufficient permissions")
)

// TokenVerifier resolves a bearer token to the calling user.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*access.Principal, error)
}

// AuthMiddleware is a Gin middleware for bearer token authentication of API requests.
// On success the resolved principal is stored in the context for handlers to use.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return authenticate(verifier, false)
}

// WebSocketAuthMiddleware also accepts the token as ?token=, because browsers
// cannot set headers on a websocket handshake.
func WebSocketAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return authenticate(verifier, true)
}

func authenticate(verifier TokenVerifier, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c, allowQuery)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		principal, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

func bearerToken(c *gin.Context, allowQuery bool) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if allowQuery {
			if token := c.Query("token"); token != "" {
				return token, nil
			}
		}
		return "", errMissingToken
	}

	// Extract token (format: "Bearer <token>")
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errBadHeader
	}
	return parts[1], nil
}

func SetPrincipal(c *gin.Context, principal *access.Principal) {
	c.Set(principalKey, principal)
}

// CurrentPrincipal returns the caller set by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (*access.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*access.Principal)
	return principal, ok && principal != nil
}

// RequireRole checks the caller's role against an explicit allow-list.
// There is no hierarchy: admin passes only when listed.
func RequireRole(roles ...access.Role) gin.HandlerFunc {
	allowed := make(map[access.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			c.Error(errMissingToken)
			c.Abort()
			return
		}
		if !allowed[principal.Role] {
			c.Error(errForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCapability allows the roles that hold the capability in the access table.
func RequireCapability(capability access.Capability) gin.HandlerFunc {
	return RequireRole(access.RolesWith(capability)...)
}

// RequireAdmin is a convenience function for requiring admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(access.RoleAdmin)
}
