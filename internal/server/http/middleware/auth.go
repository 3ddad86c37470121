package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const (
	// PrincipalContextKey is a gin context key for authenticated caller.
	PrincipalContextKey = "principal"
	authCookieName      = "storefront_token"
	authCookieMaxAge    = 30 * 24 * 60 * 60
)

// PrincipalResolver turns bearer token into an active caller.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (model.Principal, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortWithError(c, domainErrors.ErrUnauthorized)
			return
		}

		principal, err := resolver.ResolvePrincipal(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// OptionalAuth resolves caller when token is present and ignores invalid tokens.
func OptionalAuth(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if principal, err := resolver.ResolvePrincipal(c.Request.Context(), token); err == nil {
				c.Set(PrincipalContextKey, principal)
			}
		}
		c.Next()
	}
}

// AdminOnly rejects callers without administrative role. It must follow AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			abortWithError(c, domainErrors.ErrUnauthorized)
			return
		}
		if !principal.IsAdmin() {
			abortWithError(c, domainErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// CurrentPrincipal extracts authenticated caller from context.
func CurrentPrincipal(c *gin.Context) (model.Principal, bool) {
	val, ok := c.Get(PrincipalContextKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := val.(model.Principal)
	return principal, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookieName, token, authCookieMaxAge, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
