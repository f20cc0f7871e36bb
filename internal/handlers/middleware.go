package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/auth"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/services"
)

// Context keys set by AuthMiddleware.
const (
	ctxUser   = "user"
	ctxClaims = "claims"
)

// AuthMiddleware resolves the request's credential (impersonation
// cookie, session cookie or bearer header, in that order of
// applicability) and loads the authenticated user into the context.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		refererPath := ""
		if ref, err := url.Parse(c.Request.Referer()); err == nil {
			refererPath = ref.Path
		}

		token := auth.ResolveToken(refererPath, c.Request.URL.Path, c, c.GetHeader("Authorization"))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
			c.Abort()
			return
		}

		user, claims, err := authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(ctxUser, user)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// RequireRoles allows only the listed roles through.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	allowedSet := make(map[models.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "access denied"})
			c.Abort()
			return
		}
		if _, ok := allowedSet[user.Role]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated user, or nil outside
// AuthMiddleware.
func currentUser(c *gin.Context) *models.User {
	val, exists := c.Get(ctxUser)
	if !exists {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

// currentClaims returns the token claims, or nil outside
// AuthMiddleware.
func currentClaims(c *gin.Context) *auth.Claims {
	val, exists := c.Get(ctxClaims)
	if !exists {
		return nil
	}
	claims, _ := val.(*auth.Claims)
	return claims
}
