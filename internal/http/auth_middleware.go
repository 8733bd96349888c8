package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sudha-chandrann/settleupbackend/internal/domain"
	"github.com/sudha-chandrann/settleupbackend/internal/service"
)

const currentUserKey = "current_user"

// AuthMiddleware validates the bearer token and re-resolves the account from
// the store. A token whose account is gone or no longer verified is rejected
// regardless of its embedded claims.
func AuthMiddleware(authSvc *service.AuthService, tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authSvc == nil || tokens == nil {
			respondError(c, http.StatusInternalServerError, "auth not configured", nil)
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(c, http.StatusUnauthorized, "Access token required", nil)
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := tokens.Parse(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		user, err := authSvc.CurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid token or user not found", nil)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser fetches the account resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}
