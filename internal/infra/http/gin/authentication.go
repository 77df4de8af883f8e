package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/services/auth"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainauth "github.com/Grace-nduta/Airbnb-Platform/internal/domain/auth"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

const principalContextKey = "stays.principal"

type principal struct {
	ID        string
	Email     string
	Name      string
	Role      string
	Status    string
	Token     string
	CreatedAt time.Time
}

func (p principal) hasRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return false
	}
	return strings.ToLower(p.Role) == role
}

// actor translates the resolved principal into the identity context the
// application layer expects. Authorization itself happens inside the
// handlers; the HTTP layer only establishes who is calling.
func (p principal) actor() domainaccess.Actor {
	return domainaccess.Actor{
		ID:     p.ID,
		Role:   domainuser.Role(p.Role),
		Status: domainuser.AccountStatus(p.Status),
	}
}

type AuthMiddleware struct {
	Service *auth.Service
	Logger  *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Service == nil {
		c.Next()
		return
	}
	resolved, err := m.Service.ResolveToken(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, domainauth.ErrSessionNotFound) && m.Logger != nil {
			m.Logger.Debug("token validation failed", "error", err)
		}
		c.Next()
		return
	}
	user := resolved.User
	setPrincipal(c, principal{
		ID:        string(user.ID),
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		Status:    string(user.Status),
		Token:     token,
		CreatedAt: user.CreatedAt,
	})
	c.Next()
}

func setPrincipal(c *gin.Context, p principal) {
	c.Set(principalContextKey, p)
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

func requireRole(c *gin.Context, role string) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return principal{}, false
	}
	if role != "" && !p.hasRole(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return principal{}, false
	}
	return p, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
