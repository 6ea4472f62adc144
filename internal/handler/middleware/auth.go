package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/handler/httperr"
	"fin-approvals/internal/pkg/cookie"
	"fin-approvals/internal/pkg/errs"
	"fin-approvals/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errMissingToken  = errs.New("access token missing")
	errRoleNotInCtx  = errs.New("role absent from request context")
	errRoleForbidden = errs.New("role not allowed for route")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey     = "user_id"
	ctxUserRoleKey   = "user_role"
	ctxDivisionIDKey = "division_id"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		token = cookie.GetAccessToken(c)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		userID, role, divisionID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserRoleKey, role)
		if divisionID != nil {
			c.Set(ctxDivisionIDKey, *divisionID)
		}
		c.Set("jwt_claims", map[string]any{
			"user_id": userID.String(),
			"role":    string(role),
		})
		c.Next()
	}
}

// RequireRole allows only the listed roles past. Use after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			// Reached without RequireAuth upstream.
			httperr.AbortWithError(c, http.StatusInternalServerError, errRoleNotInCtx, "Internal server error", nil)
			return
		}

		if _, ok := allowed[role]; !ok {
			httperr.AbortWithError(c, http.StatusForbidden, errRoleForbidden, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetDivisionID returns the viewer's division, nil for roles without one.
func GetDivisionID(c *gin.Context) *uuid.UUID {
	divisionID, exists := c.Get(ctxDivisionIDKey)
	if !exists {
		return nil
	}

	id, ok := divisionID.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
