package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "fin-approvals/internal/handler/dto/request"
	resdto "fin-approvals/internal/handler/dto/response"
	"fin-approvals/internal/handler/middleware"
	"fin-approvals/internal/pkg/config"
	"fin-approvals/internal/pkg/cookie"
	"fin-approvals/internal/usecase/commands"
	"fin-approvals/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	userQueries  queries.UserQueries
	cfg          config.Config
}

func NewAuthHandler(authCommands commands.AuthCommands, userQueries queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		userQueries:  userQueries,
		cfg:          cfg,
	}
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials),
			errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		case errors.Is(err, commands.ErrAccountLocked):
			c.JSON(http.StatusLocked, gin.H{
				"error": "Account temporarily locked, try again later",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	h.setCookies(c, result.TokenPair)

	userView, err := h.userQueries.GetCurrentUser(c.Request.Context(), result.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.TokenPair.AccessToken,
		User:        userView,
	})
}

// @Summary Refresh tokens
// @Description Rotate the token pair using the refresh token cookie or body
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} resdto.RefreshResponse
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := cookie.GetRefreshToken(c)
	if refreshToken == "" {
		var req reqdto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Refresh token required",
		})
		return
	}

	pair, err := h.authCommands.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired refresh token",
			})
		}
		return
	}

	h.setCookies(c, pair)
	c.JSON(http.StatusOK, resdto.RefreshResponse{AccessToken: pair.AccessToken})
}

// @Summary User logout
// @Description Clear the session cookies
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookies(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.AuthorizedUserView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	userView, err := h.userQueries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, queries.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, userView)
}

func (h *AuthHandler) setCookies(c *gin.Context, pair *commands.TokenPair) {
	accessExpiry := parseDurationOr(h.cfg.JWT.AccessTokenDuration, 15*time.Minute)
	refreshExpiry := parseDurationOr(h.cfg.JWT.RefreshTokenDuration, 720*time.Hour)
	cookie.SetTokenCookies(c, h.cfg.Cookie, pair.AccessToken, pair.RefreshToken, accessExpiry, refreshExpiry)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
