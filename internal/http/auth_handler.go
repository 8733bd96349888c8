package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sudha-chandrann/settleupbackend/internal/service"
)

const sessionCookie = "token"

// AuthHandler holds dependencies for credential endpoints.
type AuthHandler struct {
	logger  *zap.Logger
	authSvc *service.AuthService
	tokens  *service.TokenService
}

func NewAuthHandler(logger *zap.Logger, authSvc *service.AuthService, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		authSvc: authSvc,
		tokens:  tokens,
	}
}

// Register handles POST /users/auth/register. No token is returned; the user
// must verify the email first.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please fill in all required fields", nil)
		return
	}

	_, err := h.authSvc.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err, "Error registering user")
		return
	}

	respondSuccess(c, http.StatusCreated, "User account created successfully", nil)
}

// Login handles POST /users/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	user, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err, "Authentication failed")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Authentication failed", nil)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(sessionCookie, token, int(h.tokens.TTL().Seconds()), "/", "", true, true)
	respondSuccess(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// RequestVerificationCode handles POST /users/auth/verification-code.
func (h *AuthHandler) RequestVerificationCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email is required", nil)
		return
	}

	if err := h.authSvc.RequestVerificationCode(c.Request.Context(), req.Email); err != nil {
		h.respondAuthError(c, err, "Failed to send verification code")
		return
	}

	respondSuccess(c, http.StatusOK, "Verification code sent successfully", nil)
}

// VerifyEmail handles POST /users/auth/verify-email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and verification code are required", nil)
		return
	}

	if _, err := h.authSvc.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		h.respondAuthError(c, err, "Email verification failed")
		return
	}

	respondSuccess(c, http.StatusOK, "Email verified successfully", nil)
}

// Me handles GET /users/me. The middleware already resolved the account.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	respondSuccess(c, http.StatusOK, "user is found successfully", gin.H{"user": user})
}

// Logout handles POST /users/auth/logout. The session token is self-contained,
// so logout just clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", true, true)
	respondSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error, fallback string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusBadRequest, "validation failed", vErr.Fields)
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, "User with this email already exists", nil)
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found with this email", nil)
	case errors.Is(err, service.ErrAlreadyVerified):
		respondError(c, http.StatusBadRequest, "Email is already verified", nil)
	case errors.Is(err, service.ErrCodeExpired):
		respondError(c, http.StatusBadRequest, "Verification code has expired", nil)
	case errors.Is(err, service.ErrCodeInvalid):
		respondError(c, http.StatusUnauthorized, "Invalid verification code", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, service.ErrNotVerified):
		respondError(c, http.StatusForbidden, "Please verify your email address before logging in", nil)
	case errors.Is(err, service.ErrRateLimited):
		respondError(c, http.StatusTooManyRequests, "Too many requests", nil)
	case errors.Is(err, service.ErrEmailSendFailure):
		respondError(c, http.StatusServiceUnavailable, "Email delivery unavailable", nil)
	default:
		h.logger.Error("auth request failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, fallback, nil)
	}
}
