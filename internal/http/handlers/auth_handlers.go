package handlers

import (
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/Okita-Damian/video-streaming-App/domain"
	"github.com/Okita-Damian/video-streaming-App/internal/config"
)

const refreshCookie = "refreshToken"

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	cfg     *config.Config
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, cfg *config.Config) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, cfg: cfg}
}

// SignupRequest represents signup request
type SignupRequest struct {
	FullName        string `json:"fullname" binding:"required,min=2,max=60"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	Role            string `json:"role,omitempty"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OTPRequest represents OTP verification request
type OTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// EmailRequest carries a bare email for resend and reset-request flows
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents the final password reset step
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	OTP             string `json:"otp" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// strongPassword requires at least one letter and one digit. Go's
// regexp has no lookahead, so the classes are checked in one pass.
func strongPassword(pw string) bool {
	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// Signup handles user registration
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.NewValidationError("body", err.Error()))
		return
	}
	if req.Password != req.ConfirmPassword {
		c.Error(domain.NewValidationError("confirmPassword", "passwords do not match"))
		return
	}
	if !strongPassword(req.Password) {
		c.Error(domain.NewValidationError("password", "must contain at least one letter and one digit"))
		return
	}

	user, err := h.authSvc.Signup(c.Request.Context(), req.FullName, req.Email, req.Password, req.Role)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "signup successful, please verify your email",
		"data":    gin.H{"user": user.Public()},
	})
}

// VerifyOTP handles the shared verification endpoint for both purposes
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.NewValidationError("body", err.Error()))
		return
	}

	purpose, err := h.authSvc.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		c.Error(err)
		return
	}

	message := "email verified successfully"
	if purpose == domain.PurposeResetPassword {
		message = "code verified, you may now reset your password"
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

// ResendOTP handles reissuing a verification code
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.NewValidationError("body", err.Error()))
		return
	}

	if err := h.authSvc.ResendOTP(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "verification code sent"})
}

// Login handles user login and sets the refresh cookie
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.NewValidationError("body", err.Error()))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"accessToken": result.AccessToken,
		"data": gin.H{
			"user": gin.H{
				"id":    result.User.ID,
				"email": result.User.Email,
				"role":  result.User.Role,
			},
		},
	})
}

// Refresh rotates the refresh token carried by the cookie
func (h *AuthHandlers) Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err != nil || token == "" {
		c.Error(domain.ErrRefreshTokenMissing)
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), token)
	if err != nil {
		c.Error(err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"accessToken": result.AccessToken,
	})
}

// Logout is idempotent: the cookie is always cleared and the call never
// fails, whatever state the presented token was in.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, _ := c.Cookie(refreshCookie)
	h.authSvc.Logout(c.Request.Context(), token)

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "logged out"})
}

// RequestPasswordReset starts the reset-password overlay
func (h *AuthHandlers) RequestPasswordReset(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.NewValidationError("body", err.Error()))
		return
	}

	if err := h.authSvc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "password reset code sent"})
}

// ResetPassword completes the reset-password overlay
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.NewValidationError("body", err.Error()))
		return
	}
	if req.Password != req.ConfirmPassword {
		c.Error(domain.NewValidationError("confirmPassword", "passwords do not match"))
		return
	}
	if !strongPassword(req.Password) {
		c.Error(domain.NewValidationError("password", "must contain at least one letter and one digit"))
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.Password); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "password reset successfully"})
}

func (h *AuthHandlers) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, token, int(h.cfg.RefreshTTL.Seconds()), "/", "", h.cfg.Production(), true)
}

func (h *AuthHandlers) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, "", -1, "/", "", h.cfg.Production(), true)
}
