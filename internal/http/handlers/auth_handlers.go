package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/middleware"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/respond"
)

// AuthHandlers exposes the passwordless registration and login flows.
type AuthHandlers struct {
	auth    domain.AuthService
	cookies *CookieWriter
	logger  *slog.Logger
}

// NewAuthHandlers creates the auth handler set.
func NewAuthHandlers(auth domain.AuthService, cookies *CookieWriter, logger *slog.Logger) *AuthHandlers {
	return &AuthHandlers{auth: auth, cookies: cookies, logger: logger}
}

type registerRequest struct {
	Email  string `json:"email" binding:"required"`
	Phone  string `json:"phone"`
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role"`
	Locale string `json:"locale"`
}

type requestOTPRequest struct {
	Email   string `json:"email" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type requestLoginRequest struct {
	Email string `json:"email" binding:"required"`
}

type loginRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func userPayload(user *domain.User) gin.H {
	return gin.H{
		"id":             user.ID,
		"email":          user.Email,
		"phone":          user.Phone,
		"name":           user.Name,
		"role":           user.Role,
		"status":         user.Status,
		"locale":         user.Locale,
		"email_verified": user.EmailVerified.Verified(),
		"phone_verified": user.PhoneVerified.Verified(),
		"created_at":     user.CreatedAt,
	}
}

func authPayload(result *domain.AuthResult) gin.H {
	return gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    result.ExpiresIn,
		"user":          userPayload(result.User),
	}
}

// Register creates a pending account and sends the first verification code.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, h.logger, err)
		return
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleBuyer
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Phone, req.Name, role, req.Locale)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	respond.Data(c, http.StatusCreated, gin.H{
		"message": "account created, verification code sent",
		"user":    userPayload(user),
	})
}

// RequestOTP issues a one-time code for the given purpose.
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, h.logger, err)
		return
	}

	if err := h.auth.RequestOTP(c.Request.Context(), req.Email, domain.OTPPurpose(req.Purpose)); err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	respond.Data(c, http.StatusOK, gin.H{"message": "verification code sent"})
}

// VerifyEmail confirms the email verification code and activates the account.
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, h.logger, err)
		return
	}

	if err := h.auth.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	respond.Data(c, http.StatusOK, gin.H{"message": "email verified"})
}

// RequestLogin sends a login code to a verified account.
func (h *AuthHandlers) RequestLogin(c *gin.Context) {
	var req requestLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, h.logger, err)
		return
	}

	if err := h.auth.RequestLogin(c.Request.Context(), req.Email); err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	respond.Data(c, http.StatusOK, gin.H{"message": "login code sent"})
}

// Login exchanges a login code for a session token pair.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, h.logger, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Code, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	h.cookies.SetTokens(c, result.AccessToken, result.RefreshToken)
	respond.Data(c, http.StatusOK, authPayload(result))
}

// Refresh rotates the token pair. The refresh token comes from the cookie
// when present, otherwise from the request body.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	refreshToken, ok := h.cookies.ReadRefresh(c)
	if !ok {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
			respond.Error(c, h.logger, domain.ErrInvalidToken)
			return
		}
		refreshToken = req.RefreshToken
	}

	result, err := h.auth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.cookies.Clear(c)
		respond.Error(c, h.logger, err)
		return
	}

	h.cookies.SetTokens(c, result.AccessToken, result.RefreshToken)
	respond.Data(c, http.StatusOK, authPayload(result))
}

// Logout invalidates the current session and clears the cookies.
func (h *AuthHandlers) Logout(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		respond.Error(c, h.logger, domain.ErrUnauthenticated)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), sess.SessionID); err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	h.cookies.Clear(c)
	respond.Data(c, http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandlers) Me(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		respond.Error(c, h.logger, domain.ErrUnauthenticated)
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), sess.User.ID)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	respond.Data(c, http.StatusOK, userPayload(user))
}
