package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/repository"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookie = jwt.CookieName

type CookieSettings struct {
	Secure   bool
	SameSite string
	Path     string
	MaxAge   time.Duration
}

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	cookie  CookieSettings
}

func NewHandler(service *Service, cookie CookieSettings) *Handler {
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &Handler{service: service, cookie: cookie}
}

// RegisterPublicRoutes mounts sign-in endpoints. otpLimiter guards the code
// request endpoint and may be nil.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, otpLimiter gin.HandlerFunc) {
	authGroup := v1.Group("/auth")
	{
		if otpLimiter != nil {
			authGroup.POST("/otp/request", otpLimiter, h.RequestOTP)
		} else {
			authGroup.POST("/otp/request", h.RequestOTP)
		}
		authGroup.POST("/otp/verify", h.VerifyOTP)
		authGroup.POST("/admin/login", h.AdminLogin)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.GetMe)
		authGroup.PUT("/me", h.UpdateProfile)
	}
}

func (h *Handler) RequestOTP(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	challenge, err := h.service.RequestOTP(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidPhone) {
			response.Error(c, http.StatusBadRequest, "INVALID_PHONE", "Phone number must start with 09 and have 11 digits")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "OTP_FAILED", "Failed to send verification code")
		return
	}

	response.Success(c, http.StatusOK, challenge)
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidOTP):
			response.Error(c, http.StatusUnauthorized, "INVALID_OTP", "Verification code is invalid or expired")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to sign in")
		}
		return
	}

	h.setAccessCookie(c, result.AccessToken)
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{
		"user":         toPublic(result.User),
		"access_token": result.AccessToken,
	})
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.AdminLogin(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Phone or password is incorrect")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	h.setAccessCookie(c, result.AccessToken)
	response.Success(c, http.StatusOK, gin.H{
		"user":         toPublic(result.User),
		"access_token": result.AccessToken,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(parseSameSite(h.cookie.SameSite))
	c.SetCookie(AccessTokenCookie, "", -1, h.cookie.Path, "", h.cookie.Secure, true)
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.userError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toPublic(user)})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		h.userError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toPublic(user)})
}

func (h *Handler) userError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
}

func (h *Handler) setAccessCookie(c *gin.Context, token string) {
	c.SetSameSite(parseSameSite(h.cookie.SameSite))
	c.SetCookie(AccessTokenCookie, token, int(h.cookie.MaxAge.Seconds()), h.cookie.Path, "", h.cookie.Secure, true)
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:         u.ID,
		Phone:      u.Phone,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role()),
		DateJoined: u.DateJoined.Format(time.RFC3339),
	}
}
