package middleware

import (
	"net/http"
	"strings"

	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// JWTAuth authenticates the request from a Bearer header or, for browser
// clients, the access token cookie. It sets "user_id" and "role".
func JWTAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, code := bearerOrCookie(c)
		if code != "" {
			msg := "Authorization header is required"
			if code == "INVALID_AUTH_FORMAT" {
				msg = "Authorization header must be Bearer <token>"
			}
			response.Abort(c, http.StatusUnauthorized, code, msg)
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func bearerOrCookie(c *gin.Context) (string, string) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", "INVALID_AUTH_FORMAT"
		}
		return strings.TrimSpace(parts[1]), ""
	}

	if cookie, err := c.Cookie(jwt.CookieName); err == nil && strings.TrimSpace(cookie) != "" {
		return cookie, ""
	}
	return "", "AUTH_HEADER_MISSING"
}
