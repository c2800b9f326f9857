package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// contextUserKey holds the resolved *domain.User in the gin context.
	contextUserKey   = "authUser"
	authHeaderPrefix = "Bearer "
)

// TokenValidator validates a bearer token string.
type TokenValidator interface {
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims are the JWT claims this service reads.
type TokenClaims struct {
	UserEmail string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware resolves the bearer token into an explicit user. It never
// rejects requests itself: an absent or invalid token just leaves the user
// unset, and the usage gate owns the 401.
type AuthMiddleware struct {
	log       *logger.Logger
	validator TokenValidator
}

// NewAuthMiddleware creates the auth middleware.
func NewAuthMiddleware(log *logger.Logger, validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		log:       log,
		validator: validator,
	}
}

// ResolveUser parses the Authorization header, if any, and stores the
// authenticated user in the request context.
func (m *AuthMiddleware) ResolveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, authHeaderPrefix)
		claims, err := m.validator.Validate(tokenString)
		if err != nil {
			m.log.Warnw("Token validation failed", "path", c.Request.URL.Path, "error", err)
			c.Next()
			return
		}

		if claims.Subject == "" {
			m.log.Warnw("User ID (sub) missing in token", "path", c.Request.URL.Path)
			c.Next()
			return
		}

		c.Set(contextUserKey, &domain.User{
			ID:    claims.Subject,
			Email: claims.UserEmail,
		})
		c.Next()
	}
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(c *gin.Context) *domain.User {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// DefaultTokenValidator validates HMAC-signed tokens.
type DefaultTokenValidator struct {
	Secret []byte
}

// Validate parses and verifies the token string.
func (v *DefaultTokenValidator) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, errors.New("malformed token")
		} else if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, errors.New("invalid token signature")
		} else if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, errors.New("token expired")
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token claims")
}
