package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/logger"
)

const userIDKey = "auth.userID"

// Claims are the bearer token claims. The subject is the user id; the
// profile fields are optional and refresh the stored identity.
type Claims struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"given_name,omitempty"`
	LastName  string `json:"family_name,omitempty"`
	jwt.RegisteredClaims
}

// UserStore is where first-seen users get created.
type UserStore interface {
	EnsureUser(ctx context.Context, user models.UserIdentity) error
}

type Middleware struct {
	secret []byte
	users  UserStore
	log    *logger.Logger
}

func NewMiddleware(secret string, users UserStore, log *logger.Logger) *Middleware {
	return &Middleware{secret: []byte(secret), users: users, log: log.With("Middleware", "AuthMiddleware")}
}

// RequireAuth rejects requests without a valid HS256 bearer token.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		claims, err := m.Parse(token)
		if err != nil {
			m.log.Debug("rejected token", "error", err)
			abort(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}
		user := models.UserIdentity{
			ID:        claims.Subject,
			Email:     claims.Email,
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
		}
		if m.users != nil {
			if err := m.users.EnsureUser(c.Request.Context(), user); err != nil {
				m.log.Error("ensure user failed", "user_id", user.ID, "error", err)
				abort(c, http.StatusInternalServerError, "internal", "could not load user")
				return
			}
		}
		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// OptionalAuth sets the user id when the request carries a valid bearer
// token and lets every other request through anonymously.
func (m *Middleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c.GetHeader("Authorization")); token != "" {
			claims, err := m.Parse(token)
			if err != nil {
				m.log.Debug("ignoring invalid token", "error", err)
			} else {
				c.Set(userIDKey, claims.Subject)
			}
		}
		c.Next()
	}
}

// Parse validates token and returns its claims.
func (m *Middleware) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// UserID returns the authenticated user id set by RequireAuth or
// OptionalAuth, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// IssueToken signs a token for user. Used by the smoke client and tests;
// production tokens come from the identity provider.
func IssueToken(secret string, user models.UserIdentity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"message": msg, "code": code}})
}
