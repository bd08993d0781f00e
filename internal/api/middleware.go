package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitcoach/workout-api/internal/domain"
)

// Constants for context keys
const (
	ContextIdentityKey  = "identity"
	ContextRequestIDKey = "requestID"
)

// jwtClaims is the payload expected from the external token issuer. This
// subsystem only consumes identities; it never mints tokens.
type jwtClaims struct {
	UserID int64       `json:"uid"`
	Role   domain.Role `json:"role"`
	Email  string      `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware resolves the bearer credential into a domain.Identity and
// refuses the request when it cannot.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}
		if !token.Valid || claims.UserID == 0 || claims.Role == "" || claims.Email == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextIdentityKey, domain.Identity{
			ID:    claims.UserID,
			Role:  claims.Role,
			Email: claims.Email,
		})
		c.Next()
	}
}

// RoleMiddleware restricts a route to the given roles. Must run AFTER
// AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := identityFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Identity not found in context")
			return
		}
		for _, role := range allowedRoles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: role '%s' does not have permission", identity.Role))
	}
}

// RequestLogger tags every request with a correlation id and logs its
// outcome.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("requestId", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

// abortWithError writes the failure envelope and stops the chain.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "error": message})
}

// identityFromContext returns the identity resolved by AuthMiddleware.
func identityFromContext(c *gin.Context) (domain.Identity, error) {
	raw, exists := c.Get(ContextIdentityKey)
	if !exists {
		return domain.Identity{}, errors.New("identity not found in context")
	}
	identity, ok := raw.(domain.Identity)
	if !ok {
		return domain.Identity{}, errors.New("invalid identity type in context")
	}
	return identity, nil
}
