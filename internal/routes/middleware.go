package routes

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aradhik11/task-management-api/internal/apperrors"
	"github.com/Aradhik11/task-management-api/internal/handlers"
	"github.com/Aradhik11/task-management-api/internal/repositories"
	"github.com/Aradhik11/task-management-api/internal/services"
)

// AuthMiddleware validates the bearer token and attaches the caller's
// identity to the context. A missing token and a token whose user has been
// removed are 401; a malformed or expired token is 403. The identity comes
// from the token claims, the database is only consulted to confirm the
// user still exists.
func AuthMiddleware(jwt *services.JWTService, users *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token"})
			return
		}

		if _, err := users.FindByID(claims.UserID); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User no longer exists"})
				return
			}
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(handlers.CtxUserID, claims.UserID)
		c.Set(handlers.CtxUserEmail, claims.Email)
		c.Set(handlers.CtxUserRole, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireRoles rejects callers whose role is not in the allowed set. No
// route currently mounts it; it is kept for future authorization needs.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(handlers.CtxUserRole)
		for _, allowed := range roles {
			if role != "" && role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Insufficient permissions"})
	}
}

// RequestLogger logs one line per request with a generated request id.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()
		c.Set("request_id", requestID)

		c.Next()

		log.Infow("request",
			"requestID", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"clientIP", c.ClientIP(),
			"latency", time.Since(start).String(),
		)
	}
}

// ErrorHandler is the centralized error translator. Handlers push failures
// with c.Error; this middleware inspects the shape of the last one and
// writes the matching status and message. Stack traces only ever appear
// outside production.
func ErrorHandler(log *zap.SugaredLogger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := translate(err)

		if status >= http.StatusInternalServerError {
			log.Errorw("request failed",
				"error", err,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
			if !production {
				body["error"] = err.Error()
				body["stack"] = string(debug.Stack())
			}
		}

		c.JSON(status, body)
	}
}

func translate(err error) (int, gin.H) {
	var apiErr *apperrors.APIError
	switch {
	case errors.As(err, &apiErr):
		body := gin.H{"message": apiErr.Message}
		if len(apiErr.Errors) > 0 {
			body["errors"] = apiErr.Errors
		}
		return apiErr.Status, body
	case errors.Is(err, repositories.ErrDuplicateEmail):
		return http.StatusConflict, gin.H{"message": "User already exists"}
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, gin.H{"message": "Invalid credentials"}
	case errors.Is(err, repositories.ErrTaskNotFound):
		return http.StatusNotFound, gin.H{"message": "Task not found"}
	case errors.Is(err, repositories.ErrUserNotFound):
		return http.StatusNotFound, gin.H{"message": "User not found"}
	default:
		return http.StatusInternalServerError, gin.H{"message": "Internal Server Error"}
	}
}
