package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"clinic-scheduler/pkg/jwt"
	"clinic-scheduler/pkg/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	RoleIDKey    contextKey = "role_id"
	RequestIDKey contextKey = "request_id"
	OriginKey    contextKey = "origin"
	ClientKey    contextKey = "client"
)

// AuthMiddleware validates bearer tokens issued by the identity provider and
// places the acting identity plus request attribution metadata (correlation
// id, origin address, client descriptor) into the request context. Every
// privileged write downstream requires that identity explicitly.
type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Revocation denylist maintained by the identity provider
		revokedKey := fmt.Sprintf("revoked_token:%s", claims.TokenID)
		revoked, err := m.redisClient.Exists(r.Context(), revokedKey).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if revoked > 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, RoleIDKey, claims.RoleID)
		ctx = context.WithValue(ctx, RequestIDKey, requestID)
		ctx = context.WithValue(ctx, OriginKey, r.RemoteAddr)
		ctx = context.WithValue(ctx, ClientKey, r.UserAgent())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the acting user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetRoleIDFromContext extracts the acting user's role ID from context
func GetRoleIDFromContext(ctx context.Context) (int, bool) {
	roleID, ok := ctx.Value(RoleIDKey).(int)
	return roleID, ok
}

// GetRequestIDFromContext extracts the correlation id from context
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	return requestID, ok
}

// GetOriginFromContext extracts the caller's origin address from context
func GetOriginFromContext(ctx context.Context) (string, bool) {
	origin, ok := ctx.Value(OriginKey).(string)
	return origin, ok
}

// GetClientFromContext extracts the client descriptor from context
func GetClientFromContext(ctx context.Context) (string, bool) {
	client, ok := ctx.Value(ClientKey).(string)
	return client, ok
}
