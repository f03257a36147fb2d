package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/modelfolio/media-api/internal/pkg/jwt"
	"github.com/modelfolio/media-api/internal/pkg/response"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	ProfileIDKey contextKey = "profile_id"
)

// Auth returns middleware that validates JWT and resolves the owning profile
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			if claims.ProfileID == uuid.Nil {
				response.Unauthorized(w, "No profile associated with this account")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, ProfileIDKey, claims.ProfileID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetProfileID extracts the owning profile ID from context
func GetProfileID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(ProfileIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
