package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const SessionIDKey contextKey = "session_id"

// SessionCookie is the cookie carrying the anonymous viewing session ID.
// Engagement view dedup is scoped to this session, not to the viewer's account.
const SessionCookie = "mf_session"

// Session assigns a viewing session ID to each visitor. The ID lives in a
// cookie for the browser session and is also accepted via X-Session-ID for
// non-browser clients.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get("X-Session-ID")
		if sessionID == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				sessionID = c.Value
			}
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID extracts the viewing session ID from context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}
