package httpx

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "sid"

type sessionKey struct{}

// Session assigns a session id cookie on first touch. The id keys the
// cart/user state for this browsing session; there is no ambient current
// session anywhere, handlers read it from the request.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sid)))
	})
}

func SessionID(r *http.Request) string {
	sid, _ := r.Context().Value(sessionKey{}).(string)
	return sid
}
