package httpx

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/clientadmin/pkg/idx"
	"github.com/aussiebroadwan/clientadmin/pkg/slogx"
)

// SessionCookie names the cookie holding the admin panel session id.
const SessionCookie = "clientadmin_session"

// SessionConfig controls the session cookie attributes.
type SessionConfig struct {
	MaxAge time.Duration
	Secure bool
}

// SessionMiddleware makes sure every request carries a session id. An existing
// well-formed cookie is reused, anything else gets a fresh ULID and a new
// cookie. The id scopes per-browser state such as the client list cache; it
// is not an authentication mechanism.
func SessionMiddleware(cfg SessionConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID idx.ID
			if c, err := r.Cookie(SessionCookie); err == nil {
				if id, err := idx.Parse(c.Value); err == nil {
					sessionID = id
				}
			}

			if sessionID.IsZero() {
				sessionID = idx.New()
				cookie := &http.Cookie{
					Name:     SessionCookie,
					Value:    sessionID.String(),
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				}
				if cfg.MaxAge > 0 {
					cookie.MaxAge = int(cfg.MaxAge.Seconds())
				}
				http.SetCookie(w, cookie)
			}

			ctx := ContextWithSessionID(r.Context(), sessionID.String())
			ctx = slogx.With(ctx, "session_id", sessionID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
