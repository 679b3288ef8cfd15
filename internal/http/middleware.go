package httpx

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blog/internal/auth"
)

// CookieName carries the plaintext session token.
const CookieName = "session_id"

// withSession resolves the session cookie into a user and stores the
// identity in the request context. Anonymous requests pass through.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			user, err := s.Sessions.UserFromToken(r.Context(), c.Value)
			if err == nil {
				r = r.WithContext(auth.WithUser(r.Context(), user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth is the authorization gate: anonymous requests are redirected
// to the login page with the requested path preserved, so a successful
// login can resume there.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserFrom(r.Context()); !ok {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// safeNext accepts only same-origin relative paths as post-login
// destinations; everything else falls back to the home page.
func safeNext(next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") {
		return false
	}
	if strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return false
	}
	return true
}

type statusRW struct {
	http.ResponseWriter
	status int
}

func (w *statusRW) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// WithAccessLog logs METHOD PATH -> STATUS (duration) for every request.
func WithAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusRW{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Printf("%s %s -> %d (%s)", r.Method, r.URL.Path, sw.status, time.Since(start).Truncate(time.Millisecond))
	})
}
