package web

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/crewbook/app/enums"
)

const (
	authCookie = "crewbook-auth"
	authUser   = "crewbook" // basic auth user name for API clients
)

// loginData is passed to the standalone login template
type loginData struct {
	Error   string
	Theme   enums.Theme
	L       labels
	Lang    enums.Lang
	BaseURL string
}

// handleLoginForm displays the login form
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, r, http.StatusOK, "")
}

// handleLogin checks the password against the bcrypt hash and sets the auth cookie
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	password := r.FormValue("password")
	if password == "" {
		s.renderLogin(w, r, http.StatusUnauthorized, "Password is required")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		log.Printf("[WARN] failed login attempt from %s", r.RemoteAddr)
		s.renderLogin(w, r, http.StatusUnauthorized, "Invalid password")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    s.generateAuthToken(),
		Path:     s.cookiePath(),
		MaxAge:   7 * 24 * 60 * 60, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
	})
	http.Redirect(w, r, s.url("/"), http.StatusSeeOther)
}

// handleLogout clears the auth cookie
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     s.cookiePath(),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
	})

	// full page refresh for HTMX instead of swapping the login page into the table
	w.Header().Set("HX-Refresh", "true")
	http.Redirect(w, r, s.url("/login"), http.StatusSeeOther)
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	data := loginData{Error: errMsg, Theme: s.getTheme(r), L: s.labels, Lang: s.lang, BaseURL: s.baseURL}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	s.render(w, status, "login", "login.html", data)
}

// authMiddleware checks the auth cookie and falls back to basic auth for API clients
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" || strings.HasPrefix(r.URL.Path, "/static/") {
			next.ServeHTTP(w, r)
			return
		}

		if cookie, err := r.Cookie(authCookie); err == nil && s.validateAuthToken(cookie.Value) {
			next.ServeHTTP(w, r)
			return
		}

		if username, password, ok := r.BasicAuth(); ok && username == authUser {
			if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err == nil {
				next.ServeHTTP(w, r)
				return
			}
		}

		accept := r.Header.Get("Accept")
		if accept == "" || strings.Contains(accept, "text/html") {
			http.Redirect(w, r, s.url("/login"), http.StatusSeeOther)
			return
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="crewbook"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}

// generateAuthToken derives the cookie value from the password hash, so changing the password
// invalidates all sessions
func (s *Server) generateAuthToken() string {
	h := sha256.Sum256([]byte(s.passwordHash + "crewbook-auth-token"))
	return hex.EncodeToString(h[:])
}

func (s *Server) validateAuthToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.generateAuthToken())) == 1
}
