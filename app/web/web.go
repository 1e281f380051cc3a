// Package web implements the web UI and JSON API of crewbook. Pages are rendered on the server,
// HTMX swaps the workers table, the form and the count badge in place; the same endpoints work
// as plain HTML form posts without JavaScript.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/crewbook/app/enums"
	"github.com/umputun/crewbook/app/worker"
)

//go:embed templates/*.html templates/partials/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Roster is the worker collection the server works on
type Roster interface {
	Add(w worker.Worker) error
	Delete(id string) (bool, error)
	Clear() error
	List() []worker.Worker
	Len() int
}

// Server represents the web server
type Server struct {
	roster         Roster
	templates      map[string]*template.Template
	baseURL        string // base URL path for reverse proxy (e.g., /crewbook), empty for root
	hostname       string // hostname to display in UI
	version        string
	passwordHash   string                      // bcrypt hash for auth, empty to disable
	labels         labels                      // UI texts in the configured language
	lang           enums.Lang                  // UI language
	csrfProtection *http.CrossOriginProtection // csrf protection for POST endpoints
	loginLimiter   *limiter.Limiter            // rate limit for login attempts
}

// Config holds server configuration
type Config struct {
	Roster       Roster
	BaseURL      string // base URL path for reverse proxy (e.g., /crewbook), empty for root
	Hostname     string // hostname to display in UI
	Version      string
	PasswordHash string // bcrypt hash for auth (empty to disable)
	Lang         enums.Lang
}

// TemplateData holds data for templates
type TemplateData struct {
	Table       tableView
	L           labels
	Kind        string            // selected kind in the form, empty if none
	Form        map[string]string // form values to show again, empty after a successful submit
	Notice      string            // blocking warning for the user
	BaseURL     string
	Hostname    string
	Version     string
	Lang        enums.Lang
	Theme       enums.Theme
	CurrentYear int
	IsOOB       bool // for OOB template rendering
	AuthEnabled bool
}

// New creates a new web server
func New(cfg Config) (*Server, error) {
	if cfg.Roster == nil {
		return nil, fmt.Errorf("web server initialization failed: roster is required")
	}

	lmt := tollbooth.NewLimiter(5, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
	lmt.SetMessage("Too many login attempts")

	s := &Server{
		roster:         cfg.Roster,
		baseURL:        cfg.BaseURL,
		hostname:       cfg.Hostname,
		version:        cfg.Version,
		passwordHash:   cfg.PasswordHash,
		labels:         labelsFor(cfg.Lang),
		lang:           cfg.Lang,
		csrfProtection: http.NewCrossOriginProtection(),
		loginLimiter:   lmt,
	}

	templates, err := s.parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("web server initialization failed: failed to parse HTML templates: %w", err)
	}
	s.templates = templates
	return s, nil
}

// Run starts the web server, it returns after ctx is canceled and the server is shut down
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// handler returns the http.Handler with base URL wrapping applied
func (s *Server) handler() http.Handler {
	routes := s.routes()
	if s.baseURL == "" {
		return routes
	}

	mux := http.NewServeMux()
	// handle base URL without trailing slash - redirect to with trailing slash
	mux.HandleFunc(s.baseURL, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.baseURL+"/", http.StatusMovedPermanently)
	})
	mux.Handle(s.baseURL+"/", http.StripPrefix(s.baseURL, routes))
	return mux
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	// global middleware - applied to all routes
	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(1000),
		rest.AppInfo("crewbook", "umputun", s.version),
		rest.Ping,
		rest.Trace,
		rest.SizeLimit(64*1024), // 64KB max request size
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
	)

	// must be done before any routes are defined
	if s.passwordHash != "" {
		log.Printf("[INFO] authentication enabled for web UI")
		router.Use(s.authMiddleware)
		router.HandleFunc("GET /login", s.handleLoginForm)
		router.With(s.csrfProtection.Handler, tollbooth.HTTPMiddleware(s.loginLimiter)).HandleFunc("POST /login", s.handleLogin)
		router.HandleFunc("GET /logout", s.handleLogout)
	}

	router.HandleFunc("GET /{$}", s.handleDashboard)

	// HTMX endpoints, plain form posts land here too
	router.Mount("/api").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.Use(s.csrfProtection.Handler)

		api.HandleFunc("GET /form-fields", s.handleFormFields)
		api.HandleFunc("POST /workers", s.handleCreateWorker)
		api.HandleFunc("POST /workers/{id}/delete", s.handleDeleteWorker)
		api.HandleFunc("POST /clear", s.handleClear)
		api.HandleFunc("POST /theme", s.handleThemeToggle)
	})

	// JSON API for programmatic access
	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.Use(s.csrfProtection.Handler)

		api.HandleFunc("GET /workers", s.handleAPIList)
		api.HandleFunc("GET /workers/{id}", s.handleAPIGet)
		api.HandleFunc("POST /workers", s.handleAPICreate)
		api.HandleFunc("DELETE /workers/{id}", s.handleAPIDelete)
		api.HandleFunc("DELETE /workers", s.handleAPIClear)
		api.HandleFunc("GET /export", s.handleAPIExport)
		api.HandleFunc("GET /schema", s.handleAPISchema)
	})

	fsys, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Printf("[ERROR] failed to create static file system: %v", err)
		router.Handle("GET /static/", http.FileServer(http.FS(staticFS)))
	} else {
		router.HandleFiles("/static/", http.FS(fsys))
	}

	return router
}

// render renders a template
func (s *Server) render(w http.ResponseWriter, status int, page, tmplName string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		log.Printf("[WARN] template %s not found", page)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, tmplName, data); err != nil {
		log.Printf("[WARN] failed to execute template: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write response: %v", err)
	}
}

// parseTemplates parses all templates. Pages share the base layout and the partials,
// each page defines its own "content".
func (s *Server) parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	funcMap := template.FuncMap{
		"url":       s.url,
		"kindLabel": s.kindLabel,
		"deleteURL": func(id string) string { return s.url("/api/workers/" + id + "/delete") },
	}

	for _, page := range []string{"dashboard", "confirm"} {
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(templatesFS,
			"templates/base.html", "templates/"+page+".html", "templates/partials/*.html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		templates[page] = tmpl
	}

	// partials separately for HTMX requests
	partials, err := template.New("workers.html").Funcs(funcMap).ParseFS(templatesFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse partials: %w", err)
	}
	templates["partials"] = partials

	// login template is standalone, doesn't use base
	login, err := template.New("login.html").Funcs(funcMap).ParseFS(templatesFS, "templates/login.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse login template: %w", err)
	}
	templates["login"] = login

	return templates, nil
}

// newTemplateData creates a TemplateData with common fields populated from request
func (s *Server) newTemplateData(r *http.Request) TemplateData {
	return TemplateData{
		Table:       buildTable(s.roster.List(), s.labels),
		L:           s.labels,
		Form:        map[string]string{},
		BaseURL:     s.baseURL,
		Hostname:    s.hostname,
		Version:     shortVersion(s.version),
		Lang:        s.lang,
		Theme:       s.getTheme(r),
		CurrentYear: time.Now().Year(),
		AuthEnabled: s.passwordHash != "",
	}
}

func (s *Server) getTheme(r *http.Request) enums.Theme {
	cookie, err := r.Cookie("theme")
	if err != nil {
		return enums.ThemeLight // default to light when no cookie
	}
	theme, err := enums.ParseTheme(cookie.Value)
	if err != nil {
		log.Printf("[WARN] invalid theme %q: %v", cookie.Value, err)
		return enums.ThemeLight
	}
	return theme
}

// url prepends the base URL to a path for reverse proxy support
func (s *Server) url(path string) string {
	return s.baseURL + path
}

// kindLabel returns the display name of a kind in the UI language
func (s *Server) kindLabel(kind string) string {
	if v, ok := s.labels.Kinds[kind]; ok {
		return v
	}
	return kind
}

// cookiePath returns the cookie path with base URL support
func (s *Server) cookiePath() string {
	if s.baseURL == "" {
		return "/"
	}
	return s.baseURL + "/"
}

// isHTMX reports whether the request was made by HTMX, not by a plain form post
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// shortVersion extracts a short version string from full version
// for version like "v1.7.0-abc1234-20241225", returns "v1.7.0"
func shortVersion(fullVer string) string {
	if fullVer == "" || fullVer == "unknown" {
		return fullVer
	}
	if idx := strings.Index(fullVer, "-"); idx > 0 {
		return fullVer[:idx]
	}
	return fullVer
}
