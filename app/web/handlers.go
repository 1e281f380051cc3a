package web

import (
	"bytes"
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/crewbook/app/enums"
	"github.com/umputun/crewbook/app/worker"
)

// formFields lists the inputs read from the worker form, base fields first
var formFields = []string{
	worker.FieldFirstName, worker.FieldLastName, worker.FieldAge, worker.FieldHasKids, worker.FieldHireDate,
	worker.FieldRank, worker.FieldSpecialty, worker.FieldNightShift,
	worker.FieldLicenseCategory, worker.FieldExperienceYears, worker.FieldVehicleType,
}

// handleDashboard renders the main page with the form and the table
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data := s.newTemplateData(r)
	data.Kind = selectedKind(r.URL.Query().Get(worker.FieldKind))
	s.render(w, http.StatusOK, "dashboard", "base", data)
}

// handleFormFields returns the kind-specific input groups, only the group of the selected kind is visible.
// Values already typed in the form come with the request and are kept in both groups.
func (s *Server) handleFormFields(w http.ResponseWriter, r *http.Request) {
	data := s.newTemplateData(r)
	q := r.URL.Query()
	data.Kind = selectedKind(q.Get(worker.FieldKind))
	for _, name := range formFields {
		data.Form[name] = q.Get(name)
	}
	s.render(w, http.StatusOK, "partials", "extra-fields", data)
}

// handleCreateWorker handles the worker form submit. Without a selected kind nothing is changed
// and the user gets a notice.
func (s *Server) handleCreateWorker(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	kind, err := enums.ParseKind(r.PostFormValue(worker.FieldKind))
	if err != nil || !worker.IsSpecialized(kind) {
		log.Printf("[DEBUG] worker form submitted without class, %q", r.PostFormValue(worker.FieldKind))
		s.renderNotice(w, r, http.StatusUnprocessableEntity, s.labels.MissingKind)
		return
	}

	fields := worker.Fields{}
	for _, name := range formFields {
		if v, ok := r.PostForm[name]; ok {
			fields[name] = v[0]
		}
	}

	wr := worker.New(kind, fields)
	if err := s.roster.Add(wr); err != nil {
		log.Printf("[WARN] failed to add worker: %v", err)
		s.renderNotice(w, r, http.StatusInternalServerError, s.labels.SaveFailed)
		return
	}
	log.Printf("[INFO] added %s %s", wr.Kind, wr.ID)
	s.respondTable(w, r, true)
}

// handleDeleteWorker removes a worker by id, no confirmation
func (s *Server) handleDeleteWorker(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Worker ID required", http.StatusBadRequest)
		return
	}

	found, err := s.roster.Delete(id)
	if err != nil {
		log.Printf("[WARN] failed to delete worker %s: %v", id, err)
		s.renderNotice(w, r, http.StatusInternalServerError, s.labels.SaveFailed)
		return
	}
	if !found {
		log.Printf("[DEBUG] worker %s not found, nothing to delete", id)
	}
	s.respondTable(w, r, false)
}

// handleClear removes all workers. It acts only with confirm=yes, which HTMX adds after the
// confirmation dialog; a plain post without it gets the confirmation page.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	if r.PostFormValue("confirm") != "yes" {
		if isHTMX(r) {
			w.WriteHeader(http.StatusNoContent) // declined, nothing to swap
			return
		}
		s.render(w, http.StatusOK, "confirm", "base", s.newTemplateData(r))
		return
	}

	if err := s.roster.Clear(); err != nil {
		log.Printf("[WARN] failed to clear workers: %v", err)
		s.renderNotice(w, r, http.StatusInternalServerError, s.labels.SaveFailed)
		return
	}
	s.respondTable(w, r, false)
}

// handleThemeToggle toggles the theme
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	nextTheme := enums.ThemeDark
	if s.getTheme(r) == enums.ThemeDark {
		nextTheme = enums.ThemeLight
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "theme",
		Value:    nextTheme.String(),
		Path:     s.cookiePath(),
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if !isHTMX(r) {
		http.Redirect(w, r, s.url("/"), http.StatusSeeOther)
		return
	}
	// trigger full page refresh for theme change
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
}

// respondTable sends the re-rendered table after a change. HTMX gets the table with the count badge
// and a cleared notice as OOB swaps, plus a fresh form if resetForm is set. Plain posts are
// redirected back to the dashboard.
func (s *Server) respondTable(w http.ResponseWriter, r *http.Request, resetForm bool) {
	if !isHTMX(r) {
		http.Redirect(w, r, s.url("/"), http.StatusSeeOther)
		return
	}

	data := s.newTemplateData(r)
	data.IsOOB = true

	tmpl, ok := s.templates["partials"]
	if !ok {
		log.Printf("[WARN] partials template not found")
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	names := []string{"workers-table", "count-badge", "notice"}
	if resetForm {
		names = append(names, "worker-form")
	}

	var buf bytes.Buffer
	for _, name := range names {
		if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
			log.Printf("[ERROR] failed to render %s: %v", name, err)
			http.Error(w, "Failed to render workers", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[ERROR] failed to write workers HTML: %v", err)
	}
}

// renderNotice shows a blocking warning. HTMX gets it swapped into the notice area with 200,
// as HTMX doesn't swap error responses; a plain post gets the whole page with the form values kept.
func (s *Server) renderNotice(w http.ResponseWriter, r *http.Request, status int, msg string) {
	data := s.newTemplateData(r)
	data.Notice = msg

	if isHTMX(r) {
		w.Header().Set("HX-Retarget", "#notice")
		w.Header().Set("HX-Reswap", "outerHTML")
		s.render(w, http.StatusOK, "partials", "notice", data)
		return
	}

	data.Kind = selectedKind(r.PostFormValue(worker.FieldKind))
	for _, name := range formFields {
		data.Form[name] = r.PostFormValue(name)
	}
	s.render(w, status, "dashboard", "base", data)
}

// selectedKind returns the kind name if it can be chosen in the form, empty string otherwise
func selectedKind(v string) string {
	kind, err := enums.ParseKind(v)
	if err != nil || !worker.IsSpecialized(kind) {
		return ""
	}
	return kind.String()
}

