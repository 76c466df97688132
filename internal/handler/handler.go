package handler

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/trendora/recommendation-service/internal/service"
	"github.com/trendora/recommendation-service/internal/session"
)

const sessionCookie = "session_token"

type Handler struct {
	service  *service.Service
	sessions *session.Store
	tmpl     *template.Template
}

func NewHandler(svc *service.Service, sessions *session.Store, tmpl *template.Template) *Handler {
	return &Handler{service: svc, sessions: sessions, tmpl: tmpl}
}

// ParseTemplates loads the page templates with the helpers they expect.
func ParseTemplates(glob string) (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"truncate": truncate,
	}).ParseGlob(glob)
}

// truncate shortens long product names for card layouts.
func truncate(text string, length int) string {
	if len(text) > length {
		return text[:length] + "..."
	}
	return text
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[handler] render %s: %v", name, err)
	}
}

// redirectWithMessage sends the browser back to the landing page carrying a
// flash message in the query string.
func redirectWithMessage(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/index?message="+url.QueryEscape(message), http.StatusSeeOther)
}

// currentUser resolves the session cookie to a username, if any.
func (h *Handler) currentUser(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	username, ok, err := h.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		log.Printf("[handler] session lookup: %v", err)
		return "", false
	}
	return username, ok
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
