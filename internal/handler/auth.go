package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/trendora/recommendation-service/internal/domain"
)

// POST /signup
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	username := r.Form.Get("signupUsername")
	email := r.Form.Get("signupEmail")
	password := r.Form.Get("signupPassword")

	if username == "" || email == "" || password == "" {
		http.Error(w, "Please fill in all the required fields.", http.StatusBadRequest)
		return
	}

	if err := h.service.SignUp(r.Context(), username, email, password); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			redirectWithMessage(w, r, "Username or email already exists.")
			return
		}
		log.Printf("[handler] signup %q: %v", username, err)
		http.Error(w, "an unexpected error occurred", http.StatusInternalServerError)
		return
	}
	redirectWithMessage(w, r, "User signed up successfully!")
}

// POST /signin
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	username := r.Form.Get("signinUsername")
	password := r.Form.Get("signinPassword")

	if username == "" || password == "" {
		http.Error(w, "Please fill in all the required fields.", http.StatusBadRequest)
		return
	}

	ok, err := h.service.SignIn(r.Context(), username, password)
	if err != nil {
		log.Printf("[handler] signin %q: %v", username, err)
		http.Error(w, "an unexpected error occurred", http.StatusInternalServerError)
		return
	}
	if !ok {
		redirectWithMessage(w, r, "Invalid username or password!")
		return
	}

	token, err := h.sessions.Create(r.Context(), username)
	if err != nil {
		log.Printf("[handler] create session for %q: %v", username, err)
		http.Error(w, "an unexpected error occurred", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	redirectWithMessage(w, r, "User signed in successfully!")
}

// POST /signout
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			log.Printf("[handler] delete session: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	redirectWithMessage(w, r, "Signed out.")
}
