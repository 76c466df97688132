package handler

import (
	"log"
	"net/http"
)

// GET / and GET /index
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", indexView{
		Trending: h.service.Trending(),
		Message:  r.URL.Query().Get("message"),
	})
}

// GET /main, the recommendation search page. Signed-in users only.
func (h *Handler) Main(w http.ResponseWriter, r *http.Request) {
	username, ok := h.currentUser(r)
	if !ok {
		redirectWithMessage(w, r, "Please sign in first.")
		return
	}

	view := mainView{Username: username}
	if user, err := h.service.Profile(r.Context(), username); err == nil {
		view.Email = user.Email
	} else {
		log.Printf("[handler] profile %q: %v", username, err)
	}
	h.render(w, "main.html", view)
}
