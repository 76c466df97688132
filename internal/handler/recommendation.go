package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/trendora/recommendation-service/internal/domain"
)

// GET|POST /recommendations
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	prod := r.Form.Get("prod")
	nbr := r.Form.Get("nbr")

	username, _ := h.currentUser(r)

	page, err := h.service.Recommend(r.Context(), prod, nbr)
	if err != nil {
		// The embedding model being down fails this request, not the
		// process.
		if errors.Is(err, domain.ErrModelUnavailable) {
			h.render(w, "main.html", mainView{
				Message:  "Recommendations are temporarily unavailable, please try again.",
				Username: username,
			})
			return
		}
		log.Printf("[handler] recommend %q: %v", prod, err)
		http.Error(w, "an unexpected error occurred", http.StatusInternalServerError)
		return
	}

	view := mainView{Page: page, Username: username}
	if page.Empty() {
		view.Message = page.Message
		view.Page = nil
	}
	h.render(w, "main.html", view)
}
