package httphandler

import (
	"net/http"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
)

// GET  v1/faqs (200 OK)
// GET  v1/testimonials (200 OK)
// POST v1/contact JSON {"name", "email", "company", "phone", "message"} (202 Accepted, 400 Bad request)

type ContentHandler struct {
	content port.Content
}

func RegisterContent(mux *http.ServeMux, content port.Content) {
	h := ContentHandler{content}
	mux.HandleFunc("GET /v1/faqs", h.GetFAQs)
	mux.HandleFunc("GET /v1/testimonials", h.GetTestimonials)
	mux.HandleFunc("POST /v1/contact", h.PostContact)
}

func (h ContentHandler) GetFAQs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, mapSlice(h.content.FAQs(), func(f domain.FAQ) FAQ {
		return FAQ(f)
	}))
}

func (h ContentHandler) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, mapSlice(h.content.Testimonials(), func(t domain.Testimonial) Testimonial {
		return Testimonial(t)
	}))
}

func (h ContentHandler) PostContact(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.PostContact"

	var req ContactRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	if err := h.content.SubmitContact(r.Context(), domain.ContactForm(req)); err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, MessageResponse{
		"Your message has been sent successfully. We will get back to you shortly.",
	})
}
