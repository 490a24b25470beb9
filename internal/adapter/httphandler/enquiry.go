package httphandler

import (
	"net/http"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
)

// POST v1/enquiries JSON {"text", "budget", "authority", "need", "timeline"}
// (201 Created, 400 Bad request, 401 Unauthorized)

type EnquiryHandler struct {
	submitter port.EnquirySubmitter
}

func RegisterEnquiries(mux *http.ServeMux, submitter port.EnquirySubmitter) {
	h := EnquiryHandler{submitter}
	mux.HandleFunc("POST /v1/enquiries", h.PostEnquiry)
}

func (h EnquiryHandler) PostEnquiry(w http.ResponseWriter, r *http.Request) {
	const op = "EnquiryHandler.PostEnquiry"

	var req EnquiryDraft
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	e, err := h.submitter.SubmitEnquiry(r.Context(), domain.EnquiryDraft{
		Text: req.Text,
		BANT: domain.BANT(req.BANT),
	})
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	logger(r, op).Info("enquiry accepted", "enquiryID", e.ID)
	writeJSON(w, r, http.StatusCreated, enquiryFromDomain(e))
}
