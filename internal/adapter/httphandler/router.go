// Package httphandler is the JSON API and static host of the site.
//
// Routes are listed next to each Register function. Request bodies must be
// application/json; failures are answered with [ErrorBody].
package httphandler

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/niksmo/bant-confirm/internal/core/port"
)

type Services struct {
	Catalog   port.Catalog
	Content   port.Content
	Enquiries port.EnquirySubmitter
	Session   port.Session
	Assistant port.Assistant
	Admin     port.Admin
}

// GET /health (200 OK)
//
// Unknown /v1/ paths get 404. A known path asked with another method gets
// 405 with the Allow header.

const apiRoot = "/v1/"

var apiMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

func NewRouter(svc Services, static fs.FS) http.Handler {
	mux := http.NewServeMux()

	RegisterCatalog(mux, svc.Catalog)
	RegisterContent(mux, svc.Content)
	RegisterEnquiries(mux, svc.Enquiries)
	RegisterSession(mux, svc.Session, svc.Assistant, svc.Admin)
	RegisterAssistant(mux, svc.Assistant)
	RegisterAdmin(mux, svc.Admin)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, MessageResponse{"ok"})
	})
	mux.HandleFunc(apiRoot, apiFallback(mux))
	mux.Handle("/", SPA(static))

	return RequestID(LogRequests(AllowJSON(mux)))
}

func apiFallback(mux *http.ServeMux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allow []string
		for _, m := range apiMethods {
			alt := r.Clone(r.Context())
			alt.Method = m
			if _, pattern := mux.Handler(alt); pattern != "" && pattern != apiRoot {
				allow = append(allow, m)
			}
		}

		if len(allow) == 0 {
			writeJSON(w, r, http.StatusNotFound, ErrorBody{Code: "not_found", Message: "Not found."})
			return
		}
		w.Header().Set("Allow", strings.Join(allow, ", "))
		writeJSON(w, r, http.StatusMethodNotAllowed,
			ErrorBody{Code: "method_not_allowed", Message: "Method not allowed."})
	}
}
