package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/pkg/formcheck"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 8 << 20

var errInvalidJSON = errors.New("invalid JSON data")

// ErrorBody is the envelope of every failed API call.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(errInvalidJSON, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	const op = "writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger(r, op).Error("failed to write response body", "err", err)
	}
}

// errorStatus maps domain errors onto the HTTP status and message shown to
// the visitor.
func errorStatus(err error) (int, ErrorBody) {
	switch {
	case errors.Is(err, formcheck.ErrInvalidForm):
		return http.StatusBadRequest, ErrorBody{
			Code:    "invalid_form",
			Message: "Please correct the highlighted fields.",
			Fields:  formcheck.FieldsOf(err),
		}
	case errors.Is(err, errInvalidJSON):
		return http.StatusBadRequest, ErrorBody{Code: "invalid_json", Message: "Invalid JSON data."}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Code: "not_found", Message: "Not found."}
	case errors.Is(err, domain.ErrLoginRequired):
		return http.StatusUnauthorized, ErrorBody{
			Code: "login_required", Message: "Please log in or create an account to proceed.",
		}
	case errors.Is(err, domain.ErrAdminRequired):
		return http.StatusUnauthorized, ErrorBody{Code: "admin_required", Message: "Admin login required."}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorBody{
			Code: "invalid_credentials", Message: "Invalid username or password.",
		}
	case errors.Is(err, domain.ErrEmptyEnquiry):
		return http.StatusBadRequest, ErrorBody{
			Code: "empty_enquiry", Message: "Please describe your requirement.",
			Fields: map[string]string{"text": "Please describe your requirement."},
		}
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, ErrorBody{Code: "invalid_status", Message: "Unknown enquiry status."}
	case errors.Is(err, domain.ErrSignupNotStarted):
		return http.StatusConflict, ErrorBody{
			Code: "signup_not_started", Message: "Please complete the account step first.",
		}
	case errors.Is(err, domain.ErrInvalidImage):
		return http.StatusBadRequest, ErrorBody{
			Code: "invalid_image", Message: "Please upload a valid JPG or PNG file.",
		}
	case errors.Is(err, domain.ErrImageRequired):
		return http.StatusBadRequest, ErrorBody{
			Code: "image_required", Message: "Please select an image file to upload.",
		}
	case errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusBadRequest, ErrorBody{
			Code: "invalid_product", Message: "Name, category, vendor and price are required.",
		}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrorBody{Code: "unavailable", Message: "Request was cancelled."}
	}
	return http.StatusInternalServerError, ErrorBody{Code: "internal", Message: "Something went wrong."}
}

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, body := errorStatus(err)
	log := logger(r, op)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "err", err)
	} else {
		log.Warn("request rejected", "status", status, "err", err)
	}
	writeJSON(w, r, status, body)
}

func logger(r *http.Request, op string) *slog.Logger {
	return slog.With("op", op, "requestID", RequestIDFrom(r.Context()))
}
