package httphandler

import (
	"net/http"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
)

// POST v1/assistant/transcribe JSON {"results": [{"transcript", "final"}]} (200 OK)
// GET  v1/assistant/status?code=no-speech (200 OK)
// GET  v1/assistant/greeting (200 OK)

type AssistantHandler struct {
	assistant port.Assistant
}

func RegisterAssistant(mux *http.ServeMux, assistant port.Assistant) {
	h := AssistantHandler{assistant}
	mux.HandleFunc("POST /v1/assistant/transcribe", h.PostTranscribe)
	mux.HandleFunc("GET /v1/assistant/status", h.GetStatus)
	mux.HandleFunc("GET /v1/assistant/greeting", h.GetGreeting)
}

func (h AssistantHandler) PostTranscribe(w http.ResponseWriter, r *http.Request) {
	const op = "AssistantHandler.PostTranscribe"

	var req TranscribeRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	rs := mapSlice(req.Results, func(s SpeechResult) domain.SpeechResult {
		return domain.SpeechResult(s)
	})
	reply, err := h.assistant.Transcribe(r.Context(), rs)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, AssistantReply(reply))
}

func (h AssistantHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	msg := h.assistant.RecognitionStatus(r.URL.Query().Get("code"))
	writeJSON(w, r, http.StatusOK, MessageResponse{msg})
}

func (h AssistantHandler) GetGreeting(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, MessageResponse{h.assistant.Greeting(r.Context())})
}
