package domain

import "strings"

// A SpeechResult is one recognition segment reported by the browser.
type SpeechResult struct {
	Transcript string
	Final      bool
}

const (
	AssistantIdle     = "How can I help you find a product or service?"
	AssistantListen   = "Listening..."
	AssistantNotFound = "Sorry, we couldn't find any solutions for your request."
	AssistantPrompt   = "Can't find your product? Post an enquiry and our team will connect with you if we find a match for your requirements in the market."
)

var recognitionStatus = map[string]string{
	"no-speech":     "I didn't hear that. Please try again.",
	"not-allowed":   "Please allow microphone access to use voice search.",
	"not-supported": "Sorry, voice search is not supported on your browser.",
}

// RecognitionStatus maps a speech-recognition error code to the status line.
func RecognitionStatus(code string) string {
	if msg, ok := recognitionStatus[strings.TrimSpace(code)]; ok {
		return msg
	}
	return "Sorry, something went wrong. Please try again."
}

// SplitTranscript concatenates interim and final segments separately.
func SplitTranscript(rs []SpeechResult) (interim, final string) {
	var ib, fb strings.Builder
	for _, r := range rs {
		if r.Final {
			fb.WriteString(r.Transcript)
		} else {
			ib.WriteString(r.Transcript)
		}
	}
	return ib.String(), strings.TrimSpace(fb.String())
}

type AssistantReply struct {
	Status   string
	Query    string
	Searched bool
	Count    int
	NotFound bool
	Prompt   string
}

// Greeting is the proactive assistant's opening line.
func Greeting(u *User) string {
	return "Hi " + u.FirstName() + ", I am banty,"
}
