package pkg

import (
	"encoding/json"
	"net/http"

	"github.com/2beens/notesbox/pkg/apierr"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
}{
	JSON: "application/json",
}

// Envelope wraps every API response. Exactly one of Data / Error is set.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func WriteResponse(w http.ResponseWriter, contentType, message string, statusCode int) {
	WriteResponseBytes(w, contentType, []byte(message), statusCode)
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}

// WriteData writes a success envelope carrying data.
func WriteData(w http.ResponseWriter, statusCode int, data any) {
	writeEnvelope(w, statusCode, Envelope{Success: true, Data: data})
}

// WriteError maps err onto its status code and writes a failure envelope.
// Internal errors are logged with their cause, clients only get a generic message.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := apierr.From(err)
	if apiErr.Kind == apierr.KindInternal {
		log.Errorf("internal error: %s", apiErr)
	}
	writeEnvelope(w, apiErr.StatusCode(), Envelope{Success: false, Error: apiErr.Message})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, envelope Envelope) {
	respBytes, err := json.Marshal(envelope)
	if err != nil {
		log.Errorf("marshal response envelope: %s", err)
		WriteResponse(
			w, ContentType.JSON,
			`{"success":false,"error":"`+apierr.InternalMessage+`"}`,
			http.StatusInternalServerError,
		)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respBytes, statusCode)
}
