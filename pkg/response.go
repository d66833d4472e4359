package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
}{
	JSON: "application/json",
	Text: "text/plain; charset=utf-8",
}

// MessageResponse is the body of every non-data JSON response
type MessageResponse struct {
	Message string `json:"message"`
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

func WriteTextResponseOK(w http.ResponseWriter, message string) {
	WriteResponse(w, ContentType.Text, message, http.StatusOK)
}

// WriteJSON marshals v and writes it with the given status code.
// A marshal failure turns into a generic 500.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response %T: %s", v, err)
		WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respJson, statusCode)
}

func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	respJson, _ := json.Marshal(MessageResponse{Message: message})
	WriteResponseBytes(w, ContentType.JSON, respJson, statusCode)
}
