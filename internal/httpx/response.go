package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/Harshverma1208/smartech/internal/fault"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorResponse{Error: code, Message: message})
}

// Fault writes the HTTP rendering of an operation fault.
func Fault(w http.ResponseWriter, err error) {
	kind := fault.KindOf(err)
	JSONError(w, statusOf(kind), kind.String(), fault.Message(err))
}

func statusOf(k fault.Kind) int {
	switch k {
	case fault.KindNotFound:
		return http.StatusNotFound
	case fault.KindDuplicateKey:
		return http.StatusConflict
	case fault.KindValidation:
		return http.StatusBadRequest
	case fault.KindUnauthorized:
		return http.StatusUnauthorized
	case fault.KindTransport:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
