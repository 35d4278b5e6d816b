package api

import (
	"encoding/json"
	"errors"
	"net/http"

	deterr "aidetect/internal/errors"
)

// ErrorResponse is the JSON body for all error replies.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// WriteError sends an error reply, mapping coded errors to HTTP statuses.
func WriteError(w http.ResponseWriter, err error) {
	var de *deterr.DetectError
	if !errors.As(err, &de) {
		de = deterr.New(deterr.InternalError, err.Error(), nil)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(de.Code))
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   de.Message,
		Code:    string(de.Code),
		Details: de.Details,
	})
}

func statusFor(code deterr.ErrorCode) int {
	switch code {
	case deterr.InvalidRequest:
		return http.StatusBadRequest
	case deterr.OversizedInput:
		return http.StatusRequestEntityTooLarge
	case deterr.StorageFailure, deterr.InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON sends a success reply.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
