package api

import (
	"encoding/json"
	"net/http"

	"gridpulse/domain/analytics"
	"gridpulse/internal"
	apperrors "gridpulse/internal/errors"
)

// envelope is the uniform success payload: result rows plus the metadata
// block echoing the effective parameters.
type envelope struct {
	Data     interface{}        `json:"data"`
	Metadata analytics.Metadata `json:"metadata"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone; nothing left to do but log.
		internal.DefaultLogger.Error("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotImplemented:
		status = http.StatusNotImplemented
	case apperrors.CodeDatabaseError:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: err.Error()}})
}
