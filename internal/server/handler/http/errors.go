// Package http provides the HTTP handlers and routing for the bloglist API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bloglist/internal/common"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto the API's status codes and writes a JSON
// error body. Client-caused errors keep their precondition message;
// anything unrecognized is reported as a generic internal error.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, common.ErrDuplicate):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "expected `username` to be unique"})
	case errors.Is(err, common.ErrBadCredentials),
		errors.Is(err, common.ErrMissingToken),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrUnknownUser):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	case errors.Is(err, common.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody{Error: "only the owner may delete a blog"})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "blog not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
