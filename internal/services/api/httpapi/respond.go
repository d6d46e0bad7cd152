// Package httpapi holds the JSON response conventions shared by every
// handler: one success envelope, one error envelope with a stable
// machine-checkable kind.
package httpapi

import (
	"encoding/json"
	"net/http"
)

const (
	KindUnauthenticated = "UNAUTHENTICATED"
	KindForbidden       = "FORBIDDEN"
	KindNotFound        = "NOT_FOUND"
	KindConflict        = "CONFLICT"
	KindInvalidArgument = "INVALID_ARGUMENT"
	KindInternal        = "INTERNAL"
)

type errorBody struct {
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func WriteError(w http.ResponseWriter, status int, kind, message string) {
	WriteJSON(w, status, errorBody{Error: errorInfo{Kind: kind, Message: message}})
}

// Common rejections, spelled once so wording stays uniform.

func Unauthenticated(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, KindUnauthenticated, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, KindForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, KindNotFound, message)
}

func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, KindConflict, message)
}

func InvalidArgument(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, KindInvalidArgument, message)
}

// Internal deliberately hides the cause; the handler logs it.
func Internal(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, KindInternal, "internal error")
}

// DecodeBody parses a JSON request body into dst, rejecting unknown
// fields so a payload smuggling extra keys fails loudly instead of being
// silently ignored.
func DecodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
