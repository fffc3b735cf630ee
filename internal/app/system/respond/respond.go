// Package respond writes the JSON envelopes used by every API handler.
//
// Success bodies are {"success":true, ...payload}; error bodies are
// {"success":false,"message":...}. Payload maps are merged into the
// envelope at the top level so handlers can emit shapes like
// {"success":true,"message":"...","supervisor":{...}}.
package respond

import (
	"encoding/json"
	"net/http"
)

// M is a shorthand for envelope payload fields.
type M map[string]any

// JSON writes a success envelope with the given status code. Extra
// fields are merged beside "success".
func JSON(w http.ResponseWriter, code int, extra M) {
	body := M{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	write(w, code, body)
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, extra M) {
	JSON(w, http.StatusCreated, extra)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, extra M) {
	JSON(w, http.StatusOK, extra)
}

// Error writes a failure envelope with the given status and message.
func Error(w http.ResponseWriter, code int, message string) {
	write(w, code, M{"success": false, "message": message})
}

// NotFound writes a 404 failure envelope.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// BadRequest writes a 400 failure envelope.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Internal writes a 500 failure envelope with a generic message so
// internal details never leak to clients.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "An internal error occurred")
}

func write(w http.ResponseWriter, code int, body M) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
