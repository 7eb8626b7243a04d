// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps JSON request bodies. Site content documents are the
// largest accepted payloads.
const MaxBodyBytes = 1 << 20

// ErrInvalidJSON is returned by DecodeJSON for malformed bodies.
var ErrInvalidJSON = errors.New("invalid JSON body")

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes {"error": message}, plus "fields" when given.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string, fields map[string]string) {
	body := map[string]any{"error": message}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	WriteJSON(w, statusCode, body)
}

// DecodeJSON reads a JSON body into dst. An empty body leaves dst unchanged.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}
