// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONError(rr, http.StatusBadRequest, "Validation failed: email: Invalid email format",
		map[string]string{"email": "Invalid email format"})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Fields["email"] != "Invalid email format" {
		t.Errorf("fields = %v", body.Fields)
	}
}

func TestWriteJSONError_NoFields(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONError(rr, http.StatusUnauthorized, "Unauthorized", nil)

	if got := strings.TrimSpace(rr.Body.String()); got != `{"error":"Unauthorized"}` {
		t.Errorf("body = %s", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Email string `json:"email"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co"}`))
	if err := DecodeJSON(httptest.NewRecorder(), r, &dst); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if dst.Email != "a@b.co" {
		t.Errorf("email = %q", dst.Email)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := DecodeJSON(httptest.NewRecorder(), r, &dst); err != nil {
		t.Errorf("empty body: %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	if err := DecodeJSON(httptest.NewRecorder(), r, &dst); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("malformed body error = %v, want ErrInvalidJSON", err)
	}
}
