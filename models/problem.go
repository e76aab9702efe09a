// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"net/http"
	"time"
)

// ProblemDetails is an RFC 7807 problem document. It is used instead of the
// envelope for validation style failures.
//
// A ProblemDetails is built once per error response by [NewProblemDetails]
// and is not modified afterwards.
type ProblemDetails struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Status        int    `json:"status"`
	Detail        string `json:"detail"`
	Instance      string `json:"instance"`
	ServerTime    int64  `json:"server_time"`
	ServerTimeISO string `json:"server_time_iso"`
}

// NewProblemDetails captures the current time and returns a problem document.
func NewProblemDetails(status int, problemType, title, detail, instance string) ProblemDetails {
	now := time.Now().UTC()
	return ProblemDetails{
		Type:          problemType,
		Title:         title,
		Status:        status,
		Detail:        detail,
		Instance:      instance,
		ServerTime:    now.UnixMilli(),
		ServerTimeISO: now.Format(serverTimeLayout),
	}
}

// Write serializes p as application/problem+json using p.Status as the HTTP
// status code.
func (p ProblemDetails) Write(w http.ResponseWriter) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return writeJSONBody(w, "", p.Status, ContentTypeProblemJSON, body)
}
