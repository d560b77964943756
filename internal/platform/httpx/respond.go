// Package httpx provides HTTP response utilities following RFC7807 problem details.
package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ProblemDetail represents RFC7807 problem details. Type carries a stable
// slug derived from the title ("unbalanced-entry", "validation-failed") so
// clients do not have to match on human-readable text.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem sends an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ProblemDetail{
		Type:   problemType(title),
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

func problemType(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

// DecodeJSON decodes the JSON request body into the target struct. Unknown
// fields are rejected so typos in monetary fields surface as 400s instead of
// silently posting zero amounts.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}
