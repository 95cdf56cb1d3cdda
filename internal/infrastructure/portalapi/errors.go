package portalapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the portal API.
type APIError struct {
	Status   int
	Detail   string
	Endpoint string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Detail != "" {
		return fmt.Sprintf("portalapi: %s status=%d: %s", e.Endpoint, e.Status, e.Detail)
	}
	return fmt.Sprintf("portalapi: %s status=%d", e.Endpoint, e.Status)
}

func (e *APIError) Unauthorized() bool {
	return e != nil && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

func (e *APIError) NotFound() bool {
	return e != nil && e.Status == http.StatusNotFound
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationItem struct {
	Msg string `json:"msg"`
}

func newAPIError(status int, endpoint string, body []byte) *APIError {
	return &APIError{Status: status, Detail: parseDetail(body), Endpoint: endpoint}
}

// parseDetail extracts a human-readable message from an error payload. The
// API answers either {"detail": "text"} or, for validation failures,
// {"detail": [{"msg": "..."}]}.
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			return strings.TrimSpace(s)
		}
		var items []validationItem
		if err := json.Unmarshal(eb.Detail, &items); err == nil {
			for _, it := range items {
				if m := strings.TrimSpace(it.Msg); m != "" {
					return m
				}
			}
		}
	}
	return strings.TrimSpace(eb.Message)
}

// Detail returns the API's error detail carried by err, if any.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// MessageOr returns the API detail of err, or fallback when there is none.
func MessageOr(err error, fallback string) string {
	if d := Detail(err); d != "" {
		return d
	}
	return fallback
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
