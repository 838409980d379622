package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dquisbert/cartera/internal/apperrors"
)

// detailEnvelope is the backend error shape. "detail" is either a plain
// string or a list of per-field complaints as produced by the identity
// service validation layer.
type detailEnvelope struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type fieldDetail struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// newAuthError converts a 4xx response body into an AuthError, keeping the
// structured per-field feedback when the server sent one
func newAuthError(status int, body []byte) *apperrors.AuthError {
	authErr := &apperrors.AuthError{Status: status}

	var envelope detailEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		authErr.Message = defaultMessage(status)
		return authErr
	}

	// Plain string detail carries the server message verbatim
	var message string
	if json.Unmarshal(envelope.Detail, &message) == nil && message != "" {
		authErr.Message = message
		return authErr
	}

	// Structured detail: one entry per rejected field
	var details []fieldDetail
	if json.Unmarshal(envelope.Detail, &details) == nil && len(details) > 0 {
		for _, d := range details {
			authErr.Fields = append(authErr.Fields, apperrors.FieldError{
				Field:   lastLoc(d.Loc),
				Message: d.Msg,
			})
		}
		authErr.Message = defaultMessage(status)
		return authErr
	}

	if envelope.Message != "" {
		authErr.Message = envelope.Message
		return authErr
	}

	authErr.Message = defaultMessage(status)
	return authErr
}

// lastLoc extracts the field name: the final element of the "loc" path,
// skipping the leading "body" marker
func lastLoc(loc []json.RawMessage) string {
	if len(loc) == 0 {
		return ""
	}

	var field string
	if err := json.Unmarshal(loc[len(loc)-1], &field); err != nil {
		// Numeric path elements happen on list payloads
		var idx int
		if json.Unmarshal(loc[len(loc)-1], &idx) != nil {
			return ""
		}
		field = fmt.Sprintf("%d", idx)
	}
	return field
}

func defaultMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "credenciales inválidas"
	case http.StatusUnprocessableEntity:
		return "datos inválidos, verifica tu información"
	default:
		return fmt.Sprintf("la solicitud fue rechazada (status %d)", status)
	}
}
