package session

import (
	"fmt"
	"strings"

	"github.com/dquisbert/cartera/internal/apperrors"
)

// humanize collapses a server rejection into one user-facing message.
// Known field+message combinations get the wording of the original forms,
// anything unrecognized falls back to "field: message".
func humanize(err *apperrors.AuthError) string {
	if len(err.Fields) > 0 {
		parts := make([]string, 0, len(err.Fields))
		for _, fe := range err.Fields {
			parts = append(parts, fieldFeedback(fe))
		}
		return strings.Join(parts, ". ")
	}

	// Duplicate email registrations come back as a 400 with a string detail
	if err.Status == 400 && strings.Contains(strings.ToLower(err.Message), "email") {
		return "Este email ya está registrado"
	}

	return err.Message
}

func fieldFeedback(fe apperrors.FieldError) string {
	switch {
	case fe.Field == "username" && fe.Message == "Field required":
		return "El nombre de usuario es requerido"
	case fe.Field == "username" && strings.Contains(fe.Message, "at least 3"):
		return "El nombre de usuario debe tener al menos 3 caracteres"
	case fe.Field == "password" && strings.Contains(fe.Message, "at least 8"):
		return "La contraseña debe tener al menos 8 caracteres"
	case fe.Field == "email":
		return "El email no es válido"
	default:
		return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
}
