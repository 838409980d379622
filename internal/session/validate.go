package session

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dquisbert/cartera/internal/apperrors"
)

var validate = validator.New()

func init() {
	// Report on json tag instead of struct field name
	// Look at documentation of 'RegisterTagNameFunc' for more details
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// RegisterInput is what a caller provides to Register. ConfirmPassword is
// optional: surfaces that collect the password once leave it empty.
type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"omitempty,eqfield=Password"`
	FullName        string `json:"full_name"`
}

// normalize trims inputs and applies defaults the way the registration form
// does: email lowercased, full name falls back to the username
func (in *RegisterInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	if in.FullName == "" {
		in.FullName = in.Username
	}
}

// checkRegisterInput runs local validation. Returns a ValidationError so
// invalid input never reaches the server.
func checkRegisterInput(in RegisterInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(errs))
	for _, fieldError := range errs {
		fields[fieldError.Field()] = fieldMessage(fieldError.Field(), fieldError.Tag())
	}
	return &apperrors.ValidationError{Fields: fields}
}

// fieldMessage maps a failed field+tag combination to the user-facing
// wording of the registration form
func fieldMessage(field string, tag string) string {
	switch {
	case field == "username" && tag == "required":
		return "El nombre de usuario es requerido"
	case field == "username" && tag == "min":
		return "El nombre de usuario debe tener al menos 3 caracteres"
	case field == "username" && tag == "max":
		return "El nombre de usuario no puede tener más de 100 caracteres"
	case field == "email" && tag == "required":
		return "El email es requerido"
	case field == "email":
		return "El email no es válido"
	case field == "password" && tag == "required":
		return "La contraseña es requerida"
	case field == "password" && tag == "min":
		return "La contraseña debe tener al menos 8 caracteres"
	case field == "password" && tag == "max":
		return "La contraseña no puede tener más de 100 caracteres"
	case field == "confirm_password":
		return "Las contraseñas no coinciden"
	default:
		return "Valor inválido"
	}
}
