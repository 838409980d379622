package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dquisbert/cartera/internal/apperrors"
)

func validInput() RegisterInput {
	return RegisterInput{
		Username:        "ana123",
		Email:           "ana@x.com",
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
	}
}

func Test_CheckRegisterInput(t *testing.T) {
	t.Parallel()

	t.Run("valid input passes", func(t *testing.T) {
		in := validInput()
		in.normalize()

		require.NoError(t, checkRegisterInput(in))
	})

	t.Run("username length bounds", func(t *testing.T) {
		tests := []struct {
			name     string
			username string
			wantOK   bool
		}{
			{"two chars too short", "ab", false},
			{"three chars ok", "abc", true},
			{"hundred chars ok", strings.Repeat("a", 100), true},
			{"hundred and one too long", strings.Repeat("a", 101), false},
			{"spaces do not count", "  ab  ", false},
			{"empty required", "", false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := validInput()
				in.Username = tt.username
				in.normalize()

				err := checkRegisterInput(in)
				if tt.wantOK {
					require.NoError(t, err)
					return
				}

				var ve *apperrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.Fields, "username")
			})
		}
	})

	t.Run("password length bounds", func(t *testing.T) {
		tests := []struct {
			name     string
			password string
			wantOK   bool
		}{
			{"seven chars too short", "1234567", false},
			{"eight chars ok", "12345678", true},
			{"hundred chars ok", strings.Repeat("p", 100), true},
			{"hundred and one too long", strings.Repeat("p", 101), false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := validInput()
				in.Password = tt.password
				in.ConfirmPassword = tt.password
				in.normalize()

				err := checkRegisterInput(in)
				if tt.wantOK {
					require.NoError(t, err)
					return
				}

				var ve *apperrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.Fields, "password")
			})
		}
	})

	t.Run("email format", func(t *testing.T) {
		for _, email := range []string{"", "plainaddress", "@no-local.com", "no-domain@"} {
			in := validInput()
			in.Email = email
			in.normalize()

			err := checkRegisterInput(in)

			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve, "email %q should be rejected", email)
			assert.Contains(t, ve.Fields, "email")
		}
	})

	t.Run("password confirmation must match", func(t *testing.T) {
		in := validInput()
		in.ConfirmPassword = "different-password"
		in.normalize()

		err := checkRegisterInput(in)

		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Las contraseñas no coinciden", ve.Fields["confirm_password"])
	})

	t.Run("confirmation is optional", func(t *testing.T) {
		in := validInput()
		in.ConfirmPassword = ""
		in.normalize()

		require.NoError(t, checkRegisterInput(in))
	})
}

func Test_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("email lowercased and trimmed", func(t *testing.T) {
		in := RegisterInput{Username: "ana123", Email: "  Ana@X.Com ", Password: "longenough1"}
		in.normalize()

		assert.Equal(t, "ana@x.com", in.Email)
	})

	t.Run("full name defaults to username", func(t *testing.T) {
		in := RegisterInput{Username: " ana123 ", Email: "ana@x.com", Password: "longenough1"}
		in.normalize()

		assert.Equal(t, "ana123", in.Username)
		assert.Equal(t, "ana123", in.FullName)
	})

	t.Run("explicit full name kept", func(t *testing.T) {
		in := RegisterInput{Username: "ana123", Email: "ana@x.com", Password: "longenough1", FullName: "Ana María"}
		in.normalize()

		assert.Equal(t, "Ana María", in.FullName)
	})
}

func Test_Humanize(t *testing.T) {
	t.Parallel()

	t.Run("known field feedback translated", func(t *testing.T) {
		err := &apperrors.AuthError{
			Status: 422,
			Fields: []apperrors.FieldError{
				{Field: "username", Message: "String should have at least 3 characters"},
				{Field: "email", Message: "value is not a valid email address"},
			},
		}

		msg := humanize(err)

		assert.Equal(t, "El nombre de usuario debe tener al menos 3 caracteres. El email no es válido", msg)
	})

	t.Run("unknown field falls back to field and message", func(t *testing.T) {
		err := &apperrors.AuthError{
			Status: 422,
			Fields: []apperrors.FieldError{{Field: "full_name", Message: "too fancy"}},
		}

		assert.Equal(t, "full_name: too fancy", humanize(err))
	})

	t.Run("duplicate email on 400", func(t *testing.T) {
		err := &apperrors.AuthError{Status: 400, Message: "Email already registered"}

		assert.Equal(t, "Este email ya está registrado", humanize(err))
	})

	t.Run("plain message passes through", func(t *testing.T) {
		err := &apperrors.AuthError{Status: 401, Message: "Incorrect email or password"}

		assert.Equal(t, "Incorrect email or password", humanize(err))
	})
}
