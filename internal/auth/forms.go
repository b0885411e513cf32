package auth

import (
	"strings"
	"unicode/utf8"

	"quizapp/internal/forms"
	"quizapp/internal/models"
)

const (
	MinPasswordLen    = 6
	maxPasswordBytes  = 72 // bcrypt ignores anything past this
	maxUsernameLength = 50
)

type SignupForm struct {
	Username        string `form:"username"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	UserType        string `form:"user_type"`
}

// Validate trims the username and returns the requested role.
func (f *SignupForm) Validate() (models.UserRole, error) {
	f.Username = strings.TrimSpace(f.Username)

	if f.Username == "" || f.Password == "" || f.ConfirmPassword == "" || f.UserType == "" {
		return "", forms.Invalid("Please fill in all fields")
	}
	if f.Password != f.ConfirmPassword {
		return "", forms.Invalid("Passwords do not match")
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLen {
		return "", forms.Invalid("Password must be at least 6 characters long")
	}
	if len(f.Password) > maxPasswordBytes {
		return "", forms.Invalid("Password must be at most 72 bytes long")
	}
	if utf8.RuneCountInString(f.Username) > maxUsernameLength {
		return "", forms.Invalid("Username must be at most 50 characters long")
	}

	role, ok := models.ParseRole(f.UserType)
	if !ok {
		return "", forms.Invalid("Please choose teacher or student")
	}
	return role, nil
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	UserType string `form:"user_type"`
}

// Validate only checks presence. An unknown user type is reported later as
// invalid credentials, same as a wrong password.
func (f *LoginForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	if f.Username == "" || f.Password == "" || f.UserType == "" {
		return forms.Invalid("Please fill in all fields")
	}
	return nil
}
