package models

type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// ParseRole accepts only the roles a user can sign up or log in with.
func ParseRole(s string) (UserRole, bool) {
	switch r := UserRole(s); r {
	case RoleTeacher, RoleStudent:
		return r, true
	}
	return "", false
}

// Title is used in user-visible messages ("Teacher access required").
func (r UserRole) Title() string {
	switch r {
	case RoleTeacher:
		return "Teacher"
	case RoleStudent:
		return "Student"
	}
	return string(r)
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         UserRole
}
