package domain

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// Identity is the already-resolved caller, read from the auth token.
type Identity struct {
	UserID string
	Role   UserRole
	Locale string
}

// IsAdmin reports whether the identity may access admin-only screens.
func (i Identity) IsAdmin() bool {
	return i.Role == UserRoleAdmin
}
