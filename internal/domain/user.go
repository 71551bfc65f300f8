package domain

import "time"

// Role is the account type of a user
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleProvider   Role = "prestataire"
	RoleProducteur Role = "producteur"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleProvider || r == RoleProducteur
}

type User struct {
	ID             int64
	Email          string
	Phone          string
	FirstName      string
	LastName       string
	Role           Role
	PasswordHash   string
	IsVerified     bool
	IsActive       bool
	TelegramChatID *int64
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins first and last name
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// IsAdmin returns true for administrators
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsProvider returns true for equipment owners
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// UserFilter selects users in admin lists
type UserFilter struct {
	Role   *Role
	Search string
	Page   Page
}
