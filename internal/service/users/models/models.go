package models

import (
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      string
	Address   string
}

// UpdateProfileRequest carries the fields a user may change on their own account.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	Address        *string
	TelegramChatID *int64
}

// ApplyTo copies the set fields onto u
func (r *UpdateProfileRequest) ApplyTo(u *domain.User) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Phone != nil {
		u.Phone = *r.Phone
	}
	if r.Address != nil {
		u.Address = *r.Address
	}
	if r.TelegramChatID != nil {
		u.TelegramChatID = r.TelegramChatID
	}
}

// CreateUserRequest is the administrator's account creation; accounts start verified
type CreateUserRequest struct {
	RegisterRequest
}

// AdminUpdateUserRequest extends the profile update with role and activation
type AdminUpdateUserRequest struct {
	UpdateProfileRequest
	Email    *string
	Role     *string
	IsActive *bool
}

type ListUsersRequest struct {
	Role   *string
	Search string
	Page   domain.Page
}

type UserResponse struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	FullName       string    `json:"fullName"`
	Role           string    `json:"role"`
	IsVerified     bool      `json:"isVerified"`
	IsActive       bool      `json:"isActive"`
	TelegramChatID *int64    `json:"telegramChatId,omitempty"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type UserListResponse struct {
	Users []UserResponse
	Page  int
	Limit int
	Total int
}

// AuthResponse is returned by every operation that opens a session
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Phone:          u.Phone,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Role:           string(u.Role),
		IsVerified:     u.IsVerified,
		IsActive:       u.IsActive,
		TelegramChatID: u.TelegramChatID,
		Address:        u.Address,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func FromDomainUserList(users []*domain.User, page domain.Page, total int) *UserListResponse {
	page = page.Normalize()
	resp := &UserListResponse{
		Users: make([]UserResponse, 0, len(users)),
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}
	for _, u := range users {
		resp.Users = append(resp.Users, FromDomainUser(u))
	}
	return resp
}
