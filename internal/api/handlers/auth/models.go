package auth

import "github.com/agroboost/AgroBoost-RentalService/internal/service/users/models"

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Address   string `json:"address"`
}

func (r *RegisterRequest) ToServiceRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Role:      r.Role,
		Address:   r.Address,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Address        *string `json:"address,omitempty"`
	TelegramChatID *int64  `json:"telegramChatId,omitempty"`
}

func (r *UpdateProfileRequest) ToServiceRequest() *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Phone:          r.Phone,
		Address:        r.Address,
		TelegramChatID: r.TelegramChatID,
	}
}
