package users

import "github.com/agroboost/AgroBoost-RentalService/internal/service/users/models"

type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Address   string `json:"address"`
}

func (r *CreateUserRequest) ToServiceRequest() *models.CreateUserRequest {
	return &models.CreateUserRequest{RegisterRequest: models.RegisterRequest{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Role:      r.Role,
		Address:   r.Address,
	}}
}

// UpdateUserRequest leaves nil fields untouched
type UpdateUserRequest struct {
	Email          *string `json:"email,omitempty"`
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Address        *string `json:"address,omitempty"`
	Role           *string `json:"role,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"`
	TelegramChatID *int64  `json:"telegramChatId,omitempty"`
}

func (r *UpdateUserRequest) ToServiceRequest() *models.AdminUpdateUserRequest {
	return &models.AdminUpdateUserRequest{
		UpdateProfileRequest: models.UpdateProfileRequest{
			FirstName:      r.FirstName,
			LastName:       r.LastName,
			Phone:          r.Phone,
			Address:        r.Address,
			TelegramChatID: r.TelegramChatID,
		},
		Email:    r.Email,
		Role:     r.Role,
		IsActive: r.IsActive,
	}
}
