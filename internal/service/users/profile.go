package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	userRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/user"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users/models"
)

// GetProfile returns the caller's own account
func (s *Service) GetProfile(ctx context.Context, actor domain.Actor) (*models.UserResponse, error) {
	u, err := s.userByID(ctx, "GetProfile", actor.UserID)
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainUser(u)
	return &resp, nil
}

func (s *Service) UpdateProfile(ctx context.Context, actor domain.Actor, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	u, err := s.userByID(ctx, "UpdateProfile", actor.UserID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(u)
	if err := s.save(ctx, "UpdateProfile", u); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateProfile: user=%d updated", u.ID)
	resp := models.FromDomainUser(u)
	return &resp, nil
}

// ChangePassword requires the current password and revokes every session on success
func (s *Service) ChangePassword(ctx context.Context, actor domain.Actor, currentPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	u, err := s.userByID(ctx, "ChangePassword", actor.UserID)
	if err != nil {
		return err
	}
	if !checkPassword(u.PasswordHash, currentPassword) {
		s.logger.Warn("ChangePassword: wrong current password for user=%d", u.ID)
		return ErrInvalidCredentials
	}

	if err := s.setPassword(ctx, "ChangePassword", u.ID, newPassword); err != nil {
		return err
	}
	s.logger.Info("ChangePassword: user=%d changed password", u.ID)
	return nil
}

func (s *Service) save(ctx context.Context, method string, u *domain.User) error {
	if err := s.userRepo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, userRepo.ErrUserNotFound):
			return ErrUserNotFound
		case errors.Is(err, userRepo.ErrEmailTaken):
			return ErrEmailTaken
		}
		s.logger.Error("%s: repository error for user=%d: %v", method, u.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return nil
}
