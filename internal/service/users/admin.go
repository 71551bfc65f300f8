package users

import (
	"context"
	"fmt"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users/models"
)

func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListUsersRequest) (*models.UserListResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	filter := domain.UserFilter{Search: req.Search, Page: req.Page}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: role", ErrInvalidInput)
		}
		filter.Role = &role
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUserList(users, req.Page, total), nil
}

// Get returns any account to an administrator
func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*models.UserResponse, error) {
	if !actor.IsAdmin() && actor.UserID != id {
		return nil, ErrAccessDenied
	}
	u, err := s.userByID(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainUser(u)
	return &resp, nil
}

// Create opens an already verified account of any role
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateUserRequest) (*models.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}
	if !domain.Role(req.Role).Valid() {
		return nil, fmt.Errorf("%w: role", ErrInvalidInput)
	}

	u, err := s.newUser(&req.RegisterRequest, true)
	if err != nil {
		return nil, err
	}
	created, err := s.create(ctx, "Create", u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: admin=%d created user=%d (%s)", actor.UserID, created.ID, created.Role)
	resp := models.FromDomainUser(created)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.AdminUpdateUserRequest) (*models.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	u, err := s.userByID(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(u)
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		u.Email = email
	}

	revoke := false
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: role", ErrInvalidInput)
		}
		revoke = revoke || role != u.Role
		u.Role = role
	}
	if req.IsActive != nil {
		revoke = revoke || (u.IsActive && !*req.IsActive)
		u.IsActive = *req.IsActive
	}

	if err := s.save(ctx, "Update", u); err != nil {
		return nil, err
	}

	// a disabled account or a changed role must log in again
	if revoke {
		if err := s.sessions.ClearUserSessions(ctx, u.ID); err != nil {
			s.logger.Error("Update: failed to revoke sessions for user=%d: %v", u.ID, err)
		}
	}

	s.logger.Info("Update: admin=%d updated user=%d", actor.UserID, u.ID)
	resp := models.FromDomainUser(u)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.IsAdmin() {
		return ErrAccessDenied
	}
	if actor.UserID == id {
		return fmt.Errorf("%w: cannot delete own account", ErrInvalidInput)
	}

	if _, err := s.userByID(ctx, "Delete", id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Delete: repository error for user=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	if err := s.sessions.ClearUserSessions(ctx, id); err != nil {
		s.logger.Error("Delete: failed to revoke sessions for user=%d: %v", id, err)
	}

	s.logger.Info("Delete: admin=%d deleted user=%d", actor.UserID, id)
	return nil
}
