package service

import (
	"context"

	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserService admin account management
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns accounts with pagination
func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]domain.User, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.userRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, common.TranslateDBError(err)
	}
	return users, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// ListRoles returns all roles with their permissions, for the admin UI
// role picker
func (s *UserService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.userRepo.ListRoles(ctx)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	return roles, nil
}

// GetUser returns one account
func (s *UserService) GetUser(ctx context.Context, id uint64) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}
	return user.ToResponse(), nil
}

// CreateUser registers a new account with the requested roles
func (s *UserService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.UserResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if existing != nil {
		return nil, common.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	roles, err := s.userRepo.FindRolesByName(ctx, req.Roles)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}

	user := &domain.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hash),
		Active:   true,
		Roles:    roles,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, common.TranslateDBError(err)
	}
	return user.ToResponse(), nil
}

// UpdateUser mutates an account
func (s *UserService) UpdateUser(ctx context.Context, id uint64, req *domain.UpdateUserRequest) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if req.Roles != nil {
		roles, err := s.userRepo.FindRolesByName(ctx, req.Roles)
		if err != nil {
			return nil, common.TranslateDBError(err)
		}
		if err := s.userRepo.ReplaceRoles(ctx, user, roles); err != nil {
			return nil, common.TranslateDBError(err)
		}
		user.Roles = roles
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, common.TranslateDBError(err)
	}
	return user.ToResponse(), nil
}

// DeleteUser removes an account
func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return common.TranslateDBError(err)
	}
	if user == nil {
		return common.ErrUserNotFound
	}
	return common.TranslateDBError(s.userRepo.Delete(ctx, id))
}
