package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
	"github.com/vinealis/vinea-backend/pkg/jwt"
	"github.com/vinealis/vinea-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const refreshDenyPrefix = "auth:denied:"

// AuthService authentication business logic
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetCurrentUser(ctx context.Context, userID uint64) (*domain.UserResponse, error)
}

type authService struct {
	userRepo    repository.UserRepository
	jwtManager  *jwt.Manager
	redisClient *redis.Client
	refreshTTL  time.Duration
}

// LoginResponse login response
type LoginResponse struct {
	User         *domain.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// TokenPair token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NewAuthService creates a new AuthService. redisClient may be nil; the
// logout denylist degrades to a no-op without it.
func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager, redisClient *redis.Client, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtManager:  jwtManager,
		redisClient: redisClient,
		refreshTTL:  refreshTTL,
	}
}

// Login authenticates a user and returns tokens
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if user == nil || !user.Active {
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Name, user.RoleNames())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	// Update login time (async, failure ignored)
	go s.userRepo.UpdateLoginTime(context.Background(), user.ID) //nolint:errcheck

	return &LoginResponse{
		User:         user.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if s.isDenied(ctx, refreshToken) {
		return nil, common.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if user == nil || !user.Active {
		return nil, common.ErrUnauthorized
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Name, user.RoleNames())
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	// Rotate: the old refresh token cannot be replayed
	s.deny(ctx, refreshToken)

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefresh}, nil
}

// Logout invalidates the refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.jwtManager.VerifyRefreshToken(refreshToken); err != nil {
		return common.ErrInvalidToken
	}
	s.deny(ctx, refreshToken)
	return nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *authService) GetCurrentUser(ctx context.Context, userID uint64) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}
	return user.ToResponse(), nil
}

func (s *authService) deny(ctx context.Context, token string) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Set(ctx, refreshDenyPrefix+token, "1", s.refreshTTL).Err(); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("refresh token denylist write failed")
	}
}

func (s *authService) isDenied(ctx context.Context, token string) bool {
	if s.redisClient == nil {
		return false
	}
	n, err := s.redisClient.Exists(ctx, refreshDenyPrefix+token).Result()
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("refresh token denylist read failed")
		return false
	}
	return n > 0
}
