package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
	"github.com/vinealis/vinea-backend/pkg/jwt"
)

func setupAuthService(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	manager := jwt.NewManager("test-secret-key", 15*time.Minute, 24*time.Hour)
	svc := NewAuthService(repository.NewUserRepository(db), manager, nil, 24*time.Hour)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, active bool) *domain.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Email:    email,
		Name:     "Test User",
		Password: string(hashed),
		Active:   active,
		Roles:    []domain.Role{{Name: "editor"}},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, db := setupAuthService(t)
	seedUser(t, db, "editor@vinealis.example", "password123", true)

	resp, err := svc.Login(context.Background(), "editor@vinealis.example", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "editor@vinealis.example", resp.User.Email)
	assert.Contains(t, resp.User.Roles, "editor")
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, db := setupAuthService(t)
	seedUser(t, db, "editor@vinealis.example", "password123", true)

	_, err := svc.Login(context.Background(), "editor@vinealis.example", "nope")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), "nobody@vinealis.example", "password123")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, db := setupAuthService(t)
	seeded := seedUser(t, db, "former@vinealis.example", "password123", false)

	// the inactive flag must survive the insert as-is
	var stored domain.User
	require.NoError(t, db.First(&stored, seeded.ID).Error)
	assert.False(t, stored.Active)

	_, err := svc.Login(context.Background(), "former@vinealis.example", "password123")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRefreshToken_IssuesNewPair(t *testing.T) {
	svc, db := setupAuthService(t)
	seedUser(t, db, "editor@vinealis.example", "password123", true)

	ctx := context.Background()
	login, err := svc.Login(ctx, "editor@vinealis.example", "password123")
	require.NoError(t, err)

	pair, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRefreshToken_RejectsGarbage(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetCurrentUser(t *testing.T) {
	svc, db := setupAuthService(t)
	user := seedUser(t, db, "editor@vinealis.example", "password123", true)

	got, err := svc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetCurrentUser(context.Background(), 9999)
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}
