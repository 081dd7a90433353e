package service

import (
	"testing"
	"time"

	"github.com/cetakindo/printshop-backend/config"
	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/internal/app/repository"
	"github.com/cetakindo/printshop-backend/internal/db"
	"github.com/cetakindo/printshop-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	jwtCfg := config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	}
	return NewAuthService(userRepo, jwtCfg)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email:    "new@example.com",
		Password: "secured-password",
		Name:     "New User",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEqual(t, "secured-password", user.PasswordHash)

	pair, loggedIn, err := authService.Login(LoginInput{
		Email:    "new@example.com",
		Password: "secured-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := util.ValidateToken(pair.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(model.RoleCustomer), claims.Role)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "dup@example.com",
		Password: "secured-password",
		Name:     "First",
	})
	require.NoError(t, err)

	_, err = authService.Register(RegisterInput{
		Email:    "dup@example.com",
		Password: "other-password",
		Name:     "Second",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "who@example.com",
		Password: "secured-password",
		Name:     "Who",
	})
	require.NoError(t, err)

	_, _, err = authService.Login(LoginInput{
		Email:    "who@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Login(LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshTokens(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "refresh@example.com",
		Password: "secured-password",
		Name:     "Refresh",
	})
	require.NoError(t, err)

	pair, _, err := authService.Login(LoginInput{
		Email:    "refresh@example.com",
		Password: "secured-password",
	})
	require.NoError(t, err)

	renewed, err := authService.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)

	// An access token must not pass as a refresh token.
	_, err = authService.RefreshTokens(pair.AccessToken)
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}
