package service

import (
	"errors"

	"github.com/cetakindo/printshop-backend/config"
	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/internal/app/repository"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"github.com/cetakindo/printshop-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	Login(input LoginInput) (*util.TokenPair, *model.User, error)
	RefreshTokens(refreshToken string) (*util.TokenPair, error)
	GetProfile(userID uint) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, jwtCfg config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, jwtCfg: jwtCfg}
}

func (s *authService) Register(input RegisterInput) (*model.User, error) {
	if existing, err := s.userRepo.FindByEmail(input.Email); err == nil && existing != nil {
		logger.Warn("Registration with taken email", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         model.RoleCustomer,
	}
	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

func (s *authService) Login(input LoginInput) (*util.TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, input.Password) {
		logger.Warn("Login with wrong password", map[string]interface{}{
			"email": input.Email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate token pair", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return pair, user, nil
}

func (s *authService) RefreshTokens(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtCfg.Secret)
	if err != nil {
		return nil, err
	}
	if claims.Type != "refresh" {
		return nil, util.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry,
	)
}

func (s *authService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
