package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sharath018/event-management-backend/config"
	"github.com/sharath018/event-management-backend/utils"
)

type Service interface {
	Register(in RegisterRequest) error
	Login(in LoginRequest) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	Logout(ctx context.Context, accessToken string) error
	GetUserByID(userID uint) (User, error)
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================
func (s *service) Register(in RegisterRequest) error {
	role, err := s.repo.FindRoleByName(RoleNameUser)
	if err != nil {
		return errors.New("user role not seeded")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &User{
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}

	return s.repo.Create(user)
}

// =============================
// Login
// =============================
func (s *service) Login(in LoginRequest) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(in.Email))
	if err != nil {
		return nil, nil, errors.New("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, nil, errors.New("invalid credentials")
	}

	access, err := s.signToken(user, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.signToken(user, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// =============================
// Refresh
// =============================
func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return "", errors.New("user_id missing in token")
	}

	user, err := s.repo.FindByID(uint(userIDFloat))
	if err != nil {
		return "", errors.New("user not found")
	}

	return s.signToken(&user, s.accessSecret, s.accessTTL)
}

// =============================
// Logout — blacklist the access token until it would expire anyway
// =============================
func (s *service) Logout(ctx context.Context, accessToken string) error {
	token, _ := jwt.Parse(accessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.accessSecret), nil
	})

	ttl := s.accessTTL
	if token != nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				remaining := time.Until(time.Unix(int64(exp), 0))
				if remaining > 0 {
					ttl = remaining
				}
			}
		}
	}

	return utils.BlacklistToken(ctx, accessToken, ttl)
}

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

func (s *service) signToken(user *User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role.RoleName,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
