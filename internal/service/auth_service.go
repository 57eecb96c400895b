package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"parkease/internal/apperrors"
	"parkease/internal/db"
	"parkease/internal/repository"
)

type AuthService struct {
	users  repository.UserRepository
	secret []byte
	expiry time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), expiry: expiry}
}

type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	Phone         string
	VehicleNumber string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*db.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.Validation("name, email and password are required")
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.Validation("email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &db.User{
		Name:          input.Name,
		Email:         input.Email,
		PasswordHash:  string(hash),
		Role:          "user",
		Phone:         input.Phone,
		VehicleNumber: input.VehicleNumber,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *db.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, apperrors.Validation("invalid credentials")
		}
		return "", nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.Validation("invalid credentials")
	}

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"name": user.Name,
		"exp":  time.Now().Add(s.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}
	return signed, user, nil
}

// ValidateToken parses a bearer token and returns the requester's id
// and role.
func (s *AuthService) ValidateToken(tokenString string) (userID int, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", errors.New("token missing subject")
	}
	role, _ = claims["role"].(string)
	return int(sub), role, nil
}
