package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"vetclinic/internal/db"
	apperrors "vetclinic/internal/errors"
	"vetclinic/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, name, email, phone, password string) (*db.Owner, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	repo repository.OwnerRepository
}

func NewAuthService(repo repository.OwnerRepository) AuthService {
	return &authService{repo: repo}
}

func (s *authService) Register(ctx context.Context, name, email, phone, password string) (*db.Owner, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" {
		return nil, apperrors.Validation("name and email must not be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, apperrors.Validation("email is not valid")
	}
	if len(password) < 8 {
		return nil, apperrors.Validation("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	owner := &db.Owner{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, owner); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.Validation("email is already registered")
		}
		return nil, err
	}
	return owner, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	owner, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	if owner == nil {
		return "", apperrors.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.Unauthorized("invalid credentials")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"owner_id": owner.ID,
		"email":    owner.Email,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
