package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"breakthrough/internal/auth"
	apperrors "breakthrough/internal/errors"
	"breakthrough/internal/model"
	"breakthrough/internal/repository"
)

// Validator checks a request struct and reports every rule violation.
type Validator interface {
	Validate(i interface{}) error
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Gender   string `json:"gender" validate:"required,notblank"`
	Timezone string `json:"timezone" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank,min=6,max=100"`
}

// LoginRequest represents a user login request.
// Password length is only enforced at registration.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,notblank"`
}

// AuthService handles registration and authentication.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*model.AccountView, error)
	Login(ctx context.Context, req LoginRequest) (*model.AccountView, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	hasher      auth.Hasher
	validator   Validator
	log         *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(accountRepo repository.AccountRepository, hasher auth.Hasher, validator Validator, log *slog.Logger) AuthService {
	return &authService{
		accountRepo: accountRepo,
		hasher:      hasher,
		validator:   validator,
		log:         log,
	}
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with hashed password and an empty journal.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*model.AccountView, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)

	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	// Check if account already exists; the unique index catches concurrent inserts
	_, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		s.log.ErrorContext(ctx, "check account existence", "error", err)
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Gender:       req.Gender,
		Timezone:     req.Timezone,
		PasswordHash: hashedPassword,
		Messages:     []model.Message{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			s.log.ErrorContext(ctx, "create account", "error", err)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.InfoContext(ctx, "account registered", "account_id", account.ID)
	return account.View(), nil
}

// Login authenticates an account by normalized email and password.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*model.AccountView, error) {
	req.Email = NormalizeEmail(req.Email)

	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			s.log.WarnContext(ctx, "login failed", "reason", "unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		s.log.ErrorContext(ctx, "find account", "error", err)
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !s.hasher.Verify(req.Password, account.PasswordHash) {
		s.log.WarnContext(ctx, "login failed", "reason", "password mismatch", "account_id", account.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	return account.View(), nil
}
