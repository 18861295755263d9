package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"quote-storefront/internal/auth"
	"quote-storefront/internal/model"
	"quote-storefront/internal/repository"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// UserService is the identity provider behind sign-in and sign-up.
type UserService interface {
	SignIn(ctx context.Context, email, password string) (*auth.User, error)
	SignUp(ctx context.Context, email, password, displayName string) (*auth.User, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(
	userRepo repository.UserRepository,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) SignIn(ctx context.Context, email, password string) (*auth.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, auth.NewError(auth.CodeMissingFields, "Please enter your email and password")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, auth.NewError(auth.CodeInvalidCredentials, "Invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, auth.NewError(auth.CodeInvalidCredentials, "Invalid email or password")
	}

	return toAuthUser(user), nil
}

func (s *userServiceImpl) SignUp(ctx context.Context, email, password, displayName string) (*auth.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, auth.NewError(auth.CodeMissingFields, "Please enter your email and password")
	}
	// ParseAddress also accepts "Name <addr>"; only a bare address is an email.
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, auth.NewError(auth.CodeInvalidEmail, "Please enter a valid email address")
	}
	if len(password) < minPasswordLength {
		return nil, auth.NewError(auth.CodeWeakPassword, "Password should be at least 6 characters")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, auth.NewError(auth.CodeEmailInUse, "An account with this email already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("store user in db: %w", err)
	}

	return toAuthUser(user), nil
}

func toAuthUser(user *model.User) *auth.User {
	return &auth.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
}
