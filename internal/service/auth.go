package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/flavorconnect/flavorconnect/internal/metrics"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is deactivated")
)

// RegisterInput is the sign-up form
type RegisterInput struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (in *RegisterInput) Validate() validation.Errors {
	var errs validation.Errors

	in.Username = strings.TrimSpace(in.Username)
	in.Email = validation.NormalizeEmail(in.Email)

	if err := validation.ValidateUsername(in.Username); err != nil {
		errs.Add("username", err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		errs.Add("email", err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		errs.Add("password", err.Error())
	}
	if in.Password != in.ConfirmPassword {
		errs.Add("confirm_password", "passwords do not match")
	}
	return errs
}

type AuthService struct {
	userRepository repository.UserRepository
	emailService   *EmailService
}

func NewAuthService(userRepository repository.UserRepository, emailService *EmailService) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		emailService:   emailService,
	}
}

// Register creates a regular user account. Field problems come back as validation.Errors.
func (s *AuthService) Register(in RegisterInput) (*model.User, error) {
	errs := in.Validate()
	if !errs.Empty() {
		return nil, errs
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Level:        model.UserLevelUser,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			errs.Add("username", "username is already taken")
			return nil, errs
		case errors.Is(err, repository.ErrDuplicateEmail):
			errs.Add("email", "an account with this email already exists")
			return nil, errs
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.UsersRegistered.Inc()

	if s.emailService != nil {
		err = s.emailService.SendWelcomeEmail(user.Email, user.Username)
		if err != nil {
			slog.Error("failed to send welcome email", "error", err, "user_id", user.ID)
		}
	}

	return user, nil
}

// Login accepts a username or an email address
func (s *AuthService) Login(identifier, password string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)

	var user *model.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userRepository.ByEmail(validation.NormalizeEmail(identifier))
	} else {
		user, err = s.userRepository.ByUsername(identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// EnsureSuperAdmin creates the configured super-admin when no account with
// that username exists yet. Existing accounts are left untouched.
func (s *AuthService) EnsureSuperAdmin(username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, nil
	}

	existing, err := s.userRepository.ByUsername(username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("admin password rejected: %w", err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        validation.NormalizeEmail(email),
		PasswordHash: hash,
		Level:        model.UserLevelSuperAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	slog.Info("super admin created", "username", username)
	return user, nil
}
