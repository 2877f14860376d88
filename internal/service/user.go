package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
)

var (
	ErrCannotModifySelf = errors.New("you cannot change your own account here")
	ErrLastSuperAdmin   = errors.New("at least one super admin must remain")
)

type UserService struct {
	userRepository   repository.UserRepository
	recipeRepository repository.RecipeRepository
	imageService     *ImageService
	emailService     *EmailService
}

func NewUserService(
	userRepository repository.UserRepository,
	recipeRepository repository.RecipeRepository,
	imageService *ImageService,
	emailService *EmailService,
) *UserService {
	return &UserService{
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
		imageService:     imageService,
		emailService:     emailService,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

func (s *UserService) All() ([]*model.User, error) {
	return s.userRepository.All()
}

func (s *UserService) Count() (int, error) {
	return s.userRepository.Count()
}

// canManage applies the role hierarchy: admins manage regular users,
// super admins manage everyone except themselves
func canManage(actor Actor, target *model.User) error {
	if actor.UserID == target.ID {
		return ErrCannotModifySelf
	}
	if actor.IsSuperAdmin() {
		return nil
	}
	if actor.IsAdmin() && !target.IsAdmin() {
		return nil
	}
	return ErrForbidden
}

// ToggleActive flips the active flag and returns the updated user
func (s *UserService) ToggleActive(actor Actor, id string) (*model.User, error) {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		return nil, err
	}

	err = canManage(actor, user)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	slog.Info("user active state changed", "user_id", user.ID, "active", user.IsActive, "by", actor.UserID)
	return user, nil
}

// SetLevel promotes or demotes a user. Only super admins may change levels.
func (s *UserService) SetLevel(actor Actor, id string, level model.UserLevel) (*model.User, error) {
	if !actor.IsSuperAdmin() {
		return nil, ErrForbidden
	}
	if !level.Valid() {
		return nil, fmt.Errorf("invalid user level %q", level)
	}

	user, err := s.userRepository.ByID(id)
	if err != nil {
		return nil, err
	}

	err = canManage(actor, user)
	if err != nil {
		return nil, err
	}

	if user.Level == model.UserLevelSuperAdmin && level != model.UserLevelSuperAdmin {
		n, err := s.userRepository.CountByLevel(model.UserLevelSuperAdmin)
		if err != nil {
			return nil, fmt.Errorf("failed to count super admins: %w", err)
		}
		if n <= 1 {
			return nil, ErrLastSuperAdmin
		}
	}

	user.Level = level
	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	slog.Info("user level changed", "user_id", user.ID, "level", level, "by", actor.UserID)
	return user, nil
}

// Delete removes the account with all of its recipes and their images
func (s *UserService) Delete(actor Actor, id string) error {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		return err
	}

	err = canManage(actor, user)
	if err != nil {
		return err
	}

	paths, err := s.recipeRepository.ImagePaths(user.ID)
	if err != nil {
		return fmt.Errorf("failed to list recipe images: %w", err)
	}

	err = s.userRepository.Delete(user.ID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if s.imageService != nil {
		for _, p := range paths {
			s.imageService.Delete(p)
		}
	}

	if s.emailService != nil {
		err = s.emailService.SendAccountDeletedEmail(user.Email, user.Username)
		if err != nil {
			slog.Error("failed to send account deleted email", "error", err, "user_id", user.ID)
		}
	}

	slog.Info("user deleted", "user_id", user.ID, "recipes_with_images", len(paths), "by", actor.UserID)
	return nil
}
