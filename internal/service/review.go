package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/db"
	"github.com/flavorconnect/flavorconnect/internal/metrics"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
)

type ReviewService struct {
	db               *sqlx.DB
	reviewRepository repository.ReviewRepository
	recipeRepository repository.RecipeRepository
	userRepository   repository.UserRepository
	emailService     *EmailService
}

func NewReviewService(
	conn *sqlx.DB,
	reviewRepository repository.ReviewRepository,
	recipeRepository repository.RecipeRepository,
	userRepository repository.UserRepository,
	emailService *EmailService,
) *ReviewService {
	return &ReviewService{
		db:               conn,
		reviewRepository: reviewRepository,
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		emailService:     emailService,
	}
}

// Submit stores the actor's rating and comment for a recipe, replacing any
// earlier review by the same user. An empty comment removes the old one.
func (s *ReviewService) Submit(actor Actor, recipeID string, in model.ReviewInput) error {
	if actor.UserID == "" {
		return ErrForbidden
	}

	errs := in.Validate()
	if !errs.Empty() {
		return errs
	}

	recipe, err := s.recipeRepository.ByID(recipeID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = db.InTx(s.db, func(tx *sqlx.Tx) error {
		reviews := s.reviewRepository.WithTx(tx)

		err := reviews.SaveRating(&model.Rating{
			RecipeID:  recipeID,
			UserID:    actor.UserID,
			Value:     in.Rating,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to save rating: %w", err)
		}

		if in.Comment == "" {
			err = reviews.DeleteComment(recipeID, actor.UserID)
		} else {
			err = reviews.SaveComment(&model.Comment{
				RecipeID:  recipeID,
				UserID:    actor.UserID,
				Text:      in.Comment,
				CreatedAt: now,
			})
		}
		if err != nil {
			return fmt.Errorf("failed to save comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.ReviewsSubmitted.Inc()
	s.notifyOwner(actor, recipe, in.Rating)
	return nil
}

func (s *ReviewService) notifyOwner(actor Actor, recipe *model.Recipe, rating int) {
	if s.emailService == nil || recipe.UserID == actor.UserID {
		return
	}

	owner, err := s.userRepository.ByID(recipe.UserID)
	if err != nil {
		slog.Error("failed to load recipe owner", "error", err, "recipe_id", recipe.ID)
		return
	}
	reviewer, err := s.userRepository.ByID(actor.UserID)
	if err != nil {
		slog.Error("failed to load reviewer", "error", err, "user_id", actor.UserID)
		return
	}

	err = s.emailService.SendNewReviewEmail(owner.Email, owner.Username, reviewer.Username, recipe.Title, recipe.ID, rating)
	if err != nil {
		slog.Error("failed to send review email", "error", err, "recipe_id", recipe.ID)
	}
}

func (s *ReviewService) ForRecipe(recipeID string) ([]*model.Review, error) {
	return s.reviewRepository.ForRecipe(recipeID)
}
