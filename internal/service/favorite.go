package service

import (
	"fmt"
	"time"

	"github.com/flavorconnect/flavorconnect/internal/metrics"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
)

type FavoriteService struct {
	favoriteRepository repository.FavoriteRepository
	recipeRepository   repository.RecipeRepository
}

func NewFavoriteService(favoriteRepository repository.FavoriteRepository, recipeRepository repository.RecipeRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepository: favoriteRepository,
		recipeRepository:   recipeRepository,
	}
}

// Toggle adds or removes the recipe from the actor's favorites and
// returns whether it is favorited afterwards
func (s *FavoriteService) Toggle(actor Actor, recipeID string) (bool, error) {
	if actor.UserID == "" {
		return false, ErrForbidden
	}

	_, err := s.recipeRepository.ByID(recipeID)
	if err != nil {
		return false, err
	}

	favorited, err := s.favoriteRepository.IsFavorited(actor.UserID, recipeID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	if favorited {
		err = s.favoriteRepository.Remove(actor.UserID, recipeID)
	} else {
		err = s.favoriteRepository.Add(&model.Favorite{
			UserID:    actor.UserID,
			RecipeID:  recipeID,
			CreatedAt: time.Now().UTC(),
		})
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	metrics.RecordFavoriteToggle(!favorited)
	return !favorited, nil
}
