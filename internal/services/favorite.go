package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/models"
)

var (
	ErrAlreadyInFavorites = errors.New("recipe is already in favorites")
	ErrNotInFavorites     = errors.New("recipe is not in favorites")
)

// FavoriteReader defines read operations for favorites.
type FavoriteReader interface {
	Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error)
}

// FavoriteWriter defines write operations for favorites.
type FavoriteWriter interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID) error
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
}

// FavoriteService handles per-user favorites lists.
type FavoriteService struct {
	recipes RecipeReader
	reader  FavoriteReader
	writer  FavoriteWriter
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(recipes RecipeReader, reader FavoriteReader, writer FavoriteWriter) *FavoriteService {
	return &FavoriteService{
		recipes: recipes,
		reader:  reader,
		writer:  writer,
	}
}

// Add puts a recipe on the user's favorites list. The recipe must exist and
// must not already be favorited.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "recipe_id", recipeID, "err", err)
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}

	exists, err := s.reader.Exists(ctx, userID, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to check favorites", "user_id", userID, "recipe_id", recipeID, "err", err)
		return err
	}
	if exists {
		return ErrAlreadyInFavorites
	}

	if err := s.writer.Add(ctx, userID, recipeID); err != nil {
		logger.Log.Errorw("failed to add favorite", "user_id", userID, "recipe_id", recipeID, "err", err)
		return err
	}

	return nil
}

// Remove takes a recipe off the user's favorites list. The recipe must exist
// and must currently be favorited.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "recipe_id", recipeID, "err", err)
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}

	exists, err := s.reader.Exists(ctx, userID, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to check favorites", "user_id", userID, "recipe_id", recipeID, "err", err)
		return err
	}
	if !exists {
		return ErrNotInFavorites
	}

	if err := s.writer.Remove(ctx, userID, recipeID); err != nil {
		logger.Log.Errorw("failed to remove favorite", "user_id", userID, "recipe_id", recipeID, "err", err)
		return err
	}

	return nil
}

// List returns the user's favorite recipes newest-first, resolved to their
// current data. Dangling references are silently omitted by the store.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.RecipeResponse, error) {
	recipes, err := s.reader.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list favorites", "user_id", userID, "err", err)
		return nil, err
	}
	return models.RecipesToResponse(recipes), nil
}
