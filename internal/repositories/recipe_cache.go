package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/models"
	"github.com/redis/go-redis/v9"
)

// RecipeCacheRepository provides a Redis read cache for recipes fetched by id.
type RecipeCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached recipes
}

// NewRecipeCacheRepository creates a new repository instance with a TTL.
func NewRecipeCacheRepository(client *redis.Client, expiration time.Duration) *RecipeCacheRepository {
	return &RecipeCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func recipeCacheKey(recipeID uuid.UUID) string {
	return fmt.Sprintf("recipe:%s", recipeID)
}

// Get fetches a cached recipe. A cache miss returns (nil, nil).
func (r *RecipeCacheRepository) Get(ctx context.Context, recipeID uuid.UUID) (*models.RecipeDB, error) {
	key := recipeCacheKey(recipeID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var recipe models.RecipeDB
	if err := json.Unmarshal([]byte(val), &recipe); err != nil {
		logger.Log.Errorw("failed to unmarshal cached recipe", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result", "hit",
		"error", nil,
	)

	return &recipe, nil
}

// Set caches a recipe with the configured expiration.
func (r *RecipeCacheRepository) Set(ctx context.Context, recipe *models.RecipeDB) error {
	key := recipeCacheKey(recipe.RecipeID)

	data, err := json.Marshal(recipe)
	if err != nil {
		logger.Log.Errorw("failed to marshal recipe for cache", "key", key, "error", err)
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

// Delete drops a recipe from the cache, called on update and delete.
func (r *RecipeCacheRepository) Delete(ctx context.Context, recipeID uuid.UUID) error {
	key := recipeCacheKey(recipeID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "deleted",
		"error", err,
	)

	return err
}
