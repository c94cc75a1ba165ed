package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/mstepanov-dev/recipebox/internal/models"
)

func setupRecipeCache(t *testing.T, exp time.Duration) (*miniredis.Miniredis, *RecipeCacheRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return mr, NewRecipeCacheRepository(client, exp)
}

func cachedRecipe() *models.RecipeDB {
	return &models.RecipeDB{
		RecipeID:         uuid.New(),
		Name:             "Pancakes",
		Instructions:     "Mix and fry.",
		ThumbnailURL:     "https://cdn.example.com/pancakes.jpg",
		Ingredients:      models.IngredientList{{Name: "flour", Quantity: "200", Unit: "g"}},
		PostedBy:         uuid.New(),
		PostedByUsername: "alice",
		PostedByFullName: "Alice Smith",
	}
}

func TestRecipeCacheRepository_SetAndGet(t *testing.T) {
	_, repo := setupRecipeCache(t, time.Minute)
	ctx := context.Background()

	recipe := cachedRecipe()

	err := repo.Set(ctx, recipe)
	assert.NoError(t, err)

	got, err := repo.Get(ctx, recipe.RecipeID)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, recipe.RecipeID, got.RecipeID)
	assert.Equal(t, recipe.Name, got.Name)
	assert.Equal(t, recipe.Ingredients, got.Ingredients)
	assert.Equal(t, recipe.PostedByUsername, got.PostedByUsername)
}

func TestRecipeCacheRepository_Get_Miss(t *testing.T) {
	_, repo := setupRecipeCache(t, time.Minute)

	got, err := repo.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecipeCacheRepository_Expiration(t *testing.T) {
	mr, repo := setupRecipeCache(t, time.Minute)
	ctx := context.Background()

	recipe := cachedRecipe()
	assert.NoError(t, repo.Set(ctx, recipe))

	mr.FastForward(2 * time.Minute)

	got, err := repo.Get(ctx, recipe.RecipeID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecipeCacheRepository_Delete(t *testing.T) {
	_, repo := setupRecipeCache(t, time.Minute)
	ctx := context.Background()

	recipe := cachedRecipe()
	assert.NoError(t, repo.Set(ctx, recipe))

	err := repo.Delete(ctx, recipe.RecipeID)
	assert.NoError(t, err)

	got, err := repo.Get(ctx, recipe.RecipeID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an absent key is not an error.
	assert.NoError(t, repo.Delete(ctx, uuid.New()))
}

func TestRecipeCacheRepository_Get_CorruptPayload(t *testing.T) {
	mr, repo := setupRecipeCache(t, time.Minute)
	ctx := context.Background()

	recipeID := uuid.New()
	assert.NoError(t, mr.Set("recipe:"+recipeID.String(), "{not json"))

	got, err := repo.Get(ctx, recipeID)
	assert.Error(t, err)
	assert.Nil(t, got)
}
