package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/models"
)

// FavoriteReadRepository provides read access to per-user favorites.
type FavoriteReadRepository struct {
	db *sqlx.DB
}

func NewFavoriteReadRepository(db *sqlx.DB) *FavoriteReadRepository {
	return &FavoriteReadRepository{db: db}
}

// Exists reports whether the recipe is already in the user's favorites.
func (r *FavoriteReadRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE user_id = $1 AND recipe_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, recipeID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, recipeID},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// ListByUser returns the user's favorite recipes newest-first, resolved to
// their current data. Favorites are weak references: an entry whose recipe no
// longer exists simply produces no row.
func (r *FavoriteReadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM favorites f
		JOIN recipes r ON r.recipe_id = f.recipe_id
		JOIN users u ON u.user_id = r.posted_by
		WHERE f.user_id = $1
		ORDER BY r.created_at DESC
	`

	var recipes []models.RecipeDB
	err := r.db.SelectContext(ctx, &recipes, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(recipes),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return recipes, nil
}

// FavoriteWriteRepository provides write access to per-user favorites.
type FavoriteWriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteWriteRepository(db *sqlx.DB) *FavoriteWriteRepository {
	return &FavoriteWriteRepository{db: db}
}

// Add inserts a favorites entry for the user.
func (r *FavoriteWriteRepository) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	const query = `
		INSERT INTO favorites (user_id, recipe_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, recipe_id) DO NOTHING
	`
	args := []any{userID, recipeID}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Remove deletes a favorites entry for the user.
func (r *FavoriteWriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	const query = `
		DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2
	`
	args := []any{userID, recipeID}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}
