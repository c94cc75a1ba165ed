package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/models"
)

const recipeColumns = `
	r.recipe_id, r.name, r.instructions, r.thumbnail_url, r.ingredients,
	r.posted_by, u.username AS posted_by_username, u.full_name AS posted_by_full_name,
	r.created_at, r.updated_at
`

// RecipeReadRepository provides read access to recipe records,
// with the owner reference resolved against users.
type RecipeReadRepository struct {
	db *sqlx.DB
}

func NewRecipeReadRepository(db *sqlx.DB) *RecipeReadRepository {
	return &RecipeReadRepository{db: db}
}

// GetByID returns a recipe with its author populated, or (nil, nil) when absent.
func (r *RecipeReadRepository) GetByID(ctx context.Context, recipeID uuid.UUID) (*models.RecipeDB, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes r
		JOIN users u ON u.user_id = r.posted_by
		WHERE r.recipe_id = $1
	`

	var recipe models.RecipeDB
	err := r.db.GetContext(ctx, &recipe, query, recipeID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{recipeID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// List returns all recipes newest-first. When search is non-nil the result is
// limited to recipes whose name contains the substring, case-insensitively.
func (r *RecipeReadRepository) List(ctx context.Context, search *string) ([]models.RecipeDB, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes r
		JOIN users u ON u.user_id = r.posted_by
		WHERE ($1::VARCHAR IS NULL OR r.name ILIKE '%' || $1 || '%')
		ORDER BY r.created_at DESC
	`

	var recipes []models.RecipeDB
	err := r.db.SelectContext(ctx, &recipes, query, search)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{search},
		"result", len(recipes),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return recipes, nil
}

// ListByOwner returns all recipes posted by the given user, newest-first.
func (r *RecipeReadRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes r
		JOIN users u ON u.user_id = r.posted_by
		WHERE r.posted_by = $1
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

// RecipeWriteRepository provides write access to recipe records.
type RecipeWriteRepository struct {
	db *sqlx.DB
}

func NewRecipeWriteRepository(db *sqlx.DB) *RecipeWriteRepository {
	return &RecipeWriteRepository{db: db}
}

// Save inserts a new recipe and returns its id.
func (r *RecipeWriteRepository) Save(
	ctx context.Context,
	name, instructions, thumbnailURL string,
	ingredients models.IngredientList,
	postedBy uuid.UUID,
) (uuid.UUID, error) {
	const query = `
		INSERT INTO recipes (recipe_id, name, instructions, thumbnail_url, ingredients, posted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	recipeID := uuid.New()
	args := []any{recipeID, name, instructions, thumbnailURL, ingredients, postedBy}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{recipeID, name, postedBy},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return uuid.Nil, err
	}

	return recipeID, nil
}

// Update replaces the mutable fields of a recipe. Callers pass the merged
// values; ownership is checked at the service layer.
func (r *RecipeWriteRepository) Update(
	ctx context.Context,
	recipeID uuid.UUID,
	name, instructions, thumbnailURL string,
	ingredients models.IngredientList,
) error {
	const query = `
		UPDATE recipes
		SET name = $2, instructions = $3, thumbnail_url = $4, ingredients = $5, updated_at = NOW()
		WHERE recipe_id = $1
	`
	args := []any{recipeID, name, instructions, thumbnailURL, ingredients}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{recipeID, name},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Delete removes a recipe together with every favorites reference to it,
// so no user is left holding a dangling favorite. Both statements run in a
// single transaction.
func (r *RecipeWriteRepository) Delete(ctx context.Context, recipeID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return err
	}
	defer tx.Rollback()

	const deleteFavorites = `DELETE FROM favorites WHERE recipe_id = $1`
	if _, err := tx.ExecContext(ctx, deleteFavorites, recipeID); err != nil {
		logger.Log.Infow(
			"query", deleteFavorites,
			"args", []any{recipeID},
			"error", err,
		)
		return err
	}

	const deleteRecipe = `DELETE FROM recipes WHERE recipe_id = $1`
	res, err := tx.ExecContext(ctx, deleteRecipe, recipeID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", deleteRecipe,
		"args", []any{recipeID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}

	return tx.Commit()
}
