package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Ingredient is a single ingredient entry on a recipe.
// All three fields are required.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// IngredientList is stored as a JSONB column.
type IngredientList []Ingredient

// Value implements driver.Valuer for JSONB storage.
func (l IngredientList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage.
func (l *IngredientList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	}
	return errors.New("unsupported type for IngredientList")
}

// RecipeDB represents a recipe record in the database.
// The author columns are filled by a join against users.
type RecipeDB struct {
	RecipeID         uuid.UUID      `db:"recipe_id"`
	Name             string         `db:"name"`
	Instructions     string         `db:"instructions"`
	ThumbnailURL     string         `db:"thumbnail_url"`
	Ingredients      IngredientList `db:"ingredients"`
	PostedBy         uuid.UUID      `db:"posted_by"`
	PostedByUsername string         `db:"posted_by_username"`
	PostedByFullName string         `db:"posted_by_full_name"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// RecipeAuthor is the populated owner reference on a recipe response.
type RecipeAuthor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
}

// RecipeResponse is the API shape of a recipe.
type RecipeResponse struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Instructions   string       `json:"instructions"`
	ThumbnailImage string       `json:"thumbnailImage"`
	Ingredients    []Ingredient `json:"ingredients"`
	PostedBy       RecipeAuthor `json:"postedBy"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// ToResponse converts a DB record into its API representation.
func (r *RecipeDB) ToResponse() *RecipeResponse {
	ingredients := []Ingredient(r.Ingredients)
	if ingredients == nil {
		ingredients = []Ingredient{}
	}
	return &RecipeResponse{
		ID:             r.RecipeID,
		Name:           r.Name,
		Instructions:   r.Instructions,
		ThumbnailImage: r.ThumbnailURL,
		Ingredients:    ingredients,
		PostedBy: RecipeAuthor{
			ID:       r.PostedBy,
			Username: r.PostedByUsername,
			FullName: r.PostedByFullName,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// RecipesToResponse converts a slice of DB records, never returning nil.
func RecipesToResponse(recipes []RecipeDB) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, *recipes[i].ToResponse())
	}
	return out
}
