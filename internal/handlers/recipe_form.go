package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/models"
	"github.com/mstepanov-dev/recipebox/internal/services"
)

// maxRecipeFormSize caps multipart recipe payloads, thumbnail included.
const maxRecipeFormSize = 10 << 20

// thumbnailFormField is the multipart field carrying the image file.
const thumbnailFormField = "thumbnailImage"

// recipeIDFromURL parses the recipeId path parameter.
func recipeIDFromURL(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "recipeId"))
}

// parseThumbnail extracts the uploaded thumbnail from a multipart form.
// Returns (nil, nil) when no file was sent.
func parseThumbnail(r *http.Request) (*services.Thumbnail, error) {
	file, header, err := r.FormFile(thumbnailFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	return &services.Thumbnail{
		Body:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

// parseIngredients decodes the ingredients form field, sent as a JSON array.
func parseIngredients(raw string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := json.Unmarshal([]byte(raw), &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}
