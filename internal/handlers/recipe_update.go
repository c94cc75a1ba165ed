package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/middlewares"
	"github.com/mstepanov-dev/recipebox/internal/models"
	"github.com/mstepanov-dev/recipebox/internal/services"
)

// RecipeUpdater defines the interface that the service must implement.
type RecipeUpdater interface {
	Update(ctx context.Context, recipeID, userID uuid.UUID, input services.UpdateRecipeInput) (*models.RecipeResponse, error)
}

// NewUpdateRecipeHandler returns an HTTP handler for partially updating a
// recipe from a multipart form. Only supplied fields change; the thumbnail is
// replaced only when a new file was uploaded.
// @Summary Update a recipe
// @Description Partial update of an owned recipe
// @Tags recipes
// @Accept mpfd
// @Produce json
// @Param recipeId path string true "Recipe id"
// @Param name formData string false "Recipe name"
// @Param instructions formData string false "Instructions text"
// @Param ingredients formData string false "Ingredients as a JSON array"
// @Param thumbnailImage formData file false "New thumbnail image"
// @Success 200 {object} models.APIResponse "Updated recipe"
// @Failure 400 {object} models.APIErrorResponse "Malformed fields"
// @Failure 403 {object} models.APIErrorResponse "Not the owner"
// @Failure 404 {object} models.APIErrorResponse "Recipe not found"
// @Router /recipes/{recipeId}/update [patch]
// @Security BearerAuth
func NewUpdateRecipeHandler(svc RecipeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		recipeID, err := recipeIDFromURL(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "Recipe not found")
			return
		}

		if err := r.ParseMultipartForm(maxRecipeFormSize); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		var input services.UpdateRecipeInput
		if name := r.FormValue("name"); name != "" {
			input.Name = &name
		}
		if instructions := r.FormValue("instructions"); instructions != "" {
			input.Instructions = &instructions
		}
		if ingredientsRaw := r.FormValue("ingredients"); ingredientsRaw != "" {
			ingredients, err := parseIngredients(ingredientsRaw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid ingredients format")
				return
			}
			input.Ingredients = ingredients
		}

		thumbnail, err := parseThumbnail(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid thumbnail image file")
			return
		}
		input.Thumbnail = thumbnail

		recipe, err := svc.Update(r.Context(), recipeID, user.UserID, input)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRecipeNotFound):
				writeError(w, http.StatusNotFound, "Recipe not found")
			case errors.Is(err, services.ErrNotRecipeOwner):
				writeError(w, http.StatusForbidden, "You can only update your own recipes")
			case errors.Is(err, services.ErrInvalidIngredients),
				errors.Is(err, services.ErrMissingRecipeFields):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, recipe, "Recipe updated successfully")
	}
}
