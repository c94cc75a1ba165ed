package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/models"
	"github.com/mstepanov-dev/recipebox/internal/services"
)

// RecipeGetter defines the interface that the service must implement.
type RecipeGetter interface {
	GetByID(ctx context.Context, recipeID uuid.UUID) (*models.RecipeResponse, error)
}

// NewGetRecipeHandler returns an HTTP handler fetching a single recipe by id.
// @Summary Get a recipe
// @Description Returns a recipe by id with its author populated
// @Tags recipes
// @Produce json
// @Param recipeId path string true "Recipe id"
// @Success 200 {object} models.APIResponse "Recipe"
// @Failure 404 {object} models.APIErrorResponse "Recipe not found"
// @Router /recipes/{recipeId} [get]
// @Security BearerAuth
func NewGetRecipeHandler(svc RecipeGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, err := recipeIDFromURL(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "Recipe not found")
			return
		}

		recipe, err := svc.GetByID(r.Context(), recipeID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRecipeNotFound):
				writeError(w, http.StatusNotFound, "Recipe not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, recipe, "Recipe fetched successfully")
	}
}
