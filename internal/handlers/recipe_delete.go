package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/middlewares"
	"github.com/mstepanov-dev/recipebox/internal/services"
)

// RecipeDeleter defines the interface that the service must implement.
type RecipeDeleter interface {
	Delete(ctx context.Context, recipeID, userID uuid.UUID) error
}

// NewDeleteRecipeHandler returns an HTTP handler deleting an owned recipe.
// The recipe is also removed from every user's favorites.
// @Summary Delete a recipe
// @Description Deletes an owned recipe and removes it from all favorites lists
// @Tags recipes
// @Produce json
// @Param recipeId path string true "Recipe id"
// @Success 200 {object} models.APIResponse "Deleted"
// @Failure 403 {object} models.APIErrorResponse "Not the owner"
// @Failure 404 {object} models.APIErrorResponse "Recipe not found"
// @Router /recipes/{recipeId}/delete [delete]
// @Security BearerAuth
func NewDeleteRecipeHandler(svc RecipeDeleter) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), recipeID, user.UserID); err != nil {
			switch {
			case errors.Is(err, services.ErrRecipeNotFound):
				writeError(w, http.StatusNotFound, "Recipe not found")
			case errors.Is(err, services.ErrNotRecipeOwner):
				writeError(w, http.StatusForbidden, "You can only delete your own recipes")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, struct{}{}, "Recipe deleted successfully")
	}
}
