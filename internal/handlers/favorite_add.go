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

// FavoriteAdder defines the interface that the service must implement.
type FavoriteAdder interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID) error
}

// NewAddFavoriteHandler returns an HTTP handler adding a recipe to the
// caller's favorites.
// @Summary Add favorite
// @Description Adds a recipe to the caller's favorites list
// @Tags favorites
// @Produce json
// @Param recipeId path string true "Recipe id"
// @Success 200 {object} models.APIResponse "Added"
// @Failure 400 {object} models.APIErrorResponse "Recipe is already in favorites"
// @Failure 404 {object} models.APIErrorResponse "Recipe not found"
// @Router /recipes/{recipeId}/add-favorite [post]
// @Security BearerAuth
func NewAddFavoriteHandler(svc FavoriteAdder) http.HandlerFunc {
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

		if err := svc.Add(r.Context(), user.UserID, recipeID); err != nil {
			switch {
			case errors.Is(err, services.ErrRecipeNotFound):
				writeError(w, http.StatusNotFound, "Recipe not found")
			case errors.Is(err, services.ErrAlreadyInFavorites):
				writeError(w, http.StatusBadRequest, "Recipe is already in favorites")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, struct{}{}, "Recipe added to favorites")
	}
}
