package handlers

import (
	"context"
	"net/http"

	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/models"
)

// RecipeLister defines the interface that the service must implement.
type RecipeLister interface {
	List(ctx context.Context, search *string) ([]models.RecipeResponse, error)
}

// RecipesData wraps a list of recipes in the response payload.
type RecipesData struct {
	Recipes []models.RecipeResponse `json:"recipes"`
}

// NewListRecipesHandler returns an HTTP handler listing all recipes
// newest-first, optionally filtered by a name substring.
// @Summary List recipes
// @Description Returns all recipes newest-first. The search parameter filters by a case-insensitive name substring.
// @Tags recipes
// @Produce json
// @Param search query string false "Name substring filter"
// @Success 200 {object} models.APIResponse "Recipes"
// @Failure 401 {object} models.APIErrorResponse "Unauthorized"
// @Router /recipes [get]
// @Security BearerAuth
func NewListRecipesHandler(svc RecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var search *string
		if s := r.URL.Query().Get("search"); s != "" {
			search = &s
		}

		recipes, err := svc.List(r.Context(), search)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeSuccess(w, http.StatusOK, RecipesData{Recipes: recipes}, "Recipes fetched successfully")
	}
}
