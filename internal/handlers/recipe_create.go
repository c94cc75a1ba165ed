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

// RecipeCreator defines the interface that the service must implement.
type RecipeCreator interface {
	Create(ctx context.Context, userID uuid.UUID, input services.CreateRecipeInput) (*models.RecipeResponse, error)
}

// NewCreateRecipeHandler returns an HTTP handler for creating a recipe from
// a multipart form: name, instructions, ingredients (JSON array) and the
// thumbnail image file.
// @Summary Create a recipe
// @Description Uploads the thumbnail to the image store and persists a recipe owned by the caller
// @Tags recipes
// @Accept mpfd
// @Produce json
// @Param name formData string true "Recipe name"
// @Param instructions formData string true "Instructions text"
// @Param ingredients formData string true "Ingredients as a JSON array"
// @Param thumbnailImage formData file true "Thumbnail image"
// @Success 201 {object} models.APIResponse "Created recipe"
// @Failure 400 {object} models.APIErrorResponse "Missing or malformed fields"
// @Failure 401 {object} models.APIErrorResponse "Unauthorized"
// @Router /recipes/create [post]
// @Security BearerAuth
func NewCreateRecipeHandler(svc RecipeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := r.ParseMultipartForm(maxRecipeFormSize); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		ingredientsRaw := r.FormValue("ingredients")
		if ingredientsRaw == "" {
			writeError(w, http.StatusBadRequest, "Name, instructions and ingredients are required")
			return
		}
		ingredients, err := parseIngredients(ingredientsRaw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid ingredients format")
			return
		}

		thumbnail, err := parseThumbnail(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid thumbnail image file")
			return
		}

		input := services.CreateRecipeInput{
			Name:         r.FormValue("name"),
			Instructions: r.FormValue("instructions"),
			Ingredients:  ingredients,
			Thumbnail:    thumbnail,
		}

		recipe, err := svc.Create(r.Context(), user.UserID, input)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingRecipeFields),
				errors.Is(err, services.ErrInvalidIngredients):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrThumbnailRequired):
				writeError(w, http.StatusBadRequest, "Thumbnail image file is required")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusCreated, recipe, "Recipe created successfully")
	}
}
