package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/models"
	"github.com/mstepanov-dev/recipebox/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestFavoriteService_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	recipeID := uuid.New()
	recipe := &models.RecipeDB{RecipeID: recipeID, Name: "Pancakes"}

	tests := []struct {
		name      string
		recipe    *models.RecipeDB
		recipeErr error
		exists    bool
		existsErr error
		addErr    error
		wantErr   error
	}{
		{
			name:   "successful add",
			recipe: recipe,
		},
		{
			name:    "recipe does not exist",
			recipe:  nil,
			wantErr: services.ErrRecipeNotFound,
		},
		{
			name:    "already in favorites",
			recipe:  recipe,
			exists:  true,
			wantErr: services.ErrAlreadyInFavorites,
		},
		{
			name:      "recipe lookup error",
			recipeErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "favorites lookup error",
			recipe:    recipe,
			existsErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:    "write error",
			recipe:  recipe,
			addErr:  errors.New("db error"),
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes := services.NewMockRecipeReader(ctrl)
			reader := services.NewMockFavoriteReader(ctrl)
			writer := services.NewMockFavoriteWriter(ctrl)
			svc := services.NewFavoriteService(recipes, reader, writer)

			recipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(tt.recipe, tt.recipeErr)

			if tt.recipe != nil && tt.recipeErr == nil {
				reader.EXPECT().Exists(gomock.Any(), userID, recipeID).Return(tt.exists, tt.existsErr)
			}
			if tt.recipe != nil && tt.recipeErr == nil && tt.existsErr == nil && !tt.exists {
				writer.EXPECT().Add(gomock.Any(), userID, recipeID).Return(tt.addErr)
			}

			err := svc.Add(context.Background(), userID, recipeID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFavoriteService_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	recipeID := uuid.New()
	recipe := &models.RecipeDB{RecipeID: recipeID, Name: "Pancakes"}

	tests := []struct {
		name      string
		recipe    *models.RecipeDB
		exists    bool
		removeErr error
		wantErr   error
	}{
		{
			name:   "successful remove",
			recipe: recipe,
			exists: true,
		},
		{
			name:    "recipe does not exist",
			recipe:  nil,
			wantErr: services.ErrRecipeNotFound,
		},
		{
			name:    "not in favorites",
			recipe:  recipe,
			exists:  false,
			wantErr: services.ErrNotInFavorites,
		},
		{
			name:      "write error",
			recipe:    recipe,
			exists:    true,
			removeErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes := services.NewMockRecipeReader(ctrl)
			reader := services.NewMockFavoriteReader(ctrl)
			writer := services.NewMockFavoriteWriter(ctrl)
			svc := services.NewFavoriteService(recipes, reader, writer)

			recipes.EXPECT().GetByID(gomock.Any(), recipeID).Return(tt.recipe, nil)

			if tt.recipe != nil {
				reader.EXPECT().Exists(gomock.Any(), userID, recipeID).Return(tt.exists, nil)
			}
			if tt.recipe != nil && tt.exists {
				writer.EXPECT().Remove(gomock.Any(), userID, recipeID).Return(tt.removeErr)
			}

			err := svc.Remove(context.Background(), userID, recipeID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFavoriteService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	recipes := services.NewMockRecipeReader(ctrl)
	reader := services.NewMockFavoriteReader(ctrl)
	writer := services.NewMockFavoriteWriter(ctrl)
	svc := services.NewFavoriteService(recipes, reader, writer)

	reader.EXPECT().ListByUser(gomock.Any(), userID).Return([]models.RecipeDB{
		{RecipeID: uuid.New(), Name: "Pancakes"},
	}, nil)

	favorites, err := svc.List(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, favorites, 1)
	assert.Equal(t, "Pancakes", favorites[0].Name)

	reader.EXPECT().ListByUser(gomock.Any(), userID).Return(nil, errors.New("db error"))
	favorites, err = svc.List(context.Background(), userID)
	assert.EqualError(t, err, "db error")
	assert.Nil(t, favorites)
}
