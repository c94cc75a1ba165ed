package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/middlewares"
	"github.com/mstepanov-dev/recipebox/internal/models"
	"github.com/mstepanov-dev/recipebox/internal/services"
	"github.com/stretchr/testify/assert"
)

// buildRecipeForm assembles a multipart body for recipe create/update requests.
func buildRecipeForm(t *testing.T, fields map[string]string, withThumbnail bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	if withThumbnail {
		part, err := writer.CreateFormFile(thumbnailFormField, "thumb.jpg")
		assert.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader([]byte("fake image bytes")))
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestCreateRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Username: "john"}

	ingredientsJSON := `[{"name":"flour","quantity":"200","unit":"g"}]`

	tests := []struct {
		name          string
		fields        map[string]string
		withThumbnail bool
		withUser      bool
		mockSetup     func(m *MockRecipeCreator)
		expectedCode  int
	}{
		{
			name: "successful create",
			fields: map[string]string{
				"name":         "Pancakes",
				"instructions": "Mix and fry",
				"ingredients":  ingredientsJSON,
			},
			withThumbnail: true,
			withUser:      true,
			mockSetup: func(m *MockRecipeCreator) {
				m.EXPECT().
					Create(gomock.Any(), userID, gomock.Any()).
					DoAndReturn(func(_ interface{}, _ uuid.UUID, input services.CreateRecipeInput) (*models.RecipeResponse, error) {
						assert.Equal(t, "Pancakes", input.Name)
						assert.Equal(t, "Mix and fry", input.Instructions)
						assert.Len(t, input.Ingredients, 1)
						if assert.NotNil(t, input.Thumbnail) {
							assert.Equal(t, "thumb.jpg", input.Thumbnail.Filename)
						}
						return &models.RecipeResponse{ID: uuid.New(), Name: input.Name}, nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "unauthenticated",
			withUser:     false,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "missing ingredients field",
			fields: map[string]string{
				"name":         "Pancakes",
				"instructions": "Mix and fry",
			},
			withThumbnail: true,
			withUser:      true,
			expectedCode:  http.StatusBadRequest,
		},
		{
			name: "malformed ingredients",
			fields: map[string]string{
				"name":         "Pancakes",
				"instructions": "Mix and fry",
				"ingredients":  "not json",
			},
			withThumbnail: true,
			withUser:      true,
			expectedCode:  http.StatusBadRequest,
		},
		{
			name: "thumbnail missing",
			fields: map[string]string{
				"name":         "Pancakes",
				"instructions": "Mix and fry",
				"ingredients":  ingredientsJSON,
			},
			withThumbnail: false,
			withUser:      true,
			mockSetup: func(m *MockRecipeCreator) {
				m.EXPECT().
					Create(gomock.Any(), userID, gomock.Any()).
					Return(nil, services.ErrThumbnailRequired)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRecipeCreator(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewCreateRecipeHandler(mockSvc)

			body, contentType := buildRecipeForm(t, tt.fields, tt.withThumbnail)
			req := httptest.NewRequest(http.MethodPost, "/recipes/create", body)
			req.Header.Set("Content-Type", contentType)
			if tt.withUser {
				req = req.WithContext(middlewares.SetUserToContext(req.Context(), user))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp models.APIResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode == http.StatusCreated, resp.Success)
		})
	}
}
