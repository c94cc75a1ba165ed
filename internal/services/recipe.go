package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/models"
	"github.com/segmentio/kafka-go"
)

var (
	ErrMissingRecipeFields = errors.New("name, instructions and ingredients are required")
	ErrInvalidIngredients  = errors.New("each ingredient requires name, quantity and unit")
	ErrThumbnailRequired   = errors.New("thumbnail image file is required")
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNotRecipeOwner      = errors.New("recipe belongs to another user")
)

// RecipeReader defines read operations for recipes.
type RecipeReader interface {
	GetByID(ctx context.Context, recipeID uuid.UUID) (*models.RecipeDB, error)
	List(ctx context.Context, search *string) ([]models.RecipeDB, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error)
}

// RecipeWriter defines write operations for recipes.
type RecipeWriter interface {
	Save(ctx context.Context, name, instructions, thumbnailURL string, ingredients models.IngredientList, postedBy uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, recipeID uuid.UUID, name, instructions, thumbnailURL string, ingredients models.IngredientList) error
	Delete(ctx context.Context, recipeID uuid.UUID) error
}

// RecipeCache caches recipes fetched by id.
type RecipeCache interface {
	Get(ctx context.Context, recipeID uuid.UUID) (*models.RecipeDB, error)
	Set(ctx context.Context, recipe *models.RecipeDB) error
	Delete(ctx context.Context, recipeID uuid.UUID) error
}

// ImageUploader stores an image externally and returns a durable URL.
type ImageUploader interface {
	Upload(ctx context.Context, body io.Reader, filename, contentType string) (string, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// Thumbnail carries an uploaded image file from a multipart request.
type Thumbnail struct {
	Body        io.Reader
	Filename    string
	ContentType string
}

// CreateRecipeInput holds everything required to create a recipe.
type CreateRecipeInput struct {
	Name         string
	Instructions string
	Ingredients  []models.Ingredient
	Thumbnail    *Thumbnail
}

// UpdateRecipeInput holds a partial recipe update. Nil fields keep their
// prior values; a nil Thumbnail keeps the existing image.
type UpdateRecipeInput struct {
	Name         *string
	Instructions *string
	Ingredients  []models.Ingredient
	Thumbnail    *Thumbnail
}

// RecipeService handles recipe CRUD, caching and event publishing.
type RecipeService struct {
	readRepo    RecipeReader
	writeRepo   RecipeWriter
	cacheRepo   RecipeCache
	images      ImageUploader
	kafkaWriter KafkaWriter
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(
	readRepo RecipeReader,
	writeRepo RecipeWriter,
	cacheRepo RecipeCache,
	images ImageUploader,
	kafkaWriter KafkaWriter,
) *RecipeService {
	return &RecipeService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		cacheRepo:   cacheRepo,
		images:      images,
		kafkaWriter: kafkaWriter,
	}
}

// authorizeOwner is the single ownership guard for every mutating recipe
// operation: acting identity must equal the recorded owner.
func authorizeOwner(recipe *models.RecipeDB, userID uuid.UUID) error {
	if recipe.PostedBy != userID {
		return ErrNotRecipeOwner
	}
	return nil
}

func validateIngredients(ingredients []models.Ingredient) error {
	if len(ingredients) == 0 {
		return ErrMissingRecipeFields
	}
	for _, ing := range ingredients {
		if ing.Name == "" || ing.Quantity == "" || ing.Unit == "" {
			return ErrInvalidIngredients
		}
	}
	return nil
}

// publishEvent publishes a recipe lifecycle event to Kafka. Publishing is
// best-effort and never fails the request.
func (s *RecipeService) publishEvent(ctx context.Context, operation string, recipeID, userID uuid.UUID) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "recipe_id", recipeID)
		return
	}

	event := models.RecipeEvent{
		EventID:   uuid.NewString(),
		Operation: operation,
		RecipeID:  recipeID.String(),
		UserID:    userID.String(),
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal recipe event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.RecipeID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish recipe event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Recipe event published to Kafka", "event_id", event.EventID, "operation", operation)
	}
}

// Create validates the input, uploads the thumbnail and persists a new
// recipe owned by userID.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, input CreateRecipeInput) (*models.RecipeResponse, error) {
	if input.Name == "" || input.Instructions == "" {
		return nil, ErrMissingRecipeFields
	}
	if err := validateIngredients(input.Ingredients); err != nil {
		return nil, err
	}
	if input.Thumbnail == nil {
		return nil, ErrThumbnailRequired
	}

	thumbnailURL, err := s.images.Upload(ctx, input.Thumbnail.Body, input.Thumbnail.Filename, input.Thumbnail.ContentType)
	if err != nil {
		logger.Log.Errorw("failed to upload thumbnail", "err", err)
		return nil, err
	}

	recipeID, err := s.writeRepo.Save(ctx, input.Name, input.Instructions, thumbnailURL, input.Ingredients, userID)
	if err != nil {
		logger.Log.Errorw("failed to save recipe", "err", err)
		return nil, err
	}

	created, err := s.readRepo.GetByID(ctx, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to load created recipe", "recipe_id", recipeID, "err", err)
		return nil, err
	}
	if created == nil {
		return nil, ErrRecipeNotFound
	}

	s.publishEvent(ctx, "created", recipeID, userID)

	return created.ToResponse(), nil
}

// List returns all recipes newest-first, optionally filtered by a
// case-insensitive substring of the name.
func (s *RecipeService) List(ctx context.Context, search *string) ([]models.RecipeResponse, error) {
	recipes, err := s.readRepo.List(ctx, search)
	if err != nil {
		logger.Log.Errorw("failed to list recipes", "err", err)
		return nil, err
	}
	return models.RecipesToResponse(recipes), nil
}

// ListByOwner returns the recipes posted by userID, newest-first.
func (s *RecipeService) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.RecipeResponse, error) {
	recipes, err := s.readRepo.ListByOwner(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list user recipes", "user_id", userID, "err", err)
		return nil, err
	}
	return models.RecipesToResponse(recipes), nil
}

// GetByID returns a single recipe, served from cache when possible.
func (s *RecipeService) GetByID(ctx context.Context, recipeID uuid.UUID) (*models.RecipeResponse, error) {
	if s.cacheRepo != nil {
		if cached, err := s.cacheRepo.Get(ctx, recipeID); err == nil && cached != nil {
			return cached.ToResponse(), nil
		}
	}

	recipe, err := s.readRepo.GetByID(ctx, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "recipe_id", recipeID, "err", err)
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Set(ctx, recipe); err != nil {
			logger.Log.Warnw("failed to cache recipe", "recipe_id", recipeID, "err", err)
		}
	}

	return recipe.ToResponse(), nil
}

// Update applies a partial update to a recipe owned by userID. Only supplied
// fields change; the thumbnail is replaced only when a new image was uploaded.
func (s *RecipeService) Update(ctx context.Context, recipeID, userID uuid.UUID, input UpdateRecipeInput) (*models.RecipeResponse, error) {
	recipe, err := s.readRepo.GetByID(ctx, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "recipe_id", recipeID, "err", err)
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	if err := authorizeOwner(recipe, userID); err != nil {
		return nil, err
	}

	name := recipe.Name
	if input.Name != nil && *input.Name != "" {
		name = *input.Name
	}
	instructions := recipe.Instructions
	if input.Instructions != nil && *input.Instructions != "" {
		instructions = *input.Instructions
	}
	ingredients := recipe.Ingredients
	if input.Ingredients != nil {
		if err := validateIngredients(input.Ingredients); err != nil {
			return nil, err
		}
		ingredients = input.Ingredients
	}

	thumbnailURL := recipe.ThumbnailURL
	if input.Thumbnail != nil {
		newURL, err := s.images.Upload(ctx, input.Thumbnail.Body, input.Thumbnail.Filename, input.Thumbnail.ContentType)
		if err != nil {
			logger.Log.Errorw("failed to upload new thumbnail", "recipe_id", recipeID, "err", err)
			return nil, err
		}
		thumbnailURL = newURL
	}

	if err := s.writeRepo.Update(ctx, recipeID, name, instructions, thumbnailURL, ingredients); err != nil {
		logger.Log.Errorw("failed to update recipe", "recipe_id", recipeID, "err", err)
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(ctx, recipeID); err != nil {
			logger.Log.Warnw("failed to invalidate recipe cache", "recipe_id", recipeID, "err", err)
		}
	}

	updated, err := s.readRepo.GetByID(ctx, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to load updated recipe", "recipe_id", recipeID, "err", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrRecipeNotFound
	}

	s.publishEvent(ctx, "updated", recipeID, userID)

	return updated.ToResponse(), nil
}

// Delete removes a recipe owned by userID. The store removes the recipe's
// reference from every user's favorites in the same operation.
func (s *RecipeService) Delete(ctx context.Context, recipeID, userID uuid.UUID) error {
	recipe, err := s.readRepo.GetByID(ctx, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "recipe_id", recipeID, "err", err)
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}
	if err := authorizeOwner(recipe, userID); err != nil {
		return err
	}

	if err := s.writeRepo.Delete(ctx, recipeID); err != nil {
		logger.Log.Errorw("failed to delete recipe", "recipe_id", recipeID, "err", err)
		return err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(ctx, recipeID); err != nil {
			logger.Log.Warnw("failed to invalidate recipe cache", "recipe_id", recipeID, "err", err)
		}
	}

	s.publishEvent(ctx, "deleted", recipeID, userID)

	return nil
}
