package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrMissingFields       = errors.New("all fields are required")
	ErrUserAlreadyExists   = errors.New("username or email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, fullName, passwordHash string) (*models.UserDB, error)
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
}

// TokenIssuer defines an interface for issuing and verifying tokens.
type TokenIssuer interface {
	GenerateAccess(ctx context.Context, userID uuid.UUID) (string, error)
	GenerateRefresh(ctx context.Context, userID uuid.UUID) (string, error)
	ParseRefreshToken(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// AuthService handles the session lifecycle: registration, login,
// refresh-token rotation and logout.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    TokenIssuer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt TokenIssuer) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
	}
}

// Register registers a new user and returns the public profile.
func (svc *AuthService) Register(ctx context.Context, username, email, fullName, password string) (*models.UserResponse, error) {
	if username == "" || email == "" || fullName == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	created, err := svc.writer.Save(ctx, username, email, fullName, string(hashedPassword))
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return created.ToResponse(), nil
}

// Login authenticates a user by username or email and returns a fresh
// access/refresh token pair along with the public profile. The new refresh
// token is persisted before the pair is returned, which invalidates any
// previously issued refresh token for the same user. Unknown identifier and
// wrong password are reported identically to resist user enumeration.
func (svc *AuthService) Login(ctx context.Context, identifier, password string) (accessToken, refreshToken string, user *models.UserResponse, err error) {
	u, err := svc.reader.GetByIdentifier(ctx, identifier)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", "", nil, err
	}
	if u == nil {
		logger.Log.Errorw("user does not exist", "identifier", identifier)
		return "", "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "identifier", identifier)
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err = svc.issueTokenPair(ctx, u.UserID)
	if err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, u.ToResponse(), nil
}

// Refresh rotates the token pair. The presented token must verify as a
// refresh token and must equal the one currently stored on the user record;
// a superseded token, even if validly signed and unexpired, is rejected.
func (svc *AuthService) Refresh(ctx context.Context, refreshToken string) (newAccess, newRefresh string, err error) {
	userID, err := svc.jwt.ParseRefreshToken(ctx, refreshToken)
	if err != nil {
		logger.Log.Errorw("refresh token failed verification", "err", err)
		return "", "", ErrInvalidRefreshToken
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", "", err
	}
	if user == nil {
		logger.Log.Errorw("user from refresh token does not exist", "user_id", userID)
		return "", "", ErrInvalidRefreshToken
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		logger.Log.Errorw("refresh token does not match stored token", "user_id", userID)
		return "", "", ErrInvalidRefreshToken
	}

	return svc.issueTokenPair(ctx, userID)
}

// Logout clears the stored refresh token. Idempotent: logging out an already
// logged-out user succeeds.
func (svc *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := svc.writer.UpdateRefreshToken(ctx, userID, nil); err != nil {
		logger.Log.Errorw("failed to clear refresh token", "user_id", userID, "err", err)
		return err
	}
	return nil
}

// issueTokenPair mints a new access/refresh pair and persists the refresh
// token. Rotation is complete only once the store write succeeds.
func (svc *AuthService) issueTokenPair(ctx context.Context, userID uuid.UUID) (accessToken, refreshToken string, err error) {
	accessToken, err = svc.jwt.GenerateAccess(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "err", err)
		return "", "", err
	}

	refreshToken, err = svc.jwt.GenerateRefresh(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return "", "", err
	}

	if err = svc.writer.UpdateRefreshToken(ctx, userID, &refreshToken); err != nil {
		logger.Log.Errorw("failed to persist refresh token", "err", err)
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
