package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds embedded in the token_kind claim.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Cookie names used to carry tokens on the client side.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

var (
	// ErrNoToken is returned when a request carries no token at all.
	ErrNoToken = errors.New("no token supplied")
	// ErrInvalidToken is returned for a bad signature, malformed structure,
	// wrong kind or expired token.
	ErrInvalidToken = errors.New("invalid token")
)

// JWT issues and verifies signed access and refresh tokens.
type JWT struct {
	SecretKey  string        // Secret key for signing tokens
	AccessExp  time.Duration // Access token expiration
	RefreshExp time.Duration // Refresh token expiration
}

// New creates a new JWT instance
func New(secretKey string, accessExp, refreshExp time.Duration) *JWT {
	return &JWT{
		SecretKey:  secretKey,
		AccessExp:  accessExp,
		RefreshExp: refreshExp,
	}
}

// GenerateAccess creates a short-lived access token for a given userID.
func (j *JWT) GenerateAccess(ctx context.Context, userID uuid.UUID) (string, error) {
	return j.generate(userID, KindAccess, j.AccessExp)
}

// GenerateRefresh creates a long-lived refresh token for a given userID.
func (j *JWT) GenerateRefresh(ctx context.Context, userID uuid.UUID) (string, error) {
	return j.generate(userID, KindRefresh, j.RefreshExp)
}

func (j *JWT) generate(userID uuid.UUID, kind string, exp time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"token_kind": kind,
		"exp":        time.Now().Add(exp).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// ParseAccessToken verifies an access token and returns the embedded userID.
func (j *JWT) ParseAccessToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	return j.parse(tokenString, KindAccess)
}

// ParseRefreshToken verifies a refresh token and returns the embedded userID.
func (j *JWT) ParseRefreshToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	return j.parse(tokenString, KindRefresh)
}

func (j *JWT) parse(tokenString, expectedKind string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	kind, _ := claims["token_kind"].(string)
	if kind != expectedKind {
		return uuid.Nil, ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

// GetTokenFromRequest extracts the access token from the Authorization header
// or, failing that, from the access token cookie. Returns ErrNoToken when the
// request carries neither, so callers can distinguish "no token supplied"
// from "token present but invalid".
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}

	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", ErrNoToken
}
