package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndParseAccess(t *testing.T) {
	j := New("test-secret", time.Minute, time.Hour)

	userID := uuid.New()
	ctx := context.Background()

	token, err := j.GenerateAccess(ctx, userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedID, err := j.ParseAccessToken(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestJWT_GenerateAndParseRefresh(t *testing.T) {
	j := New("test-secret", time.Minute, time.Hour)

	userID := uuid.New()
	ctx := context.Background()

	token, err := j.GenerateRefresh(ctx, userID)
	assert.NoError(t, err)

	parsedID, err := j.ParseRefreshToken(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestJWT_KindMismatch(t *testing.T) {
	j := New("test-secret", time.Minute, time.Hour)
	ctx := context.Background()

	accessToken, err := j.GenerateAccess(ctx, uuid.New())
	assert.NoError(t, err)
	refreshToken, err := j.GenerateRefresh(ctx, uuid.New())
	assert.NoError(t, err)

	// An access token must not pass refresh verification and vice versa
	_, err = j.ParseRefreshToken(ctx, accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = j.ParseAccessToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New("test-secret", -time.Minute, -time.Minute) // already expired
	ctx := context.Background()

	token, err := j.GenerateAccess(ctx, uuid.New())
	assert.NoError(t, err)

	_, err = j.ParseAccessToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New("secret", time.Minute, time.Hour)
	ctx := context.Background()

	_, err := j.ParseAccessToken(ctx, "invalid.token.string")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret
	other := New("other-secret", time.Minute, time.Hour)
	token, err := other.GenerateAccess(ctx, uuid.New())
	assert.NoError(t, err)

	_, err = j.ParseAccessToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New("secret", time.Minute, time.Hour)
	ctx := context.Background()

	tests := []struct {
		name      string
		setup     func(r *http.Request)
		wantToken string
		wantErr   error
	}{
		{
			name:    "no token at all",
			setup:   func(r *http.Request) {},
			wantErr: ErrNoToken,
		},
		{
			name: "bearer header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer sometoken")
			},
			wantToken: "sometoken",
		},
		{
			name: "malformed header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "sometoken")
			},
			wantErr: nil, // error, but not ErrNoToken
		},
		{
			name: "cookie fallback",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookietoken"})
			},
			wantToken: "cookietoken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(r)

			token, err := j.GetTokenFromRequest(ctx, r)
			if tt.wantToken != "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				return
			}
			assert.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
