package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/mstepanov-dev/recipebox/internal/jwt"
	"github.com/mstepanov-dev/recipebox/internal/models"
	"github.com/mstepanov-dev/recipebox/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRefreshTokenHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	refreshExp := 10 * 24 * time.Hour

	tests := []struct {
		name         string
		cookie       *http.Cookie
		mockSetup    func(m *MockRefresher)
		expectedCode int
		expectCookie bool
	}{
		{
			name:   "successful rotation",
			cookie: &http.Cookie{Name: jwt.RefreshTokenCookie, Value: "old-refresh"},
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "old-refresh").
					Return("new-access", "new-refresh", nil)
			},
			expectedCode: http.StatusOK,
			expectCookie: true,
		},
		{
			name:         "missing cookie",
			cookie:       nil,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "empty cookie value",
			cookie:       &http.Cookie{Name: jwt.RefreshTokenCookie, Value: ""},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:   "superseded or invalid token",
			cookie: &http.Cookie{Name: jwt.RefreshTokenCookie, Value: "stale-refresh"},
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "stale-refresh").
					Return("", "", services.ErrInvalidRefreshToken)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:   "internal error",
			cookie: &http.Cookie{Name: jwt.RefreshTokenCookie, Value: "old-refresh"},
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "old-refresh").
					Return("", "", errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRefresher(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRefreshTokenHandler(mockSvc, refreshExp)

			req := httptest.NewRequest(http.MethodPost, "/auth/refresh-token", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectCookie {
				var refreshCookie *http.Cookie
				for _, c := range rr.Result().Cookies() {
					if c.Name == jwt.RefreshTokenCookie {
						refreshCookie = c
					}
				}
				if assert.NotNil(t, refreshCookie) {
					assert.Equal(t, "new-refresh", refreshCookie.Value)
				}

				var resp models.APIResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				data, _ := resp.Data.(map[string]interface{})
				assert.Equal(t, "new-access", data["accessToken"])
			}
		})
	}
}
