package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/deskhive/internal/domain"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) ResolveActor(ctx context.Context, userID string) (domain.Actor, *domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(1) == nil {
		return domain.Actor{}, nil, args.Error(2)
	}
	return args.Get(0).(domain.Actor), args.Get(1).(*domain.User), args.Error(2)
}

func newTestUser() *domain.User {
	return &domain.User{
		ID:       "u-1",
		Email:    "user@example.com",
		FullName: "Петров Петр",
		Role:     domain.RoleClient,
		IsActive: true,
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler := NewAuthHandler(mockSvc)

	mockSvc.On("Login", mock.Anything, "user@example.com", "password123").Return(newTestUser(), nil)

	body := `{"email":"user@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "u-1", data["id"])
	assert.Equal(t, "user@example.com", data["email"])
	assert.Equal(t, "user", data["role"])
	assert.NotContains(t, w.Body.String(), "password")
	mockSvc.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	handler := NewAuthHandler(new(MockAuthService))

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(`{invalid`)))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	handler := NewAuthHandler(new(MockAuthService))

	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"missing password", `{"email":"user@example.com"}`},
		{"missing email", `{"password":"password123"}`},
		{"malformed email", `{"email":"not-an-email","password":"password123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "email and password are required")
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler := NewAuthHandler(mockSvc)

	mockSvc.On("Login", mock.Anything, "user@example.com", "wrong").
		Return(nil, domain.ErrInvalidCredentials)

	body := `{"email":"user@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestAuthHandler_Login_DisabledAccount(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler := NewAuthHandler(mockSvc)

	mockSvc.On("Login", mock.Anything, "user@example.com", "password123").
		Return(nil, domain.ErrAccountDisabled)

	body := `{"email":"user@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mockSvc := new(MockAuthService)
	handler := NewAuthHandler(mockSvc)

	user := newTestUser()
	actor := domain.NewActor(user.ID, user.Role)
	mockSvc.On("ResolveActor", mock.Anything, "u-1").Return(actor, user, nil)

	req := authedRequest(http.MethodGet, "/users/me", nil, actor)
	w := httptest.NewRecorder()

	handler.Me(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "u-1", data["id"])
	assert.Equal(t, "Петров Петр", data["full_name"])
	mockSvc.AssertExpectations(t)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	handler := NewAuthHandler(new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()

	handler.Me(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
