package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gopikrish1/Personal-Finance-Tracker/internal/user"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	users map[string]*user.User
}

func (f *fakeUserService) Register(name, email, password, role string) (*user.User, error) {
	return nil, user.ErrInternalError
}

func (f *fakeUserService) GetUserByID(userID string) (*user.User, error) {
	if existing, ok := f.users[userID]; ok {
		return existing, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) GetUserByEmail(email string) (*user.User, error) {
	for _, existing := range f.users {
		if existing.Email == email {
			return existing, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) VerifyPassword(existing *user.User, password string) bool {
	return existing.PasswordHash == password
}

func (f *fakeUserService) ListUsers() ([]user.User, error) { return nil, nil }

func (f *fakeUserService) UpdateUserRole(userID, role string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) DeleteUser(userID string) error { return nil }

func newTestAuthService(users map[string]*user.User) (Service, JWTManagerInterface) {
	jwtManager := NewJWTManager("test-secret")
	return NewAuthService(&fakeUserService{users: users}, jwtManager, time.Hour), jwtManager
}

func nextHandler(called *bool, sawUserID, sawRole *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if id, ok := r.Context().Value("userID").(string); ok {
			*sawUserID = id
		}
		if role, ok := r.Context().Value("userRole").(string); ok {
			*sawRole = role
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	service, _ := newTestAuthService(nil)
	called := false
	var id, role string

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	w := httptest.NewRecorder()
	service.Authenticate()(nextHandler(&called, &id, &role)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
	assert.False(t, called)
}

func TestAuthenticate_InvalidTokenFormat(t *testing.T) {
	service, _ := newTestAuthService(nil)
	called := false
	var id, role string

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	service.Authenticate()(nextHandler(&called, &id, &role)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
	assert.False(t, called)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	service, jwtManager := newTestAuthService(map[string]*user.User{})
	token, err := jwtManager.GenerateAccessJWT("ghost", time.Hour)
	assert.NoError(t, err)

	called := false
	var id, role string
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	service.Authenticate()(nextHandler(&called, &id, &role)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
	assert.False(t, called)
}

func TestAuthenticate_AttachesAccountToContext(t *testing.T) {
	service, jwtManager := newTestAuthService(map[string]*user.User{
		"u-1": {ID: "u-1", Role: user.RoleReadOnly},
	})
	token, err := jwtManager.GenerateAccessJWT("u-1", time.Hour)
	assert.NoError(t, err)

	called := false
	var id, role string
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	service.Authenticate()(nextHandler(&called, &id, &role)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.True(t, called)
	assert.Equal(t, "u-1", id)
	assert.Equal(t, user.RoleReadOnly, role)
}

func TestRequireWritePermission_DeniesReadOnly(t *testing.T) {
	service, jwtManager := newTestAuthService(map[string]*user.User{
		"u-1": {ID: "u-1", Role: user.RoleReadOnly},
	})
	token, err := jwtManager.GenerateAccessJWT("u-1", time.Hour)
	assert.NoError(t, err)

	called := false
	var id, role string
	req := httptest.NewRequest(http.MethodDelete, "/api/transactions/t-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	chain := service.Authenticate()(service.RequireWritePermission()(nextHandler(&called, &id, &role)))
	chain.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Result().StatusCode)
	assert.False(t, called)
}

func TestRequireWritePermission_AllowsWriteRoles(t *testing.T) {
	for _, writeRole := range []string{user.RoleUser, user.RoleAdmin} {
		service, jwtManager := newTestAuthService(map[string]*user.User{
			"u-1": {ID: "u-1", Role: writeRole},
		})
		token, err := jwtManager.GenerateAccessJWT("u-1", time.Hour)
		assert.NoError(t, err)

		called := false
		var id, role string
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		chain := service.Authenticate()(service.RequireWritePermission()(nextHandler(&called, &id, &role)))
		chain.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Result().StatusCode, writeRole)
		assert.True(t, called, writeRole)
	}
}

func TestRequireUserManagement_AdminOnly(t *testing.T) {
	tests := []struct {
		role       string
		wantStatus int
	}{
		{user.RoleAdmin, http.StatusOK},
		{user.RoleUser, http.StatusForbidden},
		{user.RoleReadOnly, http.StatusForbidden},
	}

	for _, tt := range tests {
		service, jwtManager := newTestAuthService(map[string]*user.User{
			"u-1": {ID: "u-1", Role: tt.role},
		})
		token, err := jwtManager.GenerateAccessJWT("u-1", time.Hour)
		assert.NoError(t, err)

		called := false
		var id, role string
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		chain := service.Authenticate()(service.RequireUserManagement()(nextHandler(&called, &id, &role)))
		chain.ServeHTTP(w, req)

		assert.Equal(t, tt.wantStatus, w.Result().StatusCode, tt.role)
	}
}
