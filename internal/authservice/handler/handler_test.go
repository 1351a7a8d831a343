package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihwan-dev/studyroom-reservation/internal/authservice/store"
	"github.com/jihwan-dev/studyroom-reservation/internal/config"
	"github.com/jihwan-dev/studyroom-reservation/internal/utils"
)

const testSecret = "auth-test-secret"

func setupAuthService(t *testing.T) (*store.MemoryStore, *AuthHandler) {
	t.Helper()
	s := store.NewMemory()
	cfg := config.AuthConfig{Env: "test", JWTSecret: testSecret, AccessTTLMin: 30, BcryptCost: 4}
	return s, NewAuthHandler(cfg, s)
}

func seedUser(t *testing.T, s *store.MemoryStore, username, password string) {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	require.NoError(t, s.CreateUser(context.Background(), store.User{
		Username:       username,
		HashedPassword: hash,
	}))
}

func postForm(path string, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req, httptest.NewRecorder()
}

func postJSON(path, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func bearerFor(t *testing.T, username string) string {
	t.Helper()
	tok, err := utils.NewSubjectToken(testSecret, username, 30)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func TestToken(t *testing.T) {
	s, h := setupAuthService(t)
	seedUser(t, s, "johndoe", "secretpass")

	e := echo.New()
	req, rec := postForm("/token", url.Values{"username": {"johndoe"}, "password": {"secretpass"}})
	require.NoError(t, h.Token(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token"`)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestTokenWrongPassword(t *testing.T) {
	s, h := setupAuthService(t)
	seedUser(t, s, "johndoe", "secretpass")

	e := echo.New()
	req, rec := postForm("/token", url.Values{"username": {"johndoe"}, "password": {"wrong"}})
	require.NoError(t, h.Token(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "incorrect username or password")
}

func TestTokenUnknownUser(t *testing.T) {
	_, h := setupAuthService(t)

	e := echo.New()
	req, rec := postForm("/token", url.Values{"username": {"ghost"}, "password": {"secretpass"}})
	require.NoError(t, h.Token(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister(t *testing.T) {
	s, h := setupAuthService(t)

	e := echo.New()
	req, rec := postJSON("/register", `{"username":"johndoe","password":"secretpass"}`)
	require.NoError(t, h.Register(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"johndoe"`)

	u, err := s.GetUser(context.Background(), "johndoe")
	require.NoError(t, err)
	assert.NotEqual(t, "secretpass", u.HashedPassword)
	assert.True(t, utils.VerifyPassword(u.HashedPassword, "secretpass"))
}

func TestRegisterDuplicate(t *testing.T) {
	s, h := setupAuthService(t)
	seedUser(t, s, "johndoe", "secretpass")

	e := echo.New()
	req, rec := postJSON("/register", `{"username":"johndoe","password":"secretpass"}`)
	require.NoError(t, h.Register(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	_, h := setupAuthService(t)

	cases := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"ab","password":"secretpass"}`},
		{"short password", `{"username":"johndoe","password":"short"}`},
		{"missing fields", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req, rec := postJSON("/register", tc.body)
			require.NoError(t, h.Register(e.NewContext(req, rec)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestMe(t *testing.T) {
	s, h := setupAuthService(t)
	seedUser(t, s, "johndoe", "secretpass")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", bearerFor(t, "johndoe"))
	rec := httptest.NewRecorder()
	require.NoError(t, h.Me(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"johndoe"`)
}

func TestMeNoToken(t *testing.T) {
	_, h := setupAuthService(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Me(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeExpiredToken(t *testing.T) {
	s, h := setupAuthService(t)
	seedUser(t, s, "johndoe", "secretpass")

	tok, err := utils.NewSubjectToken(testSecret, "johndoe", -1)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Me(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeVanishedUser(t *testing.T) {
	_, h := setupAuthService(t)

	// valid signature, but no such user in the store anymore
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", bearerFor(t, "deleted"))
	rec := httptest.NewRecorder()
	require.NoError(t, h.Me(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyPassword(t *testing.T) {
	s, h := setupAuthService(t)
	seedUser(t, s, "johndoe", "secretpass")

	e := echo.New()
	req, rec := postJSON("/verify-password", `{"password":"secretpass"}`)
	req.Header.Set("Authorization", bearerFor(t, "johndoe"))
	require.NoError(t, h.VerifyPassword(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "password verified")
}

func TestVerifyPasswordIncorrect(t *testing.T) {
	s, h := setupAuthService(t)
	seedUser(t, s, "johndoe", "secretpass")

	e := echo.New()
	req, rec := postJSON("/verify-password", `{"password":"wrong"}`)
	req.Header.Set("Authorization", bearerFor(t, "johndoe"))
	require.NoError(t, h.VerifyPassword(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "incorrect password")
}

func TestUpdateProfileRename(t *testing.T) {
	s, h := setupAuthService(t)
	seedUser(t, s, "johndoe", "secretpass")

	e := echo.New()
	req, rec := postJSON("/update-profile", `{"username":"janedoe"}`)
	req.Header.Set("Authorization", bearerFor(t, "johndoe"))
	require.NoError(t, h.UpdateProfile(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := s.GetUser(context.Background(), "johndoe")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	u, err := s.GetUser(context.Background(), "janedoe")
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(u.HashedPassword, "secretpass"))
}

func TestUpdateProfileRenameConflict(t *testing.T) {
	s, h := setupAuthService(t)
	seedUser(t, s, "johndoe", "secretpass")
	seedUser(t, s, "janedoe", "otherpass")

	e := echo.New()
	req, rec := postJSON("/update-profile", `{"username":"janedoe"}`)
	req.Header.Set("Authorization", bearerFor(t, "johndoe"))
	require.NoError(t, h.UpdateProfile(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateProfilePassword(t *testing.T) {
	s, h := setupAuthService(t)
	seedUser(t, s, "johndoe", "secretpass")

	e := echo.New()
	req, rec := postJSON("/update-profile", `{"password":"newsecret"}`)
	req.Header.Set("Authorization", bearerFor(t, "johndoe"))
	require.NoError(t, h.UpdateProfile(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)

	u, err := s.GetUser(context.Background(), "johndoe")
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(u.HashedPassword, "newsecret"))
	assert.False(t, utils.VerifyPassword(u.HashedPassword, "secretpass"))
}

func TestHealth(t *testing.T) {
	_, h := setupAuthService(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Health(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"database":"connected"`)
}
