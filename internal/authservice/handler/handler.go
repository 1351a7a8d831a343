package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jihwan-dev/studyroom-reservation/internal/authservice/store"
	"github.com/jihwan-dev/studyroom-reservation/internal/config"
	"github.com/jihwan-dev/studyroom-reservation/internal/utils"
)

// AuthHandler implements the token-issuing and profile endpoints of the
// auth service.  Token verification is purely cryptographic (signature +
// expiry); the user record is re-fetched from the store on every
// authenticated call, never cached beyond request scope.
type AuthHandler struct {
	Cfg      config.AuthConfig
	Store    store.Store
	validate *validator.Validate
}

func NewAuthHandler(cfg config.AuthConfig, s store.Store) *AuthHandler {
	if s == nil {
		panic("nil store passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Store: s, validate: validator.New()}
}

// ----- DTOs -----

type tokenReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
type registerReq struct {
	Username string `json:"username" validate:"required,min=4,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}
type verifyPasswordReq struct {
	Password string `json:"password"`
}
type updateProfileReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userView struct {
	Username string `json:"username"`
	Disabled bool   `json:"disabled"`
}

// Token handles POST /token: the OAuth2-style password grant.  The body
// is form-encoded username/password; the response carries a bearer token
// whose subject is the username.
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Store.GetUser(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect username or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	if !utils.VerifyPassword(u.HashedPassword, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect username or password"})
	}

	access, err := utils.NewSubjectToken(h.Cfg.JWTSecret, u.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": access.Token,
		"token_type":   "bearer",
	})
}

// Register handles POST /register.  Usernames are unique; duplicates get
// a 409.  The password is stored only as a bcrypt hash.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u := store.User{Username: req.Username, HashedPassword: hash, Disabled: false}
	if err := h.Store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.JSON(http.StatusCreated, userView{Username: u.Username, Disabled: u.Disabled})
}

// Me handles GET /users/me for the bearer-authenticated caller.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
	}
	return c.JSON(http.StatusOK, userView{Username: u.Username, Disabled: u.Disabled})
}

// VerifyPassword handles POST /verify-password: re-checks the caller's
// password without issuing anything.
func (h *AuthHandler) VerifyPassword(c echo.Context) error {
	u, err := h.currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
	}
	var req verifyPasswordReq
	if err := c.Bind(&req); err != nil || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
	}
	if !utils.VerifyPassword(u.HashedPassword, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "incorrect password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password verified"})
}

// UpdateProfile handles POST /update-profile.  Either field may be
// omitted; an empty password is ignored rather than stored.  Changing the
// username moves the document and fails with 409 when the new name is
// taken.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	u, err := h.currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)

	ctx, cancel := reqCtx(c)
	defer cancel()

	if req.Username != "" && req.Username != u.Username {
		if err := h.Store.Rename(ctx, u.Username, req.Username); err != nil {
			if errors.Is(err, store.ErrUserExists) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
		}
		u.Username = req.Username
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
		}
		u.HashedPassword = hash
		if err := h.Store.UpdateUser(ctx, u); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated successfully"})
}

// Health handles GET /health and reports store connectivity.
func (h *AuthHandler) Health(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	status := "healthy"
	storeStatus := "connected"
	if err := h.Store.Ping(ctx); err != nil {
		status = "unhealthy"
		storeStatus = "not connected"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":    status,
		"database":  storeStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// currentUser validates the bearer token and re-fetches the user record.
// Expired or malformed tokens and vanished users all collapse into a
// single error so handlers return one uniform 401.
func (h *AuthHandler) currentUser(c echo.Context) (store.User, error) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return store.User{}, utils.ErrInvalidToken
	}
	sub, err := utils.ParseSubject(h.Cfg.JWTSecret, strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return store.User{}, err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	return h.Store.GetUser(ctx, sub)
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// RegisterRoutes wires the auth service surface onto an Echo instance.
func RegisterRoutes(e *echo.Echo, h *AuthHandler) {
	e.POST("/token", h.Token)
	e.POST("/register", h.Register)
	e.GET("/users/me", h.Me)
	e.POST("/verify-password", h.VerifyPassword)
	e.POST("/update-profile", h.UpdateProfile)
	e.GET("/health", h.Health)
}
