package handler

import (
	"context"      // context with cancellation for DB calls
	"database/sql" // sentinel errors from the repository layer
	"net/http"     // HTTP status codes
	"strings"      // input normalization
	"time"         // DB call timeouts

	"github.com/labstack/echo/v4"

	"github.com/jihwan-dev/studyroom-reservation/internal/config"
	"github.com/jihwan-dev/studyroom-reservation/internal/model"
	"github.com/jihwan-dev/studyroom-reservation/internal/repository"
	"github.com/jihwan-dev/studyroom-reservation/internal/utils"
)

// AuthHandler bundles dependencies for signup, login and logout.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type signupReq struct {
	StudentID       string `json:"student_id" form:"student_id"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}
type loginReq struct {
	StudentID string `json:"student_id" form:"student_id"`
	Password  string `json:"password" form:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID        uint64 `json:"id"`
	StudentID string `json:"student_id"`
	Role      string `json:"role"`
}
type authResp struct {
	User   userPart  `json:"user"`
	Access tokenPart `json:"access"`
}

// Signup creates a student account.  Password and confirmation must
// match; a duplicate student id is rejected with 409.  On success the
// user is logged in immediately and receives an access token.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	if req.StudentID == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "student_id/password required"})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passwords do not match"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.StudentID, req.Password, model.RoleStudent, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrStudentIDExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "student id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, model.RoleStudent, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		User:   userPart{ID: uid, StudentID: req.StudentID, Role: model.RoleStudent},
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Login verifies credentials against the stored bcrypt hash and returns
// a fresh access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	if req.StudentID == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "student_id/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		User:   userPart{ID: u.ID, StudentID: u.StudentID, Role: u.Role},
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Logout is kept for clients that still call it.  Tokens are stateless,
// so the server has nothing to revoke; clients drop the token.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
