package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/config"
	"github.com/hmsdev/hotel-frontdesk/internal/model"
	"github.com/hmsdev/hotel-frontdesk/internal/repository"
	"github.com/hmsdev/hotel-frontdesk/internal/utils"
)

// UserAdminHandler serves user account management. Admins may do
// anything; managers may manage standard and manager accounts but may not
// create, edit or delete admins.
type UserAdminHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserAdminHandler(cfg config.Config, users *repository.UserRepo) *UserAdminHandler {
	return &UserAdminHandler{Cfg: cfg, Users: users}
}

type userReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// managerTouchingAdmin reports whether the caller is a manager acting on
// an admin account or assigning the admin role.
func managerTouchingAdmin(callerRole, targetRole string) bool {
	return callerRole == model.RoleManager && targetRole == model.RoleAdmin
}

// List returns all user accounts without password hashes.
func (h *UserAdminHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list users failed", err)
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role})
	}
	return c.JSON(http.StatusOK, out)
}

// Create registers a new account.
func (h *UserAdminHandler) Create(c echo.Context) error {
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if req.Username == "" || req.Password == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username, password and name required"})
	}
	if !model.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid role"})
	}
	if managerTouchingAdmin(getRole(c), req.Role) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "managers cannot create admin users"})
	}
	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return internalError(c, "hash password failed", err)
	}
	u := model.User{Username: req.Username, PasswordHash: hash, Name: req.Name, Role: req.Role}
	if err := h.Users.Create(c.Request().Context(), &u); err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusConflict, echo.Map{"message": "username already exists"})
		}
		return internalError(c, "create user failed", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "user created", "id": u.ID})
}

// Update rewrites an account. An empty password leaves the stored hash
// untouched.
func (h *UserAdminHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if req.Username == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username and name required"})
	}
	if !model.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid role"})
	}
	ctx := c.Request().Context()

	target, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return internalError(c, "load user failed", err)
	}
	caller := getRole(c)
	if managerTouchingAdmin(caller, target.Role) || managerTouchingAdmin(caller, req.Role) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "managers cannot modify admin users"})
	}

	newHash := ""
	if req.Password != "" {
		if newHash, err = utils.HashPassword(req.Password, h.Cfg.BcryptCost); err != nil {
			return internalError(c, "hash password failed", err)
		}
	}
	u := model.User{ID: id, Username: req.Username, Name: req.Name, Role: req.Role}
	if err := h.Users.Update(ctx, &u, newHash); err != nil {
		switch err {
		case repository.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		case repository.ErrUsernameExists:
			return c.JSON(http.StatusConflict, echo.Map{"message": "username already exists"})
		}
		return internalError(c, "update user failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated"})
}

// Delete removes an account. Users cannot delete themselves, so the last
// admin cannot lock everyone out by accident.
func (h *UserAdminHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	if uid, err := getUserID(c); err == nil && uid == id {
		return c.JSON(http.StatusConflict, echo.Map{"message": "cannot delete your own account"})
	}
	ctx := c.Request().Context()

	target, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return internalError(c, "load user failed", err)
	}
	if managerTouchingAdmin(getRole(c), target.Role) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "managers cannot delete admin users"})
	}
	if err := h.Users.Delete(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return internalError(c, "delete user failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
