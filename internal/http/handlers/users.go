package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projetointegrador/estoque-api/internal/auth"
	"github.com/projetointegrador/estoque-api/internal/config"
	"github.com/projetointegrador/estoque-api/internal/domain/user"
	"github.com/projetointegrador/estoque-api/internal/http/middlewares"
	"github.com/projetointegrador/estoque-api/internal/repo/postgres"
	"github.com/projetointegrador/estoque-api/internal/security"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Create(ctx context.Context, name, email, passwordHash string, roles []user.Role) (user.User, error)
	Update(ctx context.Context, u user.User) (user.User, error)
	Delete(ctx context.Context, id string) error
}

type UsersHandler struct {
	users  UserStore
	policy *auth.Policy
}

func NewUsersHandler(users UserStore, policy *auth.Policy) *UsersHandler {
	return &UsersHandler{users: users, policy: policy}
}

type CreateUserRequest struct {
	Name     string   `json:"name" binding:"required,min=2,max=120"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles" binding:"omitempty,dive,oneof=ADMIN USER"`
}

// Every field optional; only the present ones change.
type UpdateUserRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=2,max=120"`
	Email    *string  `json:"email" binding:"omitempty,email"`
	Password *string  `json:"password" binding:"omitempty,min=8"`
	Roles    []string `json:"roles" binding:"omitempty,dive,oneof=ADMIN USER"`
}

// caller resolves the authenticated account behind the request. A token
// whose subject no longer exists in storage is rejected.
func (h *UsersHandler) caller(ctx *gin.Context) (user.User, bool) {
	email, ok := middlewares.EmailFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity context")
		return user.User{}, false
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, email)

	if err != nil {
		RespondUnauthorized(ctx, "Authenticated user not found")
		return user.User{}, false
	}

	return u, true
}

func (h *UsersHandler) List(ctx *gin.Context) {
	email, _ := middlewares.EmailFromContext(ctx)

	if err := h.policy.CanListUsers(email); err != nil {
		RespondForbidden(ctx, "Only the administrator may list all users.")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	users, err := h.users.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": users,
		"count": len(users),
	})
}

func (h *UsersHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	caller, ok := h.caller(ctx)

	if !ok {
		return
	}

	// Permission is decided on the requested id alone, before the target
	// row is read.
	if err := h.policy.CanViewUser(caller, user.User{ID: id}); err != nil {
		RespondForbidden(ctx, "You may not view this user.")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	target, err := h.users.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, target)
}

func (h *UsersHandler) GetByEmail(ctx *gin.Context) {
	email := ctx.Param("email")

	caller, ok := h.caller(ctx)

	if !ok {
		return
	}

	if err := h.policy.CanViewUser(caller, user.User{Email: email}); err != nil {
		RespondForbidden(ctx, "You may not view this user.")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	target, err := h.users.GetByEmail(cctx, email)

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, target)
}

// Create serves both anonymous registration and admin-driven account
// creation; the route uses OptionalAuth.
func (h *UsersHandler) Create(ctx *gin.Context) {
	var req CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	roles := make([]user.Role, 0, len(req.Roles))

	for _, r := range req.Roles {
		role, ok := user.ParseRole(r)

		if !ok {
			RespondBadRequest(ctx, "Unknown role: "+r, nil)
			return
		}

		roles = append(roles, role)
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// Anonymous unless the optional token resolved to a stored account.
	var caller *user.User

	if email, ok := middlewares.EmailFromContext(ctx); ok {
		u, err := h.users.GetByEmail(cctx, email)

		if err != nil {
			RespondForbidden(ctx, "Authenticated user not found")
			return
		}

		caller = &u
	}

	if err := h.policy.CanCreateWithRoles(caller, roles); err != nil {
		RespondForbidden(ctx, "Only an ADMIN may create another ADMIN.")
		return
	}

	if len(roles) == 0 {
		roles = []user.Role{user.RoleUser}
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	created, err := h.users.Create(cctx, req.Name, req.Email, hash, roles)

	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			RespondBadRequest(ctx, "Email already registered.", nil)
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *UsersHandler) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	caller, ok := h.caller(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	target, err := h.users.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not fetch user")
		return
	}

	if err := h.policy.CanUpdateUser(caller, target); err != nil {
		RespondForbidden(ctx, "You may not update this user.")
		return
	}

	if req.Name != nil {
		target.Name = *req.Name
	}

	if req.Email != nil {
		target.Email = *req.Email
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := security.HashPassword(*req.Password)

		if err != nil {
			RespondInternal(ctx, "Could not update user")
			return
		}

		target.PasswordHash = hash
	}

	if len(req.Roles) > 0 {
		if err := h.policy.CanGrantRoles(caller); err != nil {
			RespondForbidden(ctx, "Only an ADMIN may change roles.")
			return
		}

		roles := make([]user.Role, 0, len(req.Roles))

		for _, r := range req.Roles {
			role, _ := user.ParseRole(r)
			roles = append(roles, role)
		}

		target.Roles = roles
	}

	updated, err := h.users.Update(cctx, target)

	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			RespondBadRequest(ctx, "Email already registered.", nil)
			return
		}

		RespondInternal(ctx, "Could not update user")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *UsersHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	caller, ok := h.caller(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	target, err := h.users.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not fetch user")
		return
	}

	// The check runs before any write; a denial leaves storage untouched.
	if err := h.policy.CanDeleteUser(caller, target); err != nil {
		if h.policy.IsBootstrapAdmin(target.Email) {
			RespondForbidden(ctx, "The default ADMIN account cannot be deleted.")
			return
		}

		RespondForbidden(ctx, "You may not delete this user.")
		return
	}

	if err := h.users.Delete(cctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not delete user")
		return
	}

	ctx.Status(http.StatusNoContent)
}
