package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projetointegrador/estoque-api/internal/config"
	"github.com/projetointegrador/estoque-api/internal/domain/catalog"
	"github.com/projetointegrador/estoque-api/internal/repo/postgres"
)

type CategoryStore interface {
	Create(ctx context.Context, name string) (catalog.Category, error)
	GetByID(ctx context.Context, id string) (catalog.Category, error)
	List(ctx context.Context) ([]catalog.Category, error)
	Update(ctx context.Context, id, name string) (catalog.Category, error)
	Delete(ctx context.Context, id string) error
}

type CategoriesHandler struct {
	repo CategoryStore
}

func NewCategoriesHandler(repo CategoryStore) *CategoriesHandler {
	return &CategoriesHandler{repo: repo}
}

func (h *CategoriesHandler) Create(ctx *gin.Context) {
	var req catalog.CategoryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.Create(cctx, req.Name)

	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			RespondBadRequest(ctx, "Category already exists.", nil)
			return
		}

		RespondInternal(ctx, "Could not create category")
		return
	}

	ctx.JSON(http.StatusCreated, c)
}

func (h *CategoriesHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	categories, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list categories")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": categories,
		"count": len(categories),
	})
}

func (h *CategoriesHandler) GetByID(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Category not found")
			return
		}

		RespondInternal(ctx, "Could not fetch category")
		return
	}

	ctx.JSON(http.StatusOK, c)
}

func (h *CategoriesHandler) Update(ctx *gin.Context) {
	var req catalog.CategoryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.Update(cctx, ctx.Param("id"), req.Name)

	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrNotFound):
			RespondNotFound(ctx, "Category not found")
		case errors.Is(err, postgres.ErrDuplicate):
			RespondBadRequest(ctx, "Category already exists.", nil)
		default:
			RespondInternal(ctx, "Could not update category")
		}

		return
	}

	ctx.JSON(http.StatusOK, c)
}

func (h *CategoriesHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Category not found")
			return
		}

		RespondInternal(ctx, "Could not delete category")
		return
	}

	ctx.Status(http.StatusNoContent)
}
