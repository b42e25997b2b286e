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

type ProductStore interface {
	Create(ctx context.Context, req catalog.ProductRequest) (catalog.Product, error)
	GetByID(ctx context.Context, id string) (catalog.Product, error)
	List(ctx context.Context) ([]catalog.Product, error)
	Update(ctx context.Context, id string, req catalog.ProductRequest) (catalog.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	repo ProductStore
}

func NewProductsHandler(repo ProductStore) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

func (h *ProductsHandler) Create(ctx *gin.Context) {
	var req catalog.ProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.repo.Create(cctx, req)

	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrDuplicate):
			RespondBadRequest(ctx, "A product with this name already exists.", nil)
		case errors.Is(err, postgres.ErrNotFound):
			RespondBadRequest(ctx, "Referenced category, brand or supplier does not exist.", nil)
		default:
			RespondInternal(ctx, "Could not create product")
		}

		return
	}

	ctx.JSON(http.StatusCreated, p)
}

func (h *ProductsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	products, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list products")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": products,
		"count": len(products),
	})
}

func (h *ProductsHandler) GetByID(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		RespondInternal(ctx, "Could not fetch product")
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) Update(ctx *gin.Context) {
	var req catalog.ProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.repo.Update(cctx, ctx.Param("id"), req)

	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrNotFound):
			RespondNotFound(ctx, "Product not found")
		case errors.Is(err, postgres.ErrDuplicate):
			RespondBadRequest(ctx, "A product with this name already exists.", nil)
		default:
			RespondInternal(ctx, "Could not update product")
		}

		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		RespondInternal(ctx, "Could not delete product")
		return
	}

	ctx.Status(http.StatusNoContent)
}
