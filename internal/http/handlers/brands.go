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

type BrandStore interface {
	Create(ctx context.Context, name string) (catalog.Brand, error)
	GetByID(ctx context.Context, id string) (catalog.Brand, error)
	List(ctx context.Context) ([]catalog.Brand, error)
	Update(ctx context.Context, id, name string) (catalog.Brand, error)
	Delete(ctx context.Context, id string) error
}

type BrandsHandler struct {
	repo BrandStore
}

func NewBrandsHandler(repo BrandStore) *BrandsHandler {
	return &BrandsHandler{repo: repo}
}

func (h *BrandsHandler) Create(ctx *gin.Context) {
	var req catalog.BrandRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	b, err := h.repo.Create(cctx, req.Name)

	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			RespondBadRequest(ctx, "Brand already exists.", nil)
			return
		}

		RespondInternal(ctx, "Could not create brand")
		return
	}

	ctx.JSON(http.StatusCreated, b)
}

func (h *BrandsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	brands, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list brands")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": brands,
		"count": len(brands),
	})
}

func (h *BrandsHandler) GetByID(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	b, err := h.repo.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Brand not found")
			return
		}

		RespondInternal(ctx, "Could not fetch brand")
		return
	}

	ctx.JSON(http.StatusOK, b)
}

func (h *BrandsHandler) Update(ctx *gin.Context) {
	var req catalog.BrandRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	b, err := h.repo.Update(cctx, ctx.Param("id"), req.Name)

	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrNotFound):
			RespondNotFound(ctx, "Brand not found")
		case errors.Is(err, postgres.ErrDuplicate):
			RespondBadRequest(ctx, "Brand already exists.", nil)
		default:
			RespondInternal(ctx, "Could not update brand")
		}

		return
	}

	ctx.JSON(http.StatusOK, b)
}

func (h *BrandsHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Brand not found")
			return
		}

		RespondInternal(ctx, "Could not delete brand")
		return
	}

	ctx.Status(http.StatusNoContent)
}
