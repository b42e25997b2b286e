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

type SupplierStore interface {
	Create(ctx context.Context, req catalog.SupplierRequest) (catalog.Supplier, error)
	GetByID(ctx context.Context, id string) (catalog.Supplier, error)
	List(ctx context.Context) ([]catalog.Supplier, error)
	Update(ctx context.Context, id string, req catalog.SupplierRequest) (catalog.Supplier, error)
	Delete(ctx context.Context, id string) error
}

type SuppliersHandler struct {
	repo SupplierStore
}

func NewSuppliersHandler(repo SupplierStore) *SuppliersHandler {
	return &SuppliersHandler{repo: repo}
}

func (h *SuppliersHandler) Create(ctx *gin.Context) {
	var req catalog.SupplierRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	s, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			RespondBadRequest(ctx, "A supplier with this CNPJ already exists.", nil)
			return
		}

		RespondInternal(ctx, "Could not create supplier")
		return
	}

	ctx.JSON(http.StatusCreated, s)
}

func (h *SuppliersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	suppliers, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list suppliers")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": suppliers,
		"count": len(suppliers),
	})
}

func (h *SuppliersHandler) GetByID(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Supplier not found")
			return
		}

		RespondInternal(ctx, "Could not fetch supplier")
		return
	}

	ctx.JSON(http.StatusOK, s)
}

func (h *SuppliersHandler) Update(ctx *gin.Context) {
	var req catalog.SupplierRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	s, err := h.repo.Update(cctx, ctx.Param("id"), req)

	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrNotFound):
			RespondNotFound(ctx, "Supplier not found")
		case errors.Is(err, postgres.ErrDuplicate):
			RespondBadRequest(ctx, "A supplier with this CNPJ already exists.", nil)
		default:
			RespondInternal(ctx, "Could not update supplier")
		}

		return
	}

	ctx.JSON(http.StatusOK, s)
}

func (h *SuppliersHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Supplier not found")
			return
		}

		RespondInternal(ctx, "Could not delete supplier")
		return
	}

	ctx.Status(http.StatusNoContent)
}
