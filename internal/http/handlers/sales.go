package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projetointegrador/estoque-api/internal/config"
	"github.com/projetointegrador/estoque-api/internal/domain/order"
	"github.com/projetointegrador/estoque-api/internal/repo/postgres"
)

type SaleStore interface {
	Create(ctx context.Context, req order.SaleRequest) (order.Sale, error)
	GetByID(ctx context.Context, id string) (order.Sale, error)
	List(ctx context.Context) ([]order.Sale, error)
}

type SalesHandler struct {
	repo SaleStore
}

func NewSalesHandler(repo SaleStore) *SalesHandler {
	return &SalesHandler{repo: repo}
}

func (h *SalesHandler) Create(ctx *gin.Context) {
	var req order.SaleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	s, err := h.repo.Create(cctx, req)

	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrInsufficientStock):
			RespondConflict(ctx, "Insufficient stock for one or more items.")
		case errors.Is(err, postgres.ErrNotFound):
			RespondBadRequest(ctx, "Referenced product does not exist.", nil)
		default:
			RespondInternal(ctx, "Could not record sale")
		}

		return
	}

	ctx.JSON(http.StatusCreated, s)
}

func (h *SalesHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	sales, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list sales")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": sales,
		"count": len(sales),
	})
}

func (h *SalesHandler) GetByID(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	s, err := h.repo.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Sale not found")
			return
		}

		RespondInternal(ctx, "Could not fetch sale")
		return
	}

	ctx.JSON(http.StatusOK, s)
}
