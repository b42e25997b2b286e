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

type PurchaseOrderStore interface {
	Create(ctx context.Context, req order.PurchaseOrderRequest) (order.PurchaseOrder, error)
	GetByID(ctx context.Context, id string) (order.PurchaseOrder, error)
	List(ctx context.Context) ([]order.PurchaseOrder, error)
	SetStatus(ctx context.Context, id string, status order.PurchaseStatus) (order.PurchaseOrder, error)
}

type PurchaseOrdersHandler struct {
	repo PurchaseOrderStore
}

func NewPurchaseOrdersHandler(repo PurchaseOrderStore) *PurchaseOrdersHandler {
	return &PurchaseOrdersHandler{repo: repo}
}

func (h *PurchaseOrdersHandler) Create(ctx *gin.Context) {
	var req order.PurchaseOrderRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	po, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create purchase order")
		return
	}

	ctx.JSON(http.StatusCreated, po)
}

func (h *PurchaseOrdersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	orders, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list purchase orders")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": orders,
		"count": len(orders),
	})
}

func (h *PurchaseOrdersHandler) GetByID(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	po, err := h.repo.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Purchase order not found")
			return
		}

		RespondInternal(ctx, "Could not fetch purchase order")
		return
	}

	ctx.JSON(http.StatusOK, po)
}

func (h *PurchaseOrdersHandler) SetStatus(ctx *gin.Context) {
	var req order.PurchaseStatusRequest

	if !BindJSON(ctx, &req) {
		return
	}

	status, ok := order.ParsePurchaseStatus(req.Status)

	if !ok {
		RespondBadRequest(ctx, "Unknown status: "+req.Status, nil)
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	po, err := h.repo.SetStatus(cctx, ctx.Param("id"), status)

	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrNotFound):
			RespondNotFound(ctx, "Purchase order not found")
		case errors.Is(err, postgres.ErrOrderClosed):
			RespondConflict(ctx, "Purchase order is already closed.")
		default:
			RespondInternal(ctx, "Could not update purchase order")
		}

		return
	}

	ctx.JSON(http.StatusOK, po)
}
