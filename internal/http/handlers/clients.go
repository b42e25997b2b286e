package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projetointegrador/estoque-api/internal/config"
	"github.com/projetointegrador/estoque-api/internal/domain/client"
	"github.com/projetointegrador/estoque-api/internal/repo/postgres"
)

type ClientStore interface {
	Create(ctx context.Context, req client.ClientRequest) (client.Client, error)
	GetByID(ctx context.Context, id string) (client.Client, error)
	List(ctx context.Context) ([]client.Client, error)
	Update(ctx context.Context, id string, req client.ClientRequest) (client.Client, error)
	Delete(ctx context.Context, id string) error
}

type ClientsHandler struct {
	repo ClientStore
}

func NewClientsHandler(repo ClientStore) *ClientsHandler {
	return &ClientsHandler{repo: repo}
}

func (h *ClientsHandler) Create(ctx *gin.Context) {
	var req client.ClientRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			RespondBadRequest(ctx, "A client with this CPF already exists.", nil)
			return
		}

		RespondInternal(ctx, "Could not create client")
		return
	}

	ctx.JSON(http.StatusCreated, c)
}

func (h *ClientsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	clients, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list clients")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": clients,
		"count": len(clients),
	})
}

func (h *ClientsHandler) GetByID(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Client not found")
			return
		}

		RespondInternal(ctx, "Could not fetch client")
		return
	}

	ctx.JSON(http.StatusOK, c)
}

func (h *ClientsHandler) Update(ctx *gin.Context) {
	var req client.ClientRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.Update(cctx, ctx.Param("id"), req)

	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrNotFound):
			RespondNotFound(ctx, "Client not found")
		case errors.Is(err, postgres.ErrDuplicate):
			RespondBadRequest(ctx, "A client with this CPF already exists.", nil)
		default:
			RespondInternal(ctx, "Could not update client")
		}

		return
	}

	ctx.JSON(http.StatusOK, c)
}

func (h *ClientsHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			RespondNotFound(ctx, "Client not found")
			return
		}

		RespondInternal(ctx, "Could not delete client")
		return
	}

	ctx.Status(http.StatusNoContent)
}
