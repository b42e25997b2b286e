package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/projetointegrador/estoque-api/internal/domain/order"
	"github.com/projetointegrador/estoque-api/internal/http/handlers"
	"github.com/projetointegrador/estoque-api/internal/repo/postgres"
)

type fakeSaleStore struct {
	createErr error
	sale      order.Sale
}

func (f *fakeSaleStore) Create(ctx context.Context, req order.SaleRequest) (order.Sale, error) {
	if f.createErr != nil {
		return order.Sale{}, f.createErr
	}

	return f.sale, nil
}

func (f *fakeSaleStore) GetByID(ctx context.Context, id string) (order.Sale, error) {
	if f.sale.ID != id {
		return order.Sale{}, postgres.ErrNotFound
	}

	return f.sale, nil
}

func (f *fakeSaleStore) List(ctx context.Context) ([]order.Sale, error) {
	return []order.Sale{f.sale}, nil
}

func salesRouter(store *fakeSaleStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := handlers.NewSalesHandler(store)

	r := gin.New()
	r.POST("/sales", h.Create)
	r.GET("/sales/:id", h.GetByID)

	return r
}

const saleBody = `{"clientId":"7b0d9f64-3d26-4f0a-9a1f-111111111111","items":[{"productId":"7b0d9f64-3d26-4f0a-9a1f-222222222222","quantity":3}]}`

func TestCreateSale(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"recorded", nil, http.StatusCreated},
		{"insufficient stock", postgres.ErrInsufficientStock, http.StatusConflict},
		{"unknown product", postgres.ErrNotFound, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := salesRouter(&fakeSaleStore{createErr: tc.err, sale: order.Sale{ID: "s-1"}})

			req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString(saleBody))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestCreateSaleRejectsEmptyItems(t *testing.T) {
	r := salesRouter(&fakeSaleStore{})

	body := `{"clientId":"7b0d9f64-3d26-4f0a-9a1f-111111111111","items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestGetSaleNotFound(t *testing.T) {
	r := salesRouter(&fakeSaleStore{sale: order.Sale{ID: "s-1"}})

	req := httptest.NewRequest(http.MethodGet, "/sales/s-2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusNotFound, w.Body.String())
	}
}
