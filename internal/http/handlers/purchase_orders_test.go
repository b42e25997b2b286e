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

type fakePurchaseOrderStore struct {
	statusErr error
	po        order.PurchaseOrder
}

func (f *fakePurchaseOrderStore) Create(ctx context.Context, req order.PurchaseOrderRequest) (order.PurchaseOrder, error) {
	return f.po, nil
}

func (f *fakePurchaseOrderStore) GetByID(ctx context.Context, id string) (order.PurchaseOrder, error) {
	return f.po, nil
}

func (f *fakePurchaseOrderStore) List(ctx context.Context) ([]order.PurchaseOrder, error) {
	return []order.PurchaseOrder{f.po}, nil
}

func (f *fakePurchaseOrderStore) SetStatus(ctx context.Context, id string, status order.PurchaseStatus) (order.PurchaseOrder, error) {
	if f.statusErr != nil {
		return order.PurchaseOrder{}, f.statusErr
	}

	f.po.Status = status

	return f.po, nil
}

func patchStatus(t *testing.T, store *fakePurchaseOrderStore, body string) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)

	h := handlers.NewPurchaseOrdersHandler(store)

	r := gin.New()
	r.PATCH("/purchase-orders/:id/status", h.SetStatus)

	req := httptest.NewRequest(http.MethodPatch, "/purchase-orders/po-1/status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestSetPurchaseOrderStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"receive pending order", `{"status":"RECEIVED"}`, nil, http.StatusOK},
		{"cancel pending order", `{"status":"CANCELLED"}`, nil, http.StatusOK},
		{"already closed", `{"status":"RECEIVED"}`, postgres.ErrOrderClosed, http.StatusConflict},
		{"unknown order", `{"status":"RECEIVED"}`, postgres.ErrNotFound, http.StatusNotFound},
		{"bad status value", `{"status":"SHIPPED"}`, nil, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakePurchaseOrderStore{
				statusErr: tc.err,
				po:        order.PurchaseOrder{ID: "po-1", Status: order.PurchasePending},
			}

			w := patchStatus(t, store, tc.body)

			if w.Code != tc.want {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
