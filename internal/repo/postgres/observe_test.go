package postgres

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/projetointegrador/estoque-api/internal/observability"
)

// Every repo funnels its operations through observe, so a nil metrics
// handle must be a plain passthrough and a real one must see the op.
func TestObserveNilPromPassthrough(t *testing.T) {
	repos := map[string]func(op string, fn func() error) error{
		"users":           NewUsersRepo(nil, nil).observe,
		"categories":      NewCategoriesRepo(nil, nil).observe,
		"brands":          NewBrandsRepo(nil, nil).observe,
		"suppliers":       NewSuppliersRepo(nil, nil).observe,
		"clients":         NewClientsRepo(nil, nil).observe,
		"products":        NewProductsRepo(nil, nil).observe,
		"sales":           NewSalesRepo(nil, nil).observe,
		"purchase_orders": NewPurchaseOrdersRepo(nil, nil).observe,
	}

	sentinel := errors.New("boom")

	for name, observe := range repos {
		t.Run(name, func(t *testing.T) {
			calls := 0

			err := observe(name+".op", func() error {
				calls++
				return sentinel
			})

			if !errors.Is(err, sentinel) {
				t.Fatalf("error not passed through: %v", err)
			}

			if calls != 1 {
				t.Fatalf("fn called %d times, want 1", calls)
			}
		})
	}
}

func TestObserveRecordsOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	repo := NewUsersRepo(nil, prom)

	if err := repo.observe("users.get_by_id", func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	families, err := reg.Gather()

	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false

	for _, mf := range families {
		if mf.GetName() != "estoque_db_query_duration_seconds" {
			continue
		}

		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "op" && lp.GetValue() == "users.get_by_id" {
					found = true
				}
			}
		}
	}

	if !found {
		t.Fatal("repo operation was not observed")
	}
}
