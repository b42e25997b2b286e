package observability_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/projetointegrador/estoque-api/internal/observability"
)

func gatherFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()

	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}

	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}

	return ""
}

func TestObserveDBRecordsDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	if err := prom.ObserveDB("users.list", func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mf := gatherFamily(t, reg, "estoque_db_query_duration_seconds")

	if mf == nil {
		t.Fatal("duration histogram was not recorded")
	}

	m := mf.GetMetric()[0]

	if got := labelValue(m, "op"); got != "users.list" {
		t.Fatalf("op label: got %q want %q", got, "users.list")
	}

	if got := labelValue(m, "status"); got != "ok" {
		t.Fatalf("status label: got %q want %q", got, "ok")
	}
}

func TestObserveDBClassifiesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, "unique_violation"},
		{"foreign key", &pgconn.PgError{Code: "23503"}, "foreign_key_violation"},
		{"deadline", errors.New("context deadline exceeded"), "timeout"},
		{"other", errors.New("boom"), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			prom := observability.NewProm(reg)

			err := prom.ObserveDB("users.create", func() error { return tc.err })

			if !errors.Is(err, tc.err) {
				t.Fatalf("error not passed through: got %v", err)
			}

			mf := gatherFamily(t, reg, "estoque_db_errors_total")

			if mf == nil {
				t.Fatal("error counter was not recorded")
			}

			m := mf.GetMetric()[0]

			if got := labelValue(m, "class"); got != tc.want {
				t.Fatalf("class label: got %q want %q", got, tc.want)
			}

			if got := labelValue(m, "op"); got != "users.create" {
				t.Fatalf("op label: got %q want %q", got, "users.create")
			}
		})
	}
}
