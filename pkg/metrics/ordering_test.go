package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestMetricsExportCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSnapshot(true)
	m.ObserveSnapshot(false)
	m.ObserveOrder(true, 250)
	m.ObserveOrder(false, 0)
	m.ObserveServiceRequest("water", true)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "menu_snapshot_total", "result", ResultOK); err != nil || got != 1 {
		t.Fatalf("snapshot ok counter: got %v err %v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "order_submissions_total", "result", ResultFailed); err != nil || got != 1 {
		t.Fatalf("order failed counter: got %v err %v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "service_requests_total", "kind", "water"); err != nil || got != 1 {
		t.Fatalf("service request counter: got %v err %v", got, err)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveSnapshot(true)
	m.ObserveOrder(true, 10)
	m.ObserveServiceRequest("bill", false)

	empty := New(nil)
	empty.ObserveSnapshot(false)
	empty.ObserveOrder(false, 0)
	empty.ObserveServiceRequest("", true)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, labelKey, labelValue string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == labelKey && lp.GetValue() == labelValue {
					return m.GetCounter().GetValue(), nil
				}
			}
		}
	}
	return 0, fmt.Errorf("metric %s{%s=%q} not found", name, labelKey, labelValue)
}
