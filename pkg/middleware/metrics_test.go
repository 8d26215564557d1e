package middleware

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/vango-dev/arbor/pkg/arbor"
)

type itemParams struct {
	Name string
	Fail bool
}

var (
	leaf = arbor.Define("Leaf", func(m *arbor.Model, p itemParams) {
		if p.Fail {
			panic("leaf failed")
		}
	})
	list = arbor.Define("List", func(m *arbor.Model, p []itemParams) {
		for _, it := range p {
			m.PushChild(leaf.New(it).WithKey(it.Name))
		}
	})
)

func quietModel(opts ...arbor.Option) *arbor.Model {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return arbor.New(append([]arbor.Option{arbor.WithLogger(logger)}, opts...)...)
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusObserver_RecordsLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	mt := Prometheus(WithRegistry(reg))
	m := quietModel(arbor.WithObserver(mt))

	if err := m.Render(list.New([]itemParams{{Name: "a"}, {Name: "b"}})); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := m.Render(list.New([]itemParams{{Name: "a"}})); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checks := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"created", mt.lifecycleTotal.WithLabelValues("created"), 3},
		{"destroyed", mt.lifecycleTotal.WithLabelValues("destroyed"), 1},
		{"updated", mt.lifecycleTotal.WithLabelValues("updated"), 1},
		{"live", mt.liveScopes, 2},
		{"list processed", mt.processedTotal.WithLabelValues("List", "success"), 2},
		{"leaf processed", mt.processedTotal.WithLabelValues("Leaf", "success"), 2},
		{"idle", mt.idleTotal, 2},
		{"queue", mt.queueDepth, 0},
	}
	for _, c := range checks {
		if got := testutil.ToFloat64(c.c); got != c.want {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}
	if got := metricHistogramCount(t, mt.processDuration.WithLabelValues("Leaf")); got != 2 {
		t.Errorf("process_duration_seconds(Leaf) count = %d, want 2", got)
	}
}

func TestPrometheusObserver_RecordsErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	mt := Prometheus(WithRegistry(reg), WithNamespace("test"), WithSubsystem("ui"))
	m := quietModel(arbor.WithObserver(mt))

	if err := m.Render(list.New([]itemParams{{Name: "a", Fail: true}})); err == nil {
		t.Fatal("expected render error")
	}

	if got := testutil.ToFloat64(mt.renderErrors.WithLabelValues("Leaf", "render")); got != 1 {
		t.Errorf("render_errors_total(Leaf, render) = %v, want 1", got)
	}
	if got := testutil.ToFloat64(mt.processedTotal.WithLabelValues("Leaf", "error")); got != 1 {
		t.Errorf("scopes_processed_total(Leaf, error) = %v, want 1", got)
	}

	n, err := testutil.GatherAndCount(reg, "test_ui_render_errors_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if n != 1 {
		t.Errorf("gathered %d render error series, want 1", n)
	}
}

func TestErrorPhase(t *testing.T) {
	if got := errorPhase(&arbor.RenderError{Phase: "cleanup"}); got != "cleanup" {
		t.Errorf("errorPhase(RenderError) = %q", got)
	}
	if got := errorPhase(io.EOF); got != "middleware" {
		t.Errorf("errorPhase(EOF) = %q", got)
	}
}
