package prometheus

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/discochess/zst/internal/stats"
)

// gather returns the metric family named name, or nil.
func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestNew_NilRegistry(t *testing.T) {
	c := New(nil)
	if c.registry == nil {
		t.Fatal("registry should not be nil")
	}
	if c.Gatherer() == nil {
		t.Error("Gatherer() should not be nil")
	}
}

func TestCollector_IncCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncCounter(stats.MetricInputBytes, 5)
	c.IncCounter(stats.MetricInputBytes, 3)

	mf := gather(t, reg, stats.MetricInputBytes)
	if mf == nil {
		t.Fatalf("counter %s not found in registry", stats.MetricInputBytes)
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 8 {
		t.Errorf("counter value = %v, want 8", got)
	}
}

func TestCollector_SetGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.SetGauge(stats.MetricLastSuccess, 42)
	c.SetGauge(stats.MetricLastSuccess, 43)

	mf := gather(t, reg, stats.MetricLastSuccess)
	if mf == nil {
		t.Fatalf("gauge %s not found in registry", stats.MetricLastSuccess)
	}
	if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 43 {
		t.Errorf("gauge value = %v, want 43", got)
	}
}

func TestCollector_ObserveHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveHistogram(stats.MetricDuration, 0.5)
	c.ObserveHistogram(stats.MetricDuration, 1.5)
	c.ObserveHistogram(stats.MetricDuration, 2.5)

	mf := gather(t, reg, stats.MetricDuration)
	if mf == nil {
		t.Fatalf("histogram %s not found in registry", stats.MetricDuration)
	}
	if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 3 {
		t.Errorf("histogram count = %v, want 3", got)
	}
}

func TestCollector_ConcurrentAccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.IncCounter("concurrent_counter", 1)
				c.ObserveHistogram("concurrent_histogram", float64(j))
			}
		}()
	}
	wg.Wait()

	if mf := gather(t, reg, "concurrent_counter"); mf == nil {
		t.Error("concurrent_counter not found")
	} else if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1000 {
		t.Errorf("counter value = %v, want 1000", got)
	}
	if mf := gather(t, reg, "concurrent_histogram"); mf == nil {
		t.Error("concurrent_histogram not found")
	} else if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1000 {
		t.Errorf("histogram count = %v, want 1000", got)
	}
}

func TestCollector_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()

	existing := prometheus.NewCounter(prometheus.CounterOpts{
		Name: stats.MetricRuns,
		Help: stats.MetricRuns,
	})
	reg.MustRegister(existing)
	existing.Add(100)

	c := New(reg)
	c.IncCounter(stats.MetricRuns, 5)

	mf := gather(t, reg, stats.MetricRuns)
	if mf == nil {
		t.Fatal("counter not found")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 105 {
		t.Errorf("counter value = %v, want 105", got)
	}
}

func TestCollector_WriteTextfile(t *testing.T) {
	c := New(nil)
	c.IncCounter(stats.MetricOutputBytes, 1234)

	path := filepath.Join(t.TempDir(), "zst.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), stats.MetricOutputBytes+" 1234") {
		t.Errorf("textfile missing counter line:\n%s", data)
	}
}
