package infrastructure

import (
	"context"
	"runtime"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics snapshots Go runtime memory figures. The aggregation phase
// keeps every raw value in memory, so heap size tracks input size.
type RuntimeMetrics struct {
	heapAlloc  metric.Int64Gauge
	totalAlloc metric.Int64Gauge
	sys        metric.Int64Gauge
	gcCycles   metric.Int64Gauge
}

// RuntimeStats is one snapshot.
type RuntimeStats struct {
	HeapAlloc  uint64
	TotalAlloc uint64
	Sys        uint64
	NumGC      uint32
}

// NewRuntimeMetrics creates the runtime gauges on meter
func NewRuntimeMetrics(meter metric.Meter) (*RuntimeMetrics, error) {
	heapAlloc, err := meter.Int64Gauge(
		"assemblystats_heap_alloc_bytes",
		metric.WithDescription("Bytes of allocated heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	totalAlloc, err := meter.Int64Gauge(
		"assemblystats_total_alloc_bytes",
		metric.WithDescription("Cumulative bytes allocated for heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	sys, err := meter.Int64Gauge(
		"assemblystats_sys_bytes",
		metric.WithDescription("Bytes of memory obtained from the OS"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	gcCycles, err := meter.Int64Gauge(
		"assemblystats_gc_cycles",
		metric.WithDescription("Completed GC cycles"),
	)
	if err != nil {
		return nil, err
	}

	return &RuntimeMetrics{
		heapAlloc:  heapAlloc,
		totalAlloc: totalAlloc,
		sys:        sys,
		gcCycles:   gcCycles,
	}, nil
}

// Collect reads the runtime memory stats and records them.
func (rm *RuntimeMetrics) Collect(ctx context.Context) RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := RuntimeStats{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
	}

	rm.heapAlloc.Record(ctx, int64(stats.HeapAlloc))
	rm.totalAlloc.Record(ctx, int64(stats.TotalAlloc))
	rm.sys.Record(ctx, int64(stats.Sys))
	rm.gcCycles.Record(ctx, int64(stats.NumGC))

	return stats
}
