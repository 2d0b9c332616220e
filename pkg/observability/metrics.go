package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRequestsTotal    = "raincatch.requests.total"
	metricRequestDuration  = "raincatch.request.duration.seconds"
	metricErrorsTotal      = "raincatch.errors.total"
	metricInflightRequests = "raincatch.inflight.requests"
	metricTerrainPositions = "raincatch.terrain.positions"
	metricWaterCollected   = "raincatch.water.collected"

	attrOp         = "op"
	attrStatus     = "status"
	attrDegeneracy = "degeneracy"

	// StatusOK marks a successful request.
	StatusOK = "ok"
	// StatusError marks a failed request.
	StatusError = "error"
)

// durationBucketBoundaries covers 10µs to 1s; a maximal terrain solves in
// well under a second.
var durationBucketBoundaries = []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// positionBucketBoundaries spans terrain sizes up to the 32000-position limit.
var positionBucketBoundaries = []float64{3, 10, 100, 1000, 8000, 16000, 32000}

// REDMetrics holds the OTel instruments for Rate, Error, Duration metrics
// plus the terrain-level instruments recorded per evaluation.
type REDMetrics struct {
	requestsTotal    metric.Int64Counter
	requestDuration  metric.Float64Histogram
	errorsTotal      metric.Int64Counter
	inflightRequests metric.Int64UpDownCounter
	positions        metric.Int64Histogram
	waterCollected   metric.Int64Counter
}

// NewREDMetrics creates metric instruments from the given meter.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	reqTotal, err := mt.Int64Counter(metricRequestsTotal,
		metric.WithDescription("Total number of requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRequestsTotal, err)
	}

	reqDuration, err := mt.Float64Histogram(metricRequestDuration,
		metric.WithDescription("Request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRequestDuration, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricInflightRequests,
		metric.WithDescription("Number of in-flight requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInflightRequests, err)
	}

	positions, err := mt.Int64Histogram(metricTerrainPositions,
		metric.WithDescription("Number of positions per evaluated terrain"),
		metric.WithUnit("{position}"),
		metric.WithExplicitBucketBoundaries(positionBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricTerrainPositions, err)
	}

	water, err := mt.Int64Counter(metricWaterCollected,
		metric.WithDescription("Units of water found trapped across all evaluations"),
		metric.WithUnit("{unit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricWaterCollected, err)
	}

	return &REDMetrics{
		requestsTotal:    reqTotal,
		requestDuration:  reqDuration,
		errorsTotal:      errTotal,
		inflightRequests: inflight,
		positions:        positions,
		waterCollected:   water,
	}, nil
}

// RecordRequest records a completed request with its operation, status, and duration.
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.requestsTotal.Add(ctx, 1, attrs)
	rm.requestDuration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		rm.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrOp, op),
		))
	}
}

// RecordTerrain records the size of an evaluated terrain and the water it held.
func (rm *REDMetrics) RecordTerrain(ctx context.Context, positions, water int, degeneracy string) {
	attrs := metric.WithAttributes(attribute.String(attrDegeneracy, degeneracy))

	rm.positions.Record(ctx, int64(positions), attrs)
	rm.waterCollected.Add(ctx, int64(water), attrs)
}

// TrackInflight increments the in-flight gauge and returns a function to decrement it.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflightRequests.Add(ctx, 1, attrs)

	return func() {
		rm.inflightRequests.Add(ctx, -1, attrs)
	}
}
