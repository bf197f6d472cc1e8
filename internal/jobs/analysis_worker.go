package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"postmarket/internal/analyzer"
	"postmarket/internal/db"
	"postmarket/internal/metrics"
)

// AnalysisWorker runs website analysis in the background. It picks up
// requests that have never been analyzed, refreshes stale approved
// listings on a schedule, and accepts explicit enqueues after a
// submission.
type AnalysisWorker struct {
	db       *db.DB
	analyzer *analyzer.Analyzer
	interval time.Duration
	maxAge   time.Duration
	queue    chan uuid.UUID
}

// NewAnalysisWorker creates a new analysis worker.
func NewAnalysisWorker(database *db.DB, a *analyzer.Analyzer, interval, maxAge time.Duration) *AnalysisWorker {
	return &AnalysisWorker{
		db:       database,
		analyzer: a,
		interval: interval,
		maxAge:   maxAge,
		queue:    make(chan uuid.UUID, 64),
	}
}

// Enqueue schedules a request for analysis. It never blocks; if the queue
// is full the request is picked up by the next sweep instead.
func (w *AnalysisWorker) Enqueue(id uuid.UUID) {
	select {
	case w.queue <- id:
	default:
		slog.Warn("analysis queue full, deferring to next sweep", "request_id", id)
	}
}

// Start runs the worker loop until the context is cancelled.
func (w *AnalysisWorker) Start(ctx context.Context) {
	slog.Info("analysis worker started", "interval", w.interval, "max_age", w.maxAge)

	// Sweep immediately on start to catch anything left over from a
	// previous run.
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("analysis worker stopped")
			return
		case id := <-w.queue:
			w.analyzeOne(ctx, id, "submit")
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep analyzes all requests with no snapshot plus approved listings
// whose snapshot is older than maxAge.
func (w *AnalysisWorker) sweep(ctx context.Context) {
	requests, err := w.db.ListRequestsNeedingAnalysis(ctx, w.maxAge, 50)
	if err != nil {
		slog.Error("analysis sweep: failed to list requests", "error", err)
		return
	}
	if len(requests) == 0 {
		return
	}

	slog.Info("analysis sweep", "count", len(requests))

	for _, req := range requests {
		select {
		case <-ctx.Done():
			return
		default:
		}

		analysis := w.analyzer.Analyze(ctx, &req)
		if err := w.db.UpdateAnalysis(ctx, req.ID, analysis); err != nil {
			if !errors.Is(err, db.ErrRequestNotFound) {
				slog.Error("analysis sweep: failed to store analysis", "request_id", req.ID, "error", err)
			}
			continue
		}
		metrics.RecordAnalysisRun("refresh")

		// Delay between sites to avoid overwhelming external servers
		time.Sleep(1 * time.Second)
	}
}

// analyzeOne analyzes a single request, typically right after submission.
func (w *AnalysisWorker) analyzeOne(ctx context.Context, id uuid.UUID, trigger string) {
	req, err := w.db.GetRequestByID(ctx, id)
	if err != nil {
		if !errors.Is(err, db.ErrRequestNotFound) {
			slog.Error("analysis: failed to load request", "request_id", id, "error", err)
		}
		return
	}

	analysis := w.analyzer.Analyze(ctx, req)
	if err := w.db.UpdateAnalysis(ctx, id, analysis); err != nil {
		if !errors.Is(err, db.ErrRequestNotFound) {
			slog.Error("analysis: failed to store analysis", "request_id", id, "error", err)
		}
		return
	}
	metrics.RecordAnalysisRun(trigger)
}
