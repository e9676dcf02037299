// Package likes implements the liked-post query engine: it resolves a
// handle, walks the paginated liked-post history under the client-side rate
// limit, accumulates normalized in-window records, and folds them into a
// statistics summary.
package likes

import (
	"context"
	"errors"
	"time"

	"likestats/pkg/config"
	"likestats/pkg/logger"
	"likestats/pkg/metrics"
	"likestats/pkg/ratelimit"
	"likestats/pkg/retry"
	"likestats/pkg/stats"
	"likestats/pkg/twitter"
)

// Pagination termination reasons, kept distinct so logs and metrics can tell
// end-of-data from window-exit from a stalled cursor.
const (
	reasonEndOfData      = "end_of_data"
	reasonWindowExit     = "window_exit"
	reasonNoCursor       = "no_cursor"
	reasonCursorStalled  = "cursor_stalled"
	reasonRateLimited    = "rate_limited"
	reasonRetryExhausted = "retry_exhausted"
	reasonUpstreamDenied = "upstream_denied"
)

// Engine drives stats queries. Constructed once per process with an
// immutable configuration; all per-query state is local to GetStats, so
// independent queries may run concurrently.
type Engine struct {
	client  TwitterClient
	limiter ratelimit.Limiter
	cfg     *config.Config
	window  stats.Window
	logger  logger.Logger
}

// New creates a query engine backed by the real upstream client.
func New(cfg *config.Config) *Engine {
	log := logger.GetLogger()

	return &Engine{
		client:  twitter.NewClient(cfg.Twitter, cfg.Query.PageSize, log),
		limiter: ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerMinute, time.Minute),
		cfg:     cfg,
		window:  stats.YearWindow(cfg.Query.TargetYear),
		logger:  log,
	}
}

// GetStats retrieves the liked-post history for handle, filters it to the
// target window and computes summary statistics. It never returns an error:
// every failure mode maps to a terminal status, and only this layer decides
// when to degrade a failure into a partial result.
func (e *Engine) GetStats(ctx context.Context, handle string) QueryResult {
	log := e.logger.WithField("handle", handle)

	user, err := e.resolveUser(ctx, handle)
	if err != nil {
		status := StatusForbidden
		if errorTypeOf(err) == twitter.ErrorTypeNotFound {
			status = StatusNotFound
		}
		log.WithError(err).Warn("user resolution failed")
		return e.finish(log, status, nil)
	}
	log = log.WithField("user_id", user.ID)

	var records []stats.Record
	directory := stats.Directory{user.ID: user.Username}
	cursor := twitter.Cursor("")
	pages := 0
	partial := false
	var reason string

fetching:
	for {
		page, err := e.fetchPage(ctx, user.ID, cursor)
		if err != nil {
			errType := errorTypeOf(err)

			if pages == 0 {
				// Nothing accumulated yet: a denied or exhausted
				// first fetch is a hard failure, not a partial one.
				log.WithError(err).Warn("first page fetch failed")
				if errType == twitter.ErrorTypeNotFound {
					return e.finish(log, StatusNotFound, nil)
				}
				return e.finish(log, StatusForbidden, nil)
			}

			// Work already accumulated: degrade gracefully instead
			// of discarding it.
			partial = true
			reason = terminationReason(errType)
			log.WithError(err).WarnWithFields("pagination ended early, keeping partial results", map[string]interface{}{
				"pages":  pages,
				"reason": reason,
			})
			break fetching
		}

		pages++
		metrics.PagesFetchedTotal.Inc()

		pageRecords := e.normalizePage(page, log)
		for _, ref := range page.Includes.Users {
			directory[ref.ID] = ref.Name
		}
		for _, rec := range pageRecords {
			if e.window.Contains(rec.CreatedAt) {
				records = append(records, rec)
			}
		}

		rawCount := len(page.Data)
		log.DebugWithFields("page accumulated", map[string]interface{}{
			"page":      pages,
			"raw_count": rawCount,
			"in_window": len(records),
		})

		// Termination checks, in order. The upstream conflates "no more
		// data" with "data exists but outside the window" and may return
		// a trailing single item, so the conditions stay separate.
		if pages == 1 && rawCount == 0 {
			log.Info("account has no likes")
			return e.finish(log, StatusNotFound, nil)
		}
		if rawCount <= 1 && pages > 1 {
			reason = reasonEndOfData
			break fetching
		}
		if n := len(pageRecords); n > 0 && pageRecords[n-1].CreatedAt.Before(e.window.Start) {
			reason = reasonWindowExit
			break fetching
		}
		next := page.NextCursor()
		if next.IsZero() {
			reason = reasonNoCursor
			break fetching
		}
		if next == cursor {
			log.Warn("cursor did not advance, stopping pagination")
			reason = reasonCursorStalled
			break fetching
		}
		cursor = next
	}

	metrics.TerminationsTotal.WithLabelValues(reason).Inc()
	log.InfoWithFields("pagination finished", map[string]interface{}{
		"pages":     pages,
		"reason":    reason,
		"in_window": len(records),
	})

	if len(records) == 0 {
		log.Info("no likes within target window")
		return e.finish(log, StatusNotFound, nil)
	}

	summary, err := stats.Aggregate(records, directory, user.ID, e.cfg.Query.TopAuthors)
	if err != nil {
		// Guarded above; reaching this is an internal contract violation.
		log.WithError(err).Error("aggregation failed")
		return e.finish(log, StatusNotFound, nil)
	}

	status := StatusOK
	if partial {
		status = StatusPartial
	}
	return e.finish(log, status, summary)
}

// resolveUser resolves the handle to an upstream account, paced by the
// client-side rate limiter.
func (e *Engine) resolveUser(ctx context.Context, handle string) (*twitter.User, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return e.client.ResolveUser(ctx, handle)
}

// fetchPage fetches one page with bounded retry on transient failures. Rate
// limits and denials escape immediately; the caller applies policy.
func (e *Engine) fetchPage(ctx context.Context, userID string, cursor twitter.Cursor) (*twitter.LikedPage, error) {
	var page *twitter.LikedPage

	op := func() error {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}
		p, err := e.client.FetchLikedPage(ctx, userID, cursor)
		if err != nil {
			return err
		}
		page = p
		return nil
	}

	retryCfg := &retry.Config{
		MaxAttempts: e.cfg.Retry.MaxAttempts,
		Backoff: &retry.ExponentialBackoff{
			BaseDelay:    e.cfg.Retry.BaseDelay,
			MaxDelay:     e.cfg.Retry.MaxDelay,
			Multiplier:   2.0,
			JitterFactor: 0.2,
		},
		RetryIf: func(err error) bool {
			return twitter.IsTransient(errorTypeOf(err))
		},
		Logger: e.logger,
	}

	if err := retry.Do(ctx, op, retryCfg); err != nil {
		return nil, err
	}
	return page, nil
}

// normalizePage converts a page's raw items, skipping malformed ones.
func (e *Engine) normalizePage(page *twitter.LikedPage, log logger.Logger) []stats.Record {
	records := make([]stats.Record, 0, len(page.Data))
	for _, item := range page.Data {
		rec, err := Normalize(item)
		if err != nil {
			metrics.RecordsDiscardedTotal.Inc()
			log.WithError(err).Warn("skipping malformed item")
			continue
		}
		records = append(records, rec)
	}
	return records
}

// finish records the terminal status and builds the result.
func (e *Engine) finish(log logger.Logger, status Status, summary *stats.Summary) QueryResult {
	metrics.QueriesTotal.WithLabelValues(string(status)).Inc()
	log.InfoWithFields("query finished", map[string]interface{}{
		"status": string(status),
	})
	return QueryResult{Status: status, Stats: summary}
}

// terminationReason maps a mid-pagination error class to its termination
// reason label.
func terminationReason(errType twitter.ErrorType) string {
	switch errType {
	case twitter.ErrorTypeRateLimit:
		return reasonRateLimited
	case twitter.ErrorTypeNetwork, twitter.ErrorTypeServer:
		return reasonRetryExhausted
	default:
		return reasonUpstreamDenied
	}
}

// errorTypeOf extracts the classification from an upstream error.
func errorTypeOf(err error) twitter.ErrorType {
	var apiErr *twitter.Error
	if errors.As(err, &apiErr) {
		return apiErr.Type
	}
	return twitter.ErrorTypeUnknown
}
