/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connstore

import (
	"context"
	"iter"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/connstore/datastore"
	"github.com/suparena/connstore/errors"
	"github.com/suparena/connstore/logging"
	"github.com/suparena/connstore/metrics"
	"github.com/suparena/connstore/registry"
	"github.com/suparena/connstore/storagemodels"
)

// Scanner enumerates whole tables page by page.
// A Scanner holds no per-scan state, so concurrent scans may share one.
type Scanner struct {
	fetcher   datastore.PageFetcher
	describer datastore.TableDescriber
	decoders  *registry.Decoders
	logger    *zap.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithDecoders sets the per-table decoders. Unregistered tables decode into generic maps.
func WithDecoders(d *registry.Decoders) ScannerOption {
	return func(s *Scanner) {
		s.decoders = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logging.OrNop(logger)
	}
}

// NewScanner creates a Scanner reading from source.
func NewScanner(source datastore.TableScanner, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		fetcher:   source,
		describer: source,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Describe returns the table's metadata, failing when the table does not exist.
func (s *Scanner) Describe(ctx context.Context, tableName string) (*storagemodels.TableInfo, error) {
	if s.describer == nil {
		return nil, errors.NewValidationError("describer", "scanner has no table describer")
	}
	return s.describer.DescribeTable(ctx, tableName)
}

// Pages returns a lazy sequence of the table's pages, fetched one at a time
// as the consumer pulls them.
//
// The sequence ends after a page with no continuation cursor, or as soon as
// the store returns a page with zero records, even when that empty page
// carries a cursor. A fetch failure is yielded once as a *errors.StoreCallError
// and ends the sequence; nothing is yielded for the failed call.
//
// The sequence can be ranged over only once. To resume, start a new scan with
// storagemodels.WithStartKey and the cursor of the last page consumed.
func (s *Scanner) Pages(ctx context.Context, tableName string, opts ...storagemodels.ScanOption) iter.Seq2[*storagemodels.PageResult, error] {
	options := storagemodels.DefaultScanOptions()
	for _, opt := range opts {
		opt(&options)
	}

	var consumed atomic.Bool
	return func(yield func(*storagemodels.PageResult, error) bool) {
		if consumed.Swap(true) {
			yield(nil, errors.NewValidationError("", "page sequence already consumed; start a new scan to resume"))
			return
		}
		if tableName == "" {
			yield(nil, errors.NewValidationError("tableName", "must not be empty"))
			return
		}
		if options.PageSize < 1 {
			yield(nil, errors.NewValidationError("pageSize", "must be a positive integer"))
			return
		}

		s.scan(ctx, tableName, options, yield)
	}
}

// scan drives the page fetcher until the end of the table or until the consumer stops.
func (s *Scanner) scan(
	ctx context.Context,
	tableName string,
	options storagemodels.ScanOptions,
	yield func(*storagemodels.PageResult, error) bool,
) {
	cursor := options.StartKey
	pageNumber := 0
	var itemsProcessed int64
	startTime := time.Now()

	for {
		raw, err := s.fetcher.FetchPage(ctx, &storagemodels.PageRequest{
			TableName: tableName,
			Limit:     options.PageSize,
			StartKey:  cursor,
		})
		if err != nil {
			yield(nil, asStoreCallError(tableName, err))
			return
		}
		metrics.PagesFetched.WithLabelValues(tableName).Inc()

		// An empty page ends the scan whether or not it carries a cursor.
		if raw.Count == 0 {
			return
		}

		cursor = raw.LastKey
		records := make([]storagemodels.Record, 0, len(raw.Items))
		for _, item := range raw.Items {
			rec, err := s.decoders.Decode(tableName, item)
			if err != nil {
				yield(nil, errors.NewStoreCallError("Unmarshal", tableName, err))
				return
			}
			records = append(records, rec)
		}

		pageNumber++
		itemsProcessed += int64(len(records))
		metrics.RecordsScanned.WithLabelValues(tableName).Add(float64(len(records)))

		page := &storagemodels.PageResult{
			Records:    records,
			Count:      len(records),
			Cursor:     cursor,
			PageNumber: pageNumber,
		}
		s.logger.Debug("scan page",
			zap.String("table", tableName),
			zap.Int("page", pageNumber),
			zap.Int("count", page.Count),
			zap.Bool("more", !cursor.Empty()),
		)

		if options.ProgressHandler != nil {
			progress := storagemodels.ScanProgress{
				ItemsProcessed: itemsProcessed,
				PagesProcessed: pageNumber,
				LastKey:        cursor,
				StartTime:      startTime,
			}
			if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
				progress.CurrentRate = float64(itemsProcessed) / elapsed
			}
			options.ProgressHandler(progress)
		}

		if !yield(page, nil) {
			return
		}

		// Without a cursor the next request would start over from the
		// beginning of the table, so this was the last page.
		if cursor.Empty() {
			return
		}
	}
}

// All checks that the table exists, then drains every page into one slice,
// preserving page order and the order of records within each page.
//
// Any failure aborts the drain: no partial results are returned and the error
// is a *errors.ScanAggregationError wrapping the cause.
func (s *Scanner) All(ctx context.Context, tableName string, opts ...storagemodels.ScanOption) ([]storagemodels.Record, error) {
	log := s.logger.With(zap.String("scan_id", uuid.NewString()), zap.String("table", tableName))
	startTime := time.Now()

	fail := func(err error) ([]storagemodels.Record, error) {
		metrics.Scans.WithLabelValues(tableName, "error").Inc()
		log.Error("scan aborted", zap.Error(err))
		return nil, errors.NewScanAggregationError(tableName, err)
	}

	if _, err := s.Describe(ctx, tableName); err != nil {
		return fail(err)
	}

	next, stop := iter.Pull2(s.Pages(ctx, tableName, opts...))
	defer stop()

	results := make([]storagemodels.Record, 0)
	pages := 0
	for {
		page, err, ok := next()
		if !ok {
			break
		}
		if err != nil {
			return fail(err)
		}
		pages++
		results = append(results, page.Records...)
		if page.Cursor.Empty() {
			break
		}
	}

	metrics.Scans.WithLabelValues(tableName, "ok").Inc()
	log.Info("scan completed",
		zap.Int("records", len(results)),
		zap.Int("pages", pages),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return results, nil
}

// ScanPages is the package-level form of Scanner.Pages.
func ScanPages(ctx context.Context, source datastore.PageFetcher, tableName string, opts ...storagemodels.ScanOption) iter.Seq2[*storagemodels.PageResult, error] {
	s := &Scanner{fetcher: source, logger: zap.NewNop()}
	return s.Pages(ctx, tableName, opts...)
}

// ScanAll is the package-level form of Scanner.All, with the default page size of 25.
func ScanAll(ctx context.Context, source datastore.TableScanner, tableName string, opts ...storagemodels.ScanOption) ([]storagemodels.Record, error) {
	return NewScanner(source).All(ctx, tableName, opts...)
}

// asStoreCallError keeps typed errors from the fetcher and wraps anything else.
func asStoreCallError(tableName string, err error) error {
	if errors.IsStoreCall(err) || errors.IsUnknownCause(err) || errors.IsValidationError(err) {
		return err
	}
	return errors.NewStoreCallError("Scan", tableName, err)
}
