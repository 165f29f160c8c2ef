package storagemodels

import (
	"time"
)

// ScanOptions configures a paginated scan
type ScanOptions struct {
	PageSize        int32              // Items evaluated per page (default: 25)
	StartKey        Cursor             // Resume after this key (default: from the beginning)
	ProgressHandler func(ScanProgress) // Optional callback after each yielded page
}

// ScanProgress tracks scan progress
type ScanProgress struct {
	ItemsProcessed int64     // Total records yielded
	PagesProcessed int       // Total pages yielded
	LastKey        Cursor    // Cursor of the last yielded page
	StartTime      time.Time // When the scan started
	CurrentRate    float64   // Records per second
}

// ScanOption is a functional option for configuring scans
type ScanOption func(*ScanOptions)

// DefaultScanOptions returns default scan options
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		PageSize: DefaultPageSize,
	}
}

// WithPageSize sets the page size limit
func WithPageSize(size int32) ScanOption {
	return func(opts *ScanOptions) {
		opts.PageSize = size
	}
}

// WithStartKey resumes a scan from a cursor returned by an earlier page
func WithStartKey(key Cursor) ScanOption {
	return func(opts *ScanOptions) {
		opts.StartKey = key
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(ScanProgress)) ScanOption {
	return func(opts *ScanOptions) {
		opts.ProgressHandler = handler
	}
}
