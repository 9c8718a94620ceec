package soda

import (
	"context"
	"net/http"
	"time"
)

// Client is the SODA API client.
//
// A Client is not safe for concurrent use. Use one client per goroutine, or guard
// calls with your own lock.
type Client interface {
	// Get reads rows from a dataset through the resource API.
	Get(ctx context.Context, datasetID string, query *Query, opts ...RequestOption) (*Result, error)
	// GetAll pages through every row of a dataset. Rows are fetched lazily.
	GetAll(ctx context.Context, datasetID string, query *Query) *PaginationIterator[any]
	// Datasets lists the datasets of the configured domain through the discovery API.
	Datasets(ctx context.Context, query *DatasetsQuery) ([]map[string]any, error)

	// Create creates a dataset in a working copy state.
	Create(ctx context.Context, request *CreateRequest) (*Result, error)
	// Publish publishes a working copy created by Create.
	Publish(ctx context.Context, datasetID string, opts ...RequestOption) (*Result, error)
	// SetPermission makes a dataset public or private.
	SetPermission(ctx context.Context, datasetID string, permission Permission, opts ...RequestOption) (*Result, error)
	// GetMetadata retrieves the metadata of a dataset.
	GetMetadata(ctx context.Context, datasetID string, opts ...RequestOption) (*Result, error)
	// UpdateMetadata replaces the listed metadata keys and returns the updated metadata.
	UpdateMetadata(ctx context.Context, datasetID string, fields map[string]any, opts ...RequestOption) (*Result, error)

	// Upsert inserts, updates or deletes rows. The payload is either JSON-able
	// (map, slice, array, struct) or an io.Reader carrying CSV.
	Upsert(ctx context.Context, datasetID string, payload any, opts ...RequestOption) (*Result, error)
	// Replace overwrites the dataset rows with the payload.
	Replace(ctx context.Context, datasetID string, payload any, opts ...RequestOption) (*Result, error)
	// Delete deletes a whole dataset, or a single row when rowID is not empty.
	Delete(ctx context.Context, datasetID, rowID string, opts ...RequestOption) (*Result, error)

	// DownloadAttachments downloads every attachment of a dataset into
	// dir/datasetID and returns the written paths.
	DownloadAttachments(ctx context.Context, datasetID, dir string, opts ...RequestOption) ([]string, error)
	// CreateNonDataFile creates a file-based dataset.
	CreateNonDataFile(ctx context.Context, params map[string]string, file *FileUpload) (*Result, error)
	// ReplaceNonDataFile replaces the file of an existing file-based dataset.
	ReplaceNonDataFile(ctx context.Context, datasetID string, params map[string]string, file *FileUpload) (*Result, error)

	// Close releases the underlying connection pool.
	Close() error
}

// Logger is the interface for structured logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration.
//
// # Authentication
//
// Exactly one mode is accepted:
//   - none of Username, Password, AccessToken (app token only, or anonymous);
//   - Username AND Password (HTTP Basic);
//   - AccessToken alone (sent as "Authorization: OAuth <token>").
//
// AppToken is independent of the mode. Requests without an app token are subject to
// strict throttling, which is logged as a warning at construction time.
type Config struct {
	// Domain is the host to query, e.g. "data.cityofchicago.org". Required.
	Domain string
	// AppToken is sent as X-App-Token when set.
	AppToken string
	// Username and Password enable HTTP Basic authentication.
	Username string
	Password string
	// AccessToken enables OAuth 2.0 bearer authentication.
	AccessToken string

	// URIPrefix is prepended to Domain. Defaults to "https://".
	URIPrefix string
	// Timeout bounds every request. Defaults to 10 seconds.
	Timeout time.Duration
	// PageSize is the default page size used by GetAll. Defaults to 1000.
	PageSize int
	// Transport overrides the HTTP transport, for tests or interception.
	Transport http.RoundTripper

	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug logs every request and response when a Logger is available.
	Debug bool
	// Logger receives client logs. Defaults to the slog default logger.
	Logger Logger

	RequestInterceptors  []RequestInterceptor
	ResponseInterceptors []ResponseInterceptor
}

// Format is the content type tag of a resource path, e.g. "json".
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXML  Format = "xml"
	FormatTXT  Format = "txt"
)

// Permission is the visibility of a dataset.
type Permission string

// Permission values.
const (
	PermissionPrivate Permission = "private"
	PermissionPublic  Permission = "public"
)

// RequestOptions holds per-call options.
type RequestOptions struct {
	Format Format
}

// RequestOption customizes a single call.
type RequestOption func(*RequestOptions)

// WithFormat selects the content type tag of the resource path.
func WithFormat(format Format) RequestOption {
	return func(o *RequestOptions) {
		o.Format = format
	}
}

// BuildRequestOptions applies opts over the defaults.
func BuildRequestOptions(opts ...RequestOption) RequestOptions {
	options := RequestOptions{Format: FormatJSON}
	for _, opt := range opts {
		opt(&options)
	}

	return options
}
