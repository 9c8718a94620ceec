package constants

import "time"

// Resource path prefixes.
const (
	// LegacyAPIPath is the prefix of the old-style views API.
	LegacyAPIPath = "/api/views"

	// DatasetsPath is the discovery (catalog) endpoint.
	DatasetsPath = "/api/catalog/v1"

	// AssetsPath serves attachment blobs that carry no asset id.
	AssetsPath = "/api/assets"

	// ImportsPath accepts non-data (blob) file imports.
	ImportsPath = "/api/imports2/"
)

// Connection defaults.
const (
	// DefaultURIPrefix is the scheme prepended to the domain.
	DefaultURIPrefix = "https://"

	// DefaultHTTPTimeout is the default timeout for a single request.
	DefaultHTTPTimeout = 10 * time.Second

	// DefaultPageSize is the number of rows per page used by GetAll.
	DefaultPageSize = 1000

	// DownloadChunkSize is the buffer size used when streaming attachments.
	DownloadChunkSize = 1024

	// DefaultDownloadDir is where attachments land unless a directory is given.
	DefaultDownloadDir = "~/sodapy_downloads"

	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "soda-go"
)

// Header names.
const (
	HeaderAppToken      = "X-App-Token"
	HeaderAuthorization = "Authorization"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
)

// Query helpers.
const (
	// MethodSetPermission is the views API method for permission changes.
	MethodSetPermission = "setPermission"

	// MethodBlob creates a non-data file dataset.
	MethodBlob = "blob"

	// MethodReplaceBlob replaces the file of a non-data file dataset.
	MethodReplaceBlob = "replaceBlob"

	// PublicReadPermission is the wire value of the "public" permission.
	PublicReadPermission = "public.read"
)

// ConfigDirPerm is the permission of created download directories.
const ConfigDirPerm = 0750
