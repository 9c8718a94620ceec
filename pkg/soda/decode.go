package soda

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Media types understood by DecodeResponse.
const (
	MediaTypeJSON    = "application/json"
	MediaTypeGeoJSON = "application/vnd.geo+json"
	MediaTypeCSV     = "text/csv"
	MediaTypeRDFXML  = "application/rdf+xml"
	MediaTypeText    = "text/plain"
)

// Response is the raw response handle of a call.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
}

// ContentType returns the normalized media type of the response: lower-cased,
// trimmed, parameters dropped.
func (r *Response) ContentType() string {
	return NormalizeContentType(r.Headers.Get("Content-Type"))
}

// NormalizeContentType lower-cases a Content-Type header value and drops its
// parameters.
func NormalizeContentType(header string) string {
	mediaType, _, _ := strings.Cut(header, ";")

	return strings.ToLower(strings.TrimSpace(mediaType))
}

// ResultKind tags the variant held by a Result.
type ResultKind int

// Result kinds.
const (
	KindEmpty ResultKind = iota
	KindJSON
	KindCSV
	KindRDF
	KindText
)

// String returns the kind name.
func (k ResultKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindJSON:
		return "json"
	case KindCSV:
		return "csv"
	case KindRDF:
		return "rdf"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// Result is a decoded response body.
type Result struct {
	Kind ResultKind
	// JSON is the parsed value for KindJSON.
	JSON any
	// Rows are the CSV records for KindCSV, header row first.
	Rows [][]string
	// Raw holds the body bytes for KindRDF.
	Raw []byte
	// Text holds the body for KindText.
	Text string
	// Response is the raw response handle. Always set.
	Response *Response
}

// Records returns a JSON list of objects.
func (r *Result) Records() ([]map[string]any, error) {
	items, err := r.Items()
	if err != nil {
		return nil, err
	}

	records := make([]map[string]any, 0, len(items))

	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrNotJSONObject, i, item)
		}

		records = append(records, record)
	}

	return records, nil
}

// Items returns the elements of a JSON list.
func (r *Result) Items() ([]any, error) {
	if r.Kind != KindJSON {
		return nil, fmt.Errorf("%w: result is %s", ErrNotJSONList, r.Kind)
	}

	items, ok := r.JSON.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotJSONList, r.JSON)
	}

	return items, nil
}

// Object returns a JSON object.
func (r *Result) Object() (map[string]any, error) {
	if r.Kind != KindJSON {
		return nil, fmt.Errorf("%w: result is %s", ErrNotJSONObject, r.Kind)
	}

	object, ok := r.JSON.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotJSONObject, r.JSON)
	}

	return object, nil
}

// Unmarshal decodes the JSON body into v.
func (r *Result) Unmarshal(v any) error {
	if r.Kind != KindJSON {
		return fmt.Errorf("%w: cannot unmarshal %s result", ErrDecode, r.Kind)
	}

	if err := json.Unmarshal(r.Response.Body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return nil
}

// DecodeResponse decodes a response body according to its content type.
func DecodeResponse(resp *Response) (*Result, error) {
	if len(resp.Body) == 0 {
		return &Result{Kind: KindEmpty, Response: resp}, nil
	}

	contentType := resp.ContentType()

	switch contentType {
	case MediaTypeJSON, MediaTypeGeoJSON:
		var value any
		if err := json.Unmarshal(resp.Body, &value); err != nil {
			return nil, fmt.Errorf("%w: parsing %s body: %w", ErrDecode, contentType, err)
		}

		return &Result{Kind: KindJSON, JSON: value, Response: resp}, nil

	case MediaTypeCSV:
		reader := csv.NewReader(bytes.NewReader(resp.Body))
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: parsing csv body: %w", ErrDecode, err)
		}

		return &Result{Kind: KindCSV, Rows: rows, Response: resp}, nil

	case MediaTypeRDFXML:
		return &Result{Kind: KindRDF, Raw: resp.Body, Response: resp}, nil

	case MediaTypeText:
		var value any
		if err := json.Unmarshal(resp.Body, &value); err == nil {
			return &Result{Kind: KindJSON, JSON: value, Response: resp}, nil
		}

		return &Result{Kind: KindText, Text: string(resp.Body), Response: resp}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResponseFormat, contentType)
	}
}
