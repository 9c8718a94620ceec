package soda

import (
	"io"
)

// CreateRequest describes a new dataset.
type CreateRequest struct {
	Name        string
	Description string
	Columns     []Column
	// Category must exist in the domain's /admin/metadata.
	Category string
	Tags     []string
	// RowIdentifier is the field name of the primary key column.
	RowIdentifier string
	// NewBackend creates the dataset in the new backend.
	NewBackend bool
	// Extra holds additional top-level keys sent verbatim.
	Extra map[string]any
}

// Column is a column definition of a new dataset.
type Column struct {
	FieldName    string `json:"fieldName"`
	Name         string `json:"name"`
	DataTypeName string `json:"dataTypeName"`
	Description  string `json:"description,omitempty"`
}

// Payload returns the JSON body of the create call. Unset optional fields are
// left out.
func (r *CreateRequest) Payload() map[string]any {
	payload := map[string]any{}

	for key, value := range r.Extra {
		payload[key] = value
	}

	payload["name"] = r.Name

	if r.RowIdentifier != "" {
		payload["metadata"] = map[string]any{"rowIdentifier": r.RowIdentifier}
	}

	if r.Description != "" {
		payload["description"] = r.Description
	}

	if r.Columns != nil {
		payload["columns"] = r.Columns
	}

	if r.Category != "" {
		payload["category"] = r.Category
	}

	if r.Tags != nil {
		payload["tags"] = r.Tags
	}

	return payload
}

// FileUpload is a file sent with the non-data file operations.
type FileUpload struct {
	// Filename is reported to the server as the uploaded file name.
	Filename string
	Content  io.Reader
}

// String returns a pointer to the given string.
func String(v string) *string {
	return &v
}

// Int returns a pointer to the given int.
func Int(v int) *int {
	return &v
}

// Bool returns a pointer to the given bool.
func Bool(v bool) *bool {
	return &v
}
