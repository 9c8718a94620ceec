package soda

import (
	"fmt"
)

const (
	legacyPath  = "/api/views"
	currentPath = "/resource/"
)

// FormatLegacyPath returns the legacy views path of a dataset.
//
//	/api/views/<id>.<format>
//	/api/views/<id>
//	/api/views.<format>
func FormatLegacyPath(datasetID string, format Format) (string, error) {
	switch {
	case datasetID != "" && format != "":
		return fmt.Sprintf("%s/%s.%s", legacyPath, datasetID, format), nil
	case datasetID != "":
		return fmt.Sprintf("%s/%s", legacyPath, datasetID), nil
	case format != "":
		return fmt.Sprintf("%s.%s", legacyPath, format), nil
	default:
		return "", ErrMissingResource
	}
}

// FormatCurrentPath returns the resource path of a dataset, or of one of its rows
// when rowID is not empty.
func FormatCurrentPath(datasetID, rowID string, format Format) (string, error) {
	if datasetID == "" || format == "" {
		return "", fmt.Errorf("%w: dataset %q, format %q", ErrMissingResource, datasetID, format)
	}

	if rowID != "" {
		return fmt.Sprintf("%s%s/%s.%s", currentPath, datasetID, rowID, format), nil
	}

	return fmt.Sprintf("%s%s.%s", currentPath, datasetID, format), nil
}

// PublicationPath returns the publish path of a working copy.
func PublicationPath(datasetID string, format Format) (string, error) {
	if datasetID == "" || format == "" {
		return "", fmt.Errorf("%w: dataset %q, format %q", ErrMissingResource, datasetID, format)
	}

	return fmt.Sprintf("%s/%s/publication.%s", legacyPath, datasetID, format), nil
}
