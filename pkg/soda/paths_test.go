package soda_test

import (
	"testing"

	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLegacyPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id     string
		format soda.Format
		want   string
	}{
		{id: "abcd-1234", format: soda.FormatJSON, want: "/api/views/abcd-1234.json"},
		{id: "abcd-1234", format: "", want: "/api/views/abcd-1234"},
		{id: "", format: soda.FormatJSON, want: "/api/views.json"},
	}

	for _, tt := range tests {
		got, err := soda.FormatLegacyPath(tt.id, tt.format)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := soda.FormatLegacyPath("", "")
	require.ErrorIs(t, err, soda.ErrMissingResource)
	assert.ErrorIs(t, err, soda.ErrConfiguration)
}

func TestFormatCurrentPath(t *testing.T) {
	t.Parallel()

	got, err := soda.FormatCurrentPath("abcd-1234", "", soda.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "/resource/abcd-1234.json", got)

	got, err = soda.FormatCurrentPath("abcd-1234", "row-9", soda.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "/resource/abcd-1234/row-9.csv", got)

	got, err = soda.FormatCurrentPath("abcd-1234", "", "geojson")
	require.NoError(t, err)
	assert.Equal(t, "/resource/abcd-1234.geojson", got)

	_, err = soda.FormatCurrentPath("", "", soda.FormatJSON)
	require.ErrorIs(t, err, soda.ErrMissingResource)

	_, err = soda.FormatCurrentPath("abcd-1234", "", "")
	require.ErrorIs(t, err, soda.ErrMissingResource)
}

func TestPublicationPath(t *testing.T) {
	t.Parallel()

	got, err := soda.PublicationPath("abcd-1234", soda.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "/api/views/abcd-1234/publication.json", got)

	_, err = soda.PublicationPath("", soda.FormatJSON)
	assert.ErrorIs(t, err, soda.ErrMissingResource)
}
