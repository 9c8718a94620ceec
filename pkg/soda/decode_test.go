package soda_test

import (
	"net/http"
	"testing"

	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(contentType, body string) *soda.Response {
	headers := http.Header{}
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}

	return &soda.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Headers:    headers,
		Body:       []byte(body),
	}
}

func TestNormalizeContentType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "application/json", soda.NormalizeContentType("Application/JSON; charset=utf-8"))
	assert.Equal(t, "text/csv", soda.NormalizeContentType("  text/csv  "))
	assert.Equal(t, "", soda.NormalizeContentType(""))
}

func TestDecodeResponse(t *testing.T) {
	t.Parallel()

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		resp := response("application/json", "")
		result, err := soda.DecodeResponse(resp)
		require.NoError(t, err)
		assert.Equal(t, soda.KindEmpty, result.Kind)
		assert.Same(t, resp, result.Response)
	})

	t.Run("json with charset", func(t *testing.T) {
		t.Parallel()

		result, err := soda.DecodeResponse(response("application/json; charset=utf-8", `[{"a":1}]`))
		require.NoError(t, err)
		assert.Equal(t, soda.KindJSON, result.Kind)

		records, err := result.Records()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.InDelta(t, 1.0, records[0]["a"], 0)
	})

	t.Run("geojson", func(t *testing.T) {
		t.Parallel()

		result, err := soda.DecodeResponse(response("application/vnd.geo+json", `{"type":"FeatureCollection"}`))
		require.NoError(t, err)

		object, err := result.Object()
		require.NoError(t, err)
		assert.Equal(t, "FeatureCollection", object["type"])
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := soda.DecodeResponse(response("application/json", `{"a":`))
		assert.ErrorIs(t, err, soda.ErrDecode)
	})

	t.Run("csv", func(t *testing.T) {
		t.Parallel()

		result, err := soda.DecodeResponse(response("text/csv", "name,age\nann,3\nbob\n"))
		require.NoError(t, err)
		assert.Equal(t, soda.KindCSV, result.Kind)
		assert.Equal(t, [][]string{{"name", "age"}, {"ann", "3"}, {"bob"}}, result.Rows)
	})

	t.Run("csv with bare quote", func(t *testing.T) {
		t.Parallel()

		result, err := soda.DecodeResponse(response("text/csv", "name,height\nBob,5'11\"\n"))
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"name", "height"}, {"Bob", `5'11"`}}, result.Rows)
	})

	t.Run("rdf", func(t *testing.T) {
		t.Parallel()

		body := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"/>`
		result, err := soda.DecodeResponse(response("application/rdf+xml", body))
		require.NoError(t, err)
		assert.Equal(t, soda.KindRDF, result.Kind)
		assert.Equal(t, []byte(body), result.Raw)
	})

	t.Run("plain text holding json", func(t *testing.T) {
		t.Parallel()

		result, err := soda.DecodeResponse(response("text/plain", `{"ok":true}`))
		require.NoError(t, err)
		assert.Equal(t, soda.KindJSON, result.Kind)
	})

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()

		result, err := soda.DecodeResponse(response("text/plain", "hello"))
		require.NoError(t, err)
		assert.Equal(t, soda.KindText, result.Kind)
		assert.Equal(t, "hello", result.Text)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := soda.DecodeResponse(response("image/png", "png"))
		require.ErrorIs(t, err, soda.ErrUnknownResponseFormat)
		assert.Contains(t, err.Error(), "image/png")
	})
}

func TestResultAccessors(t *testing.T) {
	t.Parallel()

	result, err := soda.DecodeResponse(response("application/json", `{"id":"abcd-1234","name":"Crimes"}`))
	require.NoError(t, err)

	_, err = result.Items()
	require.ErrorIs(t, err, soda.ErrNotJSONList)

	var view struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, result.Unmarshal(&view))
	assert.Equal(t, "abcd-1234", view.ID)

	list, err := soda.DecodeResponse(response("application/json", `[1, {"a":1}]`))
	require.NoError(t, err)

	items, err := list.Items()
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = list.Records()
	require.ErrorIs(t, err, soda.ErrNotJSONObject)

	text, err := soda.DecodeResponse(response("text/plain", "hi"))
	require.NoError(t, err)
	require.ErrorIs(t, text.Unmarshal(&view), soda.ErrDecode)
	assert.Equal(t, "text", text.Kind.String())
}
