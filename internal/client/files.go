package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/soda/internal/constants"
	internalhttp "github.com/fivetwenty-io/soda/internal/http"
	"github.com/fivetwenty-io/soda/pkg/soda"
)

// CreateNonDataFile implements soda.Client.CreateNonDataFile.
func (c *Client) CreateNonDataFile(ctx context.Context, params map[string]string, file *soda.FileUpload) (*soda.Result, error) {
	query := fileParams(params, constants.MethodBlob)

	result, err := c.uploadFile(ctx, constants.ImportsPath, query, file)
	if err != nil {
		return nil, fmt.Errorf("creating non-data file: %w", err)
	}

	return result, nil
}

// ReplaceNonDataFile implements soda.Client.ReplaceNonDataFile.
func (c *Client) ReplaceNonDataFile(ctx context.Context, datasetID string, params map[string]string, file *soda.FileUpload) (*soda.Result, error) {
	path, err := soda.FormatLegacyPath(datasetID, soda.FormatTXT)
	if err != nil {
		return nil, err
	}

	query := fileParams(params, constants.MethodReplaceBlob)
	query.Set("id", datasetID)

	result, err := c.uploadFile(ctx, path, query, file)
	if err != nil {
		return nil, fmt.Errorf("replacing non-data file of dataset %s: %w", datasetID, err)
	}

	return result, nil
}

// fileParams copies params, defaulting an empty method.
func fileParams(params map[string]string, defaultMethod string) url.Values {
	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}

	if query.Get("method") == "" {
		query.Set("method", defaultMethod)
	}

	return query
}

func (c *Client) uploadFile(ctx context.Context, path string, query url.Values, file *soda.FileUpload) (*soda.Result, error) {
	if file == nil || file.Content == nil {
		return nil, soda.ErrMissingFile
	}

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", file.Filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, fmt.Errorf("writing file to form: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	return c.do(ctx, &internalhttp.Request{
		Method:  http.MethodPost,
		Path:    path,
		Query:   query,
		Headers: map[string]string{constants.HeaderContentType: writer.FormDataContentType()},
		RawBody: &buf,
	})
}
