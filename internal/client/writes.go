package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"

	"github.com/fivetwenty-io/soda/internal/constants"
	internalhttp "github.com/fivetwenty-io/soda/internal/http"
	"github.com/fivetwenty-io/soda/pkg/soda"
)

// Create implements soda.Client.Create.
func (c *Client) Create(ctx context.Context, request *soda.CreateRequest) (*soda.Result, error) {
	if request == nil {
		return nil, soda.ErrRequestRequired
	}

	path, err := soda.FormatLegacyPath("", soda.FormatJSON)
	if err != nil {
		return nil, err
	}

	req := &internalhttp.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   request.Payload(),
	}

	if request.NewBackend {
		req.Query = url.Values{"nbe": {"true"}}
	}

	result, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating dataset %q: %w", request.Name, err)
	}

	return result, nil
}

// Publish implements soda.Client.Publish.
func (c *Client) Publish(ctx context.Context, datasetID string, opts ...soda.RequestOption) (*soda.Result, error) {
	path, err := soda.PublicationPath(datasetID, soda.BuildRequestOptions(opts...).Format)
	if err != nil {
		return nil, err
	}

	result, err := c.do(ctx, &internalhttp.Request{Method: http.MethodPost, Path: path})
	if err != nil {
		return nil, fmt.Errorf("publishing dataset %s: %w", datasetID, err)
	}

	return result, nil
}

// SetPermission implements soda.Client.SetPermission.
func (c *Client) SetPermission(ctx context.Context, datasetID string, permission soda.Permission, opts ...soda.RequestOption) (*soda.Result, error) {
	path, err := soda.FormatLegacyPath(datasetID, soda.BuildRequestOptions(opts...).Format)
	if err != nil {
		return nil, err
	}

	value := string(soda.PermissionPrivate)
	if permission == soda.PermissionPublic {
		value = constants.PublicReadPermission
	}

	result, err := c.do(ctx, &internalhttp.Request{
		Method: http.MethodPut,
		Path:   path,
		Query: url.Values{
			"method": {constants.MethodSetPermission},
			"value":  {value},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("setting permission of dataset %s: %w", datasetID, err)
	}

	return result, nil
}

// GetMetadata implements soda.Client.GetMetadata.
func (c *Client) GetMetadata(ctx context.Context, datasetID string, opts ...soda.RequestOption) (*soda.Result, error) {
	path, err := soda.FormatLegacyPath(datasetID, soda.BuildRequestOptions(opts...).Format)
	if err != nil {
		return nil, err
	}

	result, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting metadata of dataset %s: %w", datasetID, err)
	}

	return result, nil
}

// UpdateMetadata implements soda.Client.UpdateMetadata.
func (c *Client) UpdateMetadata(ctx context.Context, datasetID string, fields map[string]any, opts ...soda.RequestOption) (*soda.Result, error) {
	path, err := soda.FormatLegacyPath(datasetID, soda.BuildRequestOptions(opts...).Format)
	if err != nil {
		return nil, err
	}

	if fields == nil {
		fields = map[string]any{}
	}

	result, err := c.do(ctx, &internalhttp.Request{Method: http.MethodPut, Path: path, Body: fields})
	if err != nil {
		return nil, fmt.Errorf("updating metadata of dataset %s: %w", datasetID, err)
	}

	return result, nil
}

// Upsert implements soda.Client.Upsert.
func (c *Client) Upsert(ctx context.Context, datasetID string, payload any, opts ...soda.RequestOption) (*soda.Result, error) {
	result, err := c.update(ctx, http.MethodPost, datasetID, payload, opts)
	if err != nil {
		return nil, fmt.Errorf("upserting into dataset %s: %w", datasetID, err)
	}

	return result, nil
}

// Replace implements soda.Client.Replace.
func (c *Client) Replace(ctx context.Context, datasetID string, payload any, opts ...soda.RequestOption) (*soda.Result, error) {
	result, err := c.update(ctx, http.MethodPut, datasetID, payload, opts)
	if err != nil {
		return nil, fmt.Errorf("replacing dataset %s: %w", datasetID, err)
	}

	return result, nil
}

func (c *Client) update(ctx context.Context, method, datasetID string, payload any, opts []soda.RequestOption) (*soda.Result, error) {
	path, err := soda.FormatCurrentPath(datasetID, "", soda.BuildRequestOptions(opts...).Format)
	if err != nil {
		return nil, err
	}

	req := &internalhttp.Request{Method: method, Path: path}

	if err := attachPayload(req, payload); err != nil {
		return nil, err
	}

	return c.do(ctx, req)
}

// attachPayload sets a JSON body for maps, slices, arrays and structs, and a CSV
// body for readers.
func attachPayload(req *internalhttp.Request, payload any) error {
	if reader, ok := payload.(io.Reader); ok {
		req.RawBody = reader
		req.Headers = map[string]string{constants.HeaderContentType: soda.MediaTypeCSV}

		return nil
	}

	if isJSONPayload(payload) {
		req.Body = payload

		return nil
	}

	return fmt.Errorf("%w: got %T", soda.ErrUnsupportedPayload, payload)
}

func isJSONPayload(payload any) bool {
	if payload == nil {
		return false
	}

	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return false
		}

		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	case reflect.Slice, reflect.Array:
		return v.Type().Elem().Kind() != reflect.Uint8
	default:
		return false
	}
}

// Delete implements soda.Client.Delete.
func (c *Client) Delete(ctx context.Context, datasetID, rowID string, opts ...soda.RequestOption) (*soda.Result, error) {
	format := soda.BuildRequestOptions(opts...).Format

	var (
		path string
		err  error
	)

	if rowID != "" {
		path, err = soda.FormatCurrentPath(datasetID, rowID, format)
	} else {
		path, err = soda.FormatLegacyPath(datasetID, format)
	}

	if err != nil {
		return nil, err
	}

	result, err := c.do(ctx, &internalhttp.Request{Method: http.MethodDelete, Path: path})
	if err != nil {
		return nil, fmt.Errorf("deleting dataset %s: %w", datasetID, err)
	}

	return result, nil
}
