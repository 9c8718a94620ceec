package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/soda/internal/constants"
	internalhttp "github.com/fivetwenty-io/soda/internal/http"
	"github.com/fivetwenty-io/soda/pkg/soda"
)

// Get implements soda.Client.Get. The query Format takes precedence over the
// WithFormat option.
func (c *Client) Get(ctx context.Context, datasetID string, query *soda.Query, opts ...soda.RequestOption) (*soda.Result, error) {
	if query == nil {
		query = soda.NewQuery()
	}

	format := query.Format
	if format == "" {
		format = soda.BuildRequestOptions(opts...).Format
	}

	path, err := soda.FormatCurrentPath(datasetID, "", format)
	if err != nil {
		return nil, err
	}

	req := &internalhttp.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query.ToValues(),
	}

	if query.Accept != "" {
		req.Headers = map[string]string{constants.HeaderAccept: query.Accept}
	}

	result, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("getting dataset %s: %w", datasetID, err)
	}

	return result, nil
}

// GetAll implements soda.Client.GetAll. The page size is the query limit when set,
// otherwise the configured page size.
func (c *Client) GetAll(ctx context.Context, datasetID string, query *soda.Query) *soda.PaginationIterator[any] {
	base := query.Copy()

	pageSize := c.pageSize
	if base.Limit != nil {
		pageSize = *base.Limit
	}

	start := 0
	if base.Offset != nil {
		start = *base.Offset
	}

	fetch := func(ctx context.Context, offset, limit int) ([]any, error) {
		page := base.Copy().WithOffset(offset).WithLimit(limit)

		result, err := c.Get(ctx, datasetID, page)
		if err != nil {
			return nil, err
		}

		items, err := result.Items()
		if err != nil {
			return nil, fmt.Errorf("%w: offset %d: %w", soda.ErrUnexpectedPage, offset, err)
		}

		return items, nil
	}

	return soda.NewPaginationIterator[any](ctx, fetch, start, pageSize)
}

// Datasets implements soda.Client.Datasets.
func (c *Client) Datasets(ctx context.Context, query *soda.DatasetsQuery) ([]map[string]any, error) {
	if query == nil {
		query = soda.NewDatasetsQuery()
	}

	if err := query.Validate(); err != nil {
		return nil, err
	}

	offset := query.Offset

	results, total, err := c.datasetsPage(ctx, query, offset)
	if err != nil {
		return nil, err
	}

	if query.Limit >= total || query.Limit == len(results) || total == len(results) {
		return results, nil
	}

	if query.Limit != 0 {
		return nil, fmt.Errorf("%w: expected %d, got %d", soda.ErrUnexpectedResultCount, query.Limit, len(results))
	}

	all := results
	for len(all) < total {
		offset += len(results)

		results, _, err = c.datasetsPage(ctx, query, offset)
		if err != nil {
			return nil, err
		}

		if len(results) == 0 {
			return nil, fmt.Errorf("%w: expected %d, got %d", soda.ErrUnexpectedResultCount, total, len(all))
		}

		all = append(all, results...)
	}

	if len(all) != total {
		return nil, fmt.Errorf("%w: expected %d, got %d", soda.ErrUnexpectedResultCount, total, len(all))
	}

	return all, nil
}

// datasetsPage fetches one discovery page and returns its results and the total
// result set size.
func (c *Client) datasetsPage(ctx context.Context, query *soda.DatasetsQuery, offset int) ([]map[string]any, int, error) {
	result, err := c.get(ctx, constants.DatasetsPath, query.ToValues(c.domain, offset))
	if err != nil {
		return nil, 0, fmt.Errorf("listing datasets: %w", err)
	}

	var page struct {
		Results       []map[string]any `json:"results"`
		ResultSetSize int              `json:"resultSetSize"`
	}

	if err := result.Unmarshal(&page); err != nil {
		return nil, 0, fmt.Errorf("parsing datasets response: %w", err)
	}

	if page.Results == nil {
		page.Results = []map[string]any{}
	}

	return page.Results, page.ResultSetSize, nil
}
