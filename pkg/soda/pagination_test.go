package soda_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageCall struct {
	offset int
	limit  int
}

// sliceFetcher serves items from a fixed slice and records every call.
func sliceFetcher(items []int, calls *[]pageCall) soda.PageFetcher[int] {
	return func(ctx context.Context, offset, limit int) ([]int, error) {
		*calls = append(*calls, pageCall{offset: offset, limit: limit})

		if offset >= len(items) {
			return []int{}, nil
		}

		end := min(offset+limit, len(items))

		return items[offset:end], nil
	}
}

func TestPaginationIterator_AllWithShortLastPage(t *testing.T) {
	t.Parallel()

	var calls []pageCall

	iter := soda.NewPaginationIterator(context.Background(), sliceFetcher([]int{1, 2, 3, 4, 5, 6, 7}, &calls), 0, 3)

	all, err := iter.All()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, all)
	assert.Equal(t, []pageCall{{0, 3}, {3, 3}, {6, 3}}, calls)
}

func TestPaginationIterator_ExactMultipleFetchesEmptyPage(t *testing.T) {
	t.Parallel()

	var calls []pageCall

	iter := soda.NewPaginationIterator(context.Background(), sliceFetcher([]int{1, 2, 3, 4}, &calls), 0, 2)

	all, err := iter.All()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, all)
	assert.Len(t, calls, 3)
}

func TestPaginationIterator_OffsetAdvancesByPageSize(t *testing.T) {
	t.Parallel()

	var offsets []int

	fetch := func(ctx context.Context, offset, limit int) ([]int, error) {
		offsets = append(offsets, offset)

		switch offset {
		case 0:
			return []int{1, 2, 3}, nil
		case 2:
			return []int{4}, nil
		default:
			return nil, errors.New("unexpected offset")
		}
	}

	all, err := soda.NewPaginationIterator[int](context.Background(), fetch, 0, 2).All()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, all)
	assert.Equal(t, []int{0, 2}, offsets)
}

func TestPaginationIterator_HasNextNext(t *testing.T) {
	t.Parallel()

	var calls []pageCall

	iter := soda.NewPaginationIterator(context.Background(), sliceFetcher([]int{10, 20, 30}, &calls), 1, 5)

	assert.Empty(t, calls, "no request before first use")
	assert.True(t, iter.HasNext())

	item, err := iter.Next()
	require.NoError(t, err)
	assert.Equal(t, 20, item)

	item, err = iter.Next()
	require.NoError(t, err)
	assert.Equal(t, 30, item)

	assert.False(t, iter.HasNext())

	_, err = iter.Next()
	require.ErrorIs(t, err, soda.ErrNoMoreItems)
	assert.Len(t, calls, 1)
}

func TestPaginationIterator_FetchError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	page := 0

	iter := soda.NewPaginationIterator[string](context.Background(), func(ctx context.Context, offset, limit int) ([]string, error) {
		page++
		if page == 2 {
			return nil, boom
		}

		return []string{"a", "b"}, nil
	}, 0, 2)

	all, err := iter.All()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, all)
	assert.False(t, iter.HasNext())
}

func TestPaginationIterator_InvalidPageSize(t *testing.T) {
	t.Parallel()

	called := false
	iter := soda.NewPaginationIterator[int](context.Background(), func(ctx context.Context, offset, limit int) ([]int, error) {
		called = true

		return nil, nil
	}, 0, 0)

	_, err := iter.All()
	require.ErrorIs(t, err, soda.ErrInvalidPageSize)
	assert.False(t, called)
}

func TestPaginationIterator_ForEachStops(t *testing.T) {
	t.Parallel()

	var calls []pageCall

	iter := soda.NewPaginationIterator(context.Background(), sliceFetcher([]int{1, 2, 3, 4, 5}, &calls), 0, 2)

	stop := errors.New("stop")
	seen := 0

	err := iter.ForEach(func(item int) error {
		seen++
		if item == 3 {
			return stop
		}

		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 3, seen)
	assert.Len(t, calls, 2)
}
