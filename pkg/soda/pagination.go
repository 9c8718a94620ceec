package soda

import (
	"context"
	"fmt"
)

// PageFetcher fetches the page of at most limit items starting at offset.
type PageFetcher[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// PaginationIterator walks an offset-paged collection lazily. A page shorter than
// the page size ends the iteration.
type PaginationIterator[T any] struct {
	ctx      context.Context
	fetch    PageFetcher[T]
	pageSize int
	offset   int

	buffer []T
	index  int
	done   bool
	err    error
}

// NewPaginationIterator creates an iterator starting at offset. A non-positive page
// size yields ErrInvalidPageSize on first use.
func NewPaginationIterator[T any](ctx context.Context, fetch PageFetcher[T], offset, pageSize int) *PaginationIterator[T] {
	iter := &PaginationIterator[T]{
		ctx:      ctx,
		fetch:    fetch,
		pageSize: pageSize,
		offset:   offset,
	}

	if pageSize <= 0 {
		iter.err = fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
		iter.done = true
	}

	return iter
}

// HasNext reports whether Next will return an item or an error. It fetches the
// next page when the current one is consumed.
func (p *PaginationIterator[T]) HasNext() bool {
	if p.index < len(p.buffer) {
		return true
	}

	if p.err != nil {
		return true
	}

	if p.done {
		return false
	}

	p.fetchPage()

	return p.index < len(p.buffer) || p.err != nil
}

func (p *PaginationIterator[T]) fetchPage() {
	items, err := p.fetch(p.ctx, p.offset, p.pageSize)
	if err != nil {
		p.err = err
		p.done = true

		return
	}

	p.buffer = items
	p.index = 0
	p.offset += p.pageSize

	if len(items) < p.pageSize {
		p.done = true
	}
}

// Next returns the next item. It returns ErrNoMoreItems once the collection is
// exhausted and the fetch error, once, when a page failed.
func (p *PaginationIterator[T]) Next() (T, error) {
	var zero T

	if !p.HasNext() {
		return zero, ErrNoMoreItems
	}

	if p.index < len(p.buffer) {
		item := p.buffer[p.index]
		p.index++

		return item, nil
	}

	err := p.err
	p.err = nil

	return zero, err
}

// Err returns the pending fetch error, if any.
func (p *PaginationIterator[T]) Err() error {
	return p.err
}

// All drains the iterator.
func (p *PaginationIterator[T]) All() ([]T, error) {
	var all []T

	err := p.ForEach(func(item T) error {
		all = append(all, item)

		return nil
	})
	if err != nil {
		return all, err
	}

	return all, nil
}

// ForEach calls fn for every remaining item, stopping at the first error.
func (p *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for p.HasNext() {
		item, err := p.Next()
		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}

	return nil
}
