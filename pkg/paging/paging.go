package paging

import "errors"

// ErrInvalidPage is returned when page or pageSize is not positive.
// Callers are expected to fail fast instead of silently clamping.
var ErrInvalidPage = errors.New("page and page size must be positive")

// Page returns the 1-indexed page slice [(page-1)*pageSize, page*pageSize)
// clipped to the bounds of items. A page past the end yields an empty
// slice. Resetting to page 1 when pageSize changes stays a caller concern.
func Page[T any](items []T, page, pageSize int) ([]T, error) {
	if page < 1 || pageSize < 1 {
		return nil, ErrInvalidPage
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, nil
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], nil
}

// Pages returns the number of pages needed to show count items.
func Pages(count, pageSize int) int {
	if pageSize < 1 {
		return 0
	}

	return (count + pageSize - 1) / pageSize
}
