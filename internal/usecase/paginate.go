package usecase

import "adsdash/internal/domain"

// DefaultPageSize matches the dashboard's fixed table page length.
const DefaultPageSize = 10

// Page slices out the zero-based page at the given size, clipped to the
// collection bounds. An out-of-range index yields an empty slice; clamping
// is the caller's job.
func Page(records []domain.Record, index, size int) []domain.Record {
	if size <= 0 || index < 0 {
		return []domain.Record{}
	}

	start := index * size
	if start >= len(records) {
		return []domain.Record{}
	}

	end := start + size
	if end > len(records) {
		end = len(records)
	}

	page := make([]domain.Record, end-start)
	copy(page, records[start:end])
	return page
}

// PageCount is ceil(total/size) with a floor of one page, so an empty
// collection still renders a single empty page.
func PageCount(total, size int) int {
	if size <= 0 {
		return 1
	}
	count := (total + size - 1) / size
	if count < 1 {
		return 1
	}
	return count
}

// ClampPage restricts a requested page index to [0, PageCount-1]. Used at
// the navigation boundary so out-of-range requests never reach Page.
func ClampPage(index, total, size int) int {
	last := PageCount(total, size) - 1
	if index < 0 {
		return 0
	}
	if index > last {
		return last
	}
	return index
}
