package domain

// Pagination defaults shared by every table.
const (
	// DefaultPageSize is the number of rows shown per page.
	DefaultPageSize = 10

	// DefaultBlockSize is the number of page controls visible at once.
	// Pages are grouped into fixed blocks so that a dataset with
	// thousands of rows never produces thousands of controls; moving
	// past the edge of a block jumps by a whole block.
	DefaultBlockSize = 10
)

// Paginate returns the rows visible on the given 1-based page, clipped
// to the dataset bounds. A nil or empty dataset, or a page outside the
// dataset, yields an empty slice. No side effects.
func Paginate(rows []Record, page, pageSize int) []Record {
	if len(rows) == 0 || page < 1 || pageSize < 1 {
		return []Record{}
	}

	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []Record{}
	}

	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// TotalPages returns the number of pages for a dataset, minimum 1.
// Zero rows are treated as a single empty page.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize < 1 {
		return 1
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Window is the visible pagination control state for one table.
type Window struct {
	// Pages are the visible page numbers, at most one block.
	Pages []int

	// PrevTarget is the page the Previous control jumps to.
	PrevTarget int

	// NextTarget is the page the Next control jumps to.
	NextTarget int

	// PrevDisabled is true exactly when the first block is visible.
	PrevDisabled bool

	// NextDisabled is true exactly when the last page is visible.
	NextDisabled bool

	// TotalPages is the page count, minimum 1.
	TotalPages int
}

// ComputeWindow derives the visible control range for a current page.
// The control shows one block of consecutive page numbers at a time;
// Previous jumps just before the block, Next jumps just after it.
func ComputeWindow(currentPage, totalItems, pageSize, blockSize int) Window {
	if blockSize < 1 {
		blockSize = DefaultBlockSize
	}
	if currentPage < 1 {
		currentPage = 1
	}

	totalPages := TotalPages(totalItems, pageSize)
	if currentPage > totalPages {
		currentPage = totalPages
	}

	blockIndex := (currentPage - 1) / blockSize
	blockStart := blockIndex*blockSize + 1
	blockEnd := blockStart + blockSize - 1
	if blockEnd > totalPages {
		blockEnd = totalPages
	}

	pages := make([]int, 0, blockSize)
	for p := blockStart; p <= blockEnd; p++ {
		pages = append(pages, p)
	}

	prev := blockStart - 1
	if prev < 1 {
		prev = 1
	}
	next := blockEnd + 1
	if next > totalPages {
		next = totalPages
	}

	return Window{
		Pages:        pages,
		PrevTarget:   prev,
		NextTarget:   next,
		PrevDisabled: blockStart == 1,
		NextDisabled: blockEnd >= totalPages,
		TotalPages:   totalPages,
	}
}

// Cursor is the mutable pagination state bound to one dataset.
type Cursor struct {
	// Page is the current 1-based page.
	Page int

	// PageSize is the fixed number of rows per page.
	PageSize int
}

// NewCursor creates a cursor positioned on page 1.
func NewCursor(pageSize int) Cursor {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Cursor{Page: 1, PageSize: pageSize}
}

// GoTo moves the cursor to the given page, clamped to [1, totalPages]
// for the dataset length.
func (c *Cursor) GoTo(page, totalItems int) {
	totalPages := TotalPages(totalItems, c.PageSize)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	c.Page = page
}

// Reset returns the cursor to page 1. Called whenever the bound dataset
// is replaced wholesale.
func (c *Cursor) Reset() {
	c.Page = 1
}
