package appstate

import "warehouse/internal/domain"

// DefaultItemsPerPage applies when a caller passes a non-positive page size.
const DefaultItemsPerPage = 10

// Pagination is the derived pagination view for one module: the current
// window computed from the store snapshot plus update callbacks. Build it
// fresh from the store whenever totalItems changes; TotalPages is always
// recomputed from the arguments, never trusted from the stored entry.
type Pagination struct {
	domain.PaginationState
	store  *Store
	module string
}

// Pagination derives the view for module. Without a stored entry the
// window starts at page 1.
func (s *Store) Pagination(module string, totalItems, itemsPerPage int) Pagination {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}

	totalPages := TotalPages(totalItems, itemsPerPage)
	page := 1
	if stored, ok := s.State().Pagination[module]; ok && stored.CurrentPage >= 1 {
		page = boundPage(stored.CurrentPage, totalPages)
	}

	return Pagination{
		PaginationState: domain.PaginationState{
			CurrentPage:  page,
			ItemsPerPage: itemsPerPage,
			TotalItems:   totalItems,
			TotalPages:   totalPages,
		},
		store:  s,
		module: module,
	}
}

// GoToPage moves to page n. An out-of-range n is rejected outright and
// the state is left unchanged; there is no clamping.
func (p Pagination) GoToPage(n int) bool {
	if n < 1 || n > p.TotalPages {
		return false
	}
	next := p.PaginationState
	next.CurrentPage = n
	p.store.Dispatch(SetPagination{Module: p.module, Pagination: next})
	return true
}

// SetItemsPerPage changes the page size and recomputes TotalPages in the
// same update, resetting to the first page.
func (p Pagination) SetItemsPerPage(n int) {
	if n <= 0 {
		n = DefaultItemsPerPage
	}
	next := domain.PaginationState{
		CurrentPage:  1,
		ItemsPerPage: n,
		TotalItems:   p.TotalItems,
		TotalPages:   TotalPages(p.TotalItems, n),
	}
	p.store.Dispatch(SetPagination{Module: p.module, Pagination: next})
}

// SetTotalItems records a new item count and recomputes TotalPages
// atomically with it. A shrinking count pulls CurrentPage back onto the
// last remaining page so the window never points past the data.
func (p Pagination) SetTotalItems(total int) {
	next := p.PaginationState
	next.TotalItems = total
	next.TotalPages = TotalPages(total, next.ItemsPerPage)
	next.CurrentPage = boundPage(next.CurrentPage, next.TotalPages)
	p.store.Dispatch(SetPagination{Module: p.module, Pagination: next})
}

// Offset is the zero-based index of the first item on the current page.
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.ItemsPerPage
}

// TotalPages is ceil(totalItems/itemsPerPage).
func TotalPages(totalItems, itemsPerPage int) int {
	if itemsPerPage <= 0 {
		return 0
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// boundPage keeps a page inside [1, max(totalPages,1)]. This is the
// recompute applied when the data set changes underneath a stored page,
// distinct from GoToPage's outright rejection of invalid requests.
func boundPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		return totalPages
	}
	if page < 1 {
		return 1
	}
	return page
}
