package appstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(23, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
}

func TestPaginationDefaults(t *testing.T) {
	store := NewStore()

	p := store.Pagination("inventory", 45, 0)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, DefaultItemsPerPage, p.ItemsPerPage)
	assert.Equal(t, 45, p.TotalItems)
	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, 0, p.Offset())
}

func TestGoToPageBoundaries(t *testing.T) {
	store := NewStore()

	// module "orders-pick-list" with 23 items at 10 per page has 3 pages
	p := store.Pagination("orders-pick-list", 23, 10)
	require.Equal(t, 3, p.TotalPages)

	assert.False(t, p.GoToPage(0), "page 0 must be rejected")
	assert.False(t, p.GoToPage(-1))
	assert.False(t, p.GoToPage(4), "page past the end must be rejected, not clamped")
	_, stored := store.State().Pagination["orders-pick-list"]
	assert.False(t, stored, "rejected requests must not write state")

	require.True(t, p.GoToPage(3))
	p = store.Pagination("orders-pick-list", 23, 10)
	assert.Equal(t, 3, p.CurrentPage)

	assert.False(t, p.GoToPage(4), "still rejected from the last page")
	p = store.Pagination("orders-pick-list", 23, 10)
	assert.Equal(t, 3, p.CurrentPage, "current page unchanged after rejection")

	require.True(t, p.GoToPage(2))
	p = store.Pagination("orders-pick-list", 23, 10)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 10, p.Offset())
}

func TestSetItemsPerPageRecomputesAtomically(t *testing.T) {
	store := NewStore()

	p := store.Pagination("inventory", 23, 10)
	require.True(t, p.GoToPage(3))

	p = store.Pagination("inventory", 23, 10)
	p.SetItemsPerPage(5)

	stored := store.State().Pagination["inventory"]
	assert.Equal(t, 1, stored.CurrentPage, "page size change resets to the first page")
	assert.Equal(t, 5, stored.ItemsPerPage)
	assert.Equal(t, 5, stored.TotalPages)
}

func TestShrinkingTotalsBoundCurrentPage(t *testing.T) {
	store := NewStore()

	p := store.Pagination("inventory", 23, 10)
	require.True(t, p.GoToPage(3))

	// shrink to a single page: the stored page must follow the data
	p = store.Pagination("inventory", 23, 10)
	p.SetTotalItems(5)

	stored := store.State().Pagination["inventory"]
	assert.Equal(t, 1, stored.TotalPages)
	assert.Equal(t, 1, stored.CurrentPage, "page must not point past the data")

	// partial shrink lands on the last remaining page
	p = store.Pagination("inventory", 5, 10)
	p.SetTotalItems(23)
	p = store.Pagination("inventory", 23, 10)
	require.True(t, p.GoToPage(3))
	p = store.Pagination("inventory", 23, 10)
	p.SetTotalItems(15)

	stored = store.State().Pagination["inventory"]
	assert.Equal(t, 2, stored.TotalPages)
	assert.Equal(t, 2, stored.CurrentPage)
	assert.Equal(t, 10, store.Pagination("inventory", 15, 10).Offset())
}

func TestDerivedViewBoundsStaleStoredPage(t *testing.T) {
	store := NewStore()

	p := store.Pagination("orders", 23, 10)
	require.True(t, p.GoToPage(3))

	// deriving against a smaller data set must not echo the stale page
	p = store.Pagination("orders", 5, 10)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 0, p.Offset())
}

func TestSetTotalItemsRecomputes(t *testing.T) {
	store := NewStore()

	p := store.Pagination("orders", 23, 10)
	p.SetTotalItems(31)

	stored := store.State().Pagination["orders"]
	assert.Equal(t, 31, stored.TotalItems)
	assert.Equal(t, 4, stored.TotalPages)
}

func TestPaginationIsPerModule(t *testing.T) {
	store := NewStore()

	pa := store.Pagination("inventory", 50, 10)
	require.True(t, pa.GoToPage(4))

	pb := store.Pagination("orders", 50, 10)
	assert.Equal(t, 1, pb.CurrentPage, "other modules start at page 1")
}
