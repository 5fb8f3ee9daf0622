package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingColumns() []Column {
	return []Column{
		{Key: "id", Label: "ID", Type: TypeNumber, Sortable: true},
		{Key: "customer", Label: "Customer", Type: TypeText, Sortable: true, Filterable: false},
		{Key: "status", Label: "Status", Type: TypeStatus, Filterable: true},
		{Key: "total", Label: "Total", Type: TypeCurrency, Sortable: true},
		{Key: "start_date", Label: "Start", Type: TypeDate, Sortable: true},
	}
}

func bookingRecords() []Record {
	return []Record{
		{"id": 1, "customer": "Alice", "status": "pending", "total": 250.0, "start_date": "2025-08-10"},
		{"id": 2, "customer": "Bob", "status": "done", "total": 100.0, "start_date": "2025-08-01"},
		{"id": 3, "customer": "Carol", "status": "pending", "total": 400.0, "start_date": "2025-08-20"},
		{"id": 4, "customer": "Dave", "status": "cancelled", "total": 250.0, "start_date": "2025-07-15"},
	}
}

func newBookingTable() *Table {
	t := New(bookingColumns())
	t.SetRecords(bookingRecords())
	return t
}

func rowIDs(rows []Record) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r["id"].(int)
	}
	return ids
}

func TestRows_BasicFilter(t *testing.T) {
	tbl := New([]Column{
		{Key: "id", Label: "ID"},
		{Key: "status", Label: "Status", Filterable: true},
	})
	tbl.SetRecords([]Record{
		{"id": 1, "status": "pending"},
		{"id": 2, "status": "done"},
		{"id": 3, "status": "pending"},
	})

	tbl.SetFilter("status", "pending")
	assert.Equal(t, []int{1, 3}, rowIDs(tbl.Rows()))

	// The "all" sentinel disables the filter and restores original order.
	tbl.SetFilter("status", FilterAll)
	assert.Equal(t, []int{1, 2, 3}, rowIDs(tbl.Rows()))
}

func TestRows_SearchORedAcrossColumns(t *testing.T) {
	tbl := newBookingTable()

	// "al" matches Alice in customer; case-insensitive.
	tbl.SetSearch("AL")
	assert.Equal(t, []int{1}, rowIDs(tbl.Rows()))

	// Search is ANDed with active filters.
	tbl.SetSearch("o")
	tbl.SetFilter("status", "pending")
	assert.Equal(t, []int{3}, rowIDs(tbl.Rows())) // Carol, pending
}

func TestRows_AdvancedFilters(t *testing.T) {
	tbl := newBookingTable()

	// Currency column: greater-or-equal threshold.
	tbl.SetAdvancedFilter("total", "250")
	assert.Equal(t, []int{1, 3, 4}, rowIDs(tbl.Rows()))

	// Date column: on-or-after; combines with AND.
	tbl.SetAdvancedFilter("start_date", "2025-08-01")
	assert.Equal(t, []int{1, 3}, rowIDs(tbl.Rows()))

	// Text column: substring.
	tbl.SetAdvancedFilter("customer", "aro")
	assert.Equal(t, []int{3}, rowIDs(tbl.Rows()))

	// Clearing one leaves the others active.
	tbl.SetAdvancedFilter("customer", "")
	assert.Equal(t, []int{1, 3}, rowIDs(tbl.Rows()))
}

func TestRows_DateRangeFirstDateColumnOnly(t *testing.T) {
	tbl := newBookingTable()

	tbl.SetDateRange("2025-08-01", "2025-08-15")
	assert.Equal(t, []int{1, 2}, rowIDs(tbl.Rows())) // inclusive on both ends

	// Open-ended start.
	tbl.SetDateRange("", "2025-08-01")
	assert.Equal(t, []int{2, 4}, rowIDs(tbl.Rows()))

	// Open-ended end.
	tbl.SetDateRange("2025-08-10", "")
	assert.Equal(t, []int{1, 3}, rowIDs(tbl.Rows()))
}

func TestRows_SortToggleAndStability(t *testing.T) {
	tbl := newBookingTable()
	source := bookingRecords()

	tbl.ToggleSort("total")
	assert.Equal(t, []int{2, 1, 4, 3}, rowIDs(tbl.Rows())) // ties keep input order (1 before 4)

	tbl.ToggleSort("total")
	key, order := tbl.SortState()
	assert.Equal(t, "total", key)
	assert.Equal(t, SortDesc, order)
	assert.Equal(t, []int{3, 1, 4, 2}, rowIDs(tbl.Rows()))

	// Exactly two states per column.
	tbl.ToggleSort("total")
	assert.Equal(t, []int{2, 1, 4, 3}, rowIDs(tbl.Rows()))

	// The source array is never mutated.
	for i, r := range bookingRecords() {
		assert.Equal(t, r["id"], source[i]["id"])
	}

	// Non-sortable columns are excluded from the toggle.
	tbl.ToggleSort("status")
	key, _ = tbl.SortState()
	assert.Equal(t, "total", key)
}

func TestRows_ClearRestoresOriginalOrder(t *testing.T) {
	tbl := newBookingTable()

	tbl.SetSearch("a")
	tbl.SetFilter("status", "pending")
	tbl.SetAdvancedFilter("total", "300")
	tbl.SetDateRange("2025-08-01", "")
	tbl.ToggleSort("total")

	tbl.ClearFilters()
	tbl.ClearSort()
	assert.Equal(t, []int{1, 2, 3, 4}, rowIDs(tbl.Rows()))
}

func TestRows_OutputIsSubsetOfInput(t *testing.T) {
	tbl := newBookingTable()
	tbl.SetSearch("e")
	tbl.SetAdvancedFilter("total", "100")

	input := map[string]bool{}
	for _, r := range bookingRecords() {
		input[r.ID()] = true
	}
	for _, r := range tbl.Rows() {
		assert.True(t, input[r.ID()])
	}
}

func TestDistinctValues_FromFullInput(t *testing.T) {
	tbl := newBookingTable()

	// Filtering must not shrink the options list.
	tbl.SetFilter("status", "pending")
	values := tbl.DistinctValues("status")
	assert.Equal(t, []string{FilterAll, "cancelled", "done", "pending"}, values)
}

func TestSelection_ToggleAllAndBulk(t *testing.T) {
	tbl := newBookingTable()
	tbl.SetFilter("status", "pending")

	tbl.ToggleSelectAll()
	assert.Equal(t, []string{"1", "3"}, tbl.SelectedIDs())

	// Toggling again yields the empty selection.
	tbl.ToggleSelectAll()
	assert.Empty(t, tbl.SelectedIDs())

	// Select-all on an empty view is a no-op.
	tbl.SetFilter("status", "nonexistent")
	tbl.ToggleSelectAll()
	assert.Empty(t, tbl.SelectedIDs())
}

func TestRunBulkAction_ClearsSelection(t *testing.T) {
	tbl := newBookingTable()

	var got []string
	tbl.SetBulkActions([]BulkAction{{
		Name: "cancel",
		Handler: func(ids []string) error {
			got = ids
			return nil
		},
	}})

	tbl.ToggleSelect("1")
	tbl.ToggleSelect("3")
	require.NoError(t, tbl.RunBulkAction("cancel"))
	assert.Equal(t, []string{"1", "3"}, got)
	assert.Empty(t, tbl.SelectedIDs())

	// Selection is cleared even when the handler fails.
	tbl.SetBulkActions([]BulkAction{{
		Name:    "boom",
		Handler: func(ids []string) error { return errors.New("backend down") },
	}})
	tbl.ToggleSelect("2")
	assert.Error(t, tbl.RunBulkAction("boom"))
	assert.Empty(t, tbl.SelectedIDs())

	assert.Error(t, tbl.RunBulkAction("cancel")) // nothing selected
}

func TestRowActions_VisibilityPredicate(t *testing.T) {
	tbl := newBookingTable()

	var cancelled string
	tbl.SetRowActions([]RowAction{{
		Name:    "cancel",
		Label:   "Cancel",
		Visible: func(r Record) bool { return r["status"] == "pending" },
		Handler: func(r Record) error {
			cancelled = r.ID()
			return nil
		},
	}})

	pending := Record{"id": 1, "status": "pending"}
	done := Record{"id": 2, "status": "done"}
	assert.Len(t, tbl.VisibleRowActions(pending), 1)
	assert.Empty(t, tbl.VisibleRowActions(done))

	require.NoError(t, tbl.RunRowAction("cancel", "1"))
	assert.Equal(t, "1", cancelled)

	// Not available on rows the predicate rejects.
	assert.Error(t, tbl.RunRowAction("cancel", "2"))
}

func TestState_PriorityOrder(t *testing.T) {
	tbl := newBookingTable()
	assert.Equal(t, StateReady, tbl.State())

	tbl.SetFilter("status", "nonexistent")
	assert.Equal(t, StateEmpty, tbl.State())

	tbl.SetLoading(true)
	assert.Equal(t, StateLoading, tbl.State())

	// Error wins over loading and empty.
	tbl.SetError(errors.New("fetch failed"))
	assert.Equal(t, StateError, tbl.State())
}

func TestCellValue_Formatting(t *testing.T) {
	tbl := New([]Column{
		{Key: "rate", Label: "Rate", Type: TypeCurrency},
		{Key: "active", Label: "Active", Type: TypeBoolean},
		{Key: "make", Label: "Make", Render: func(r Record) string { return "custom" }},
	})

	r := Record{"rate": 49.5, "active": true, "make": "Toyota"}
	assert.Equal(t, "$49.50", tbl.CellValue(r, tbl.Columns()[0]))
	assert.Equal(t, "Yes", tbl.CellValue(r, tbl.Columns()[1]))
	assert.Equal(t, "custom", tbl.CellValue(r, tbl.Columns()[2]))
}

func TestChangePage_DelegatesToCaller(t *testing.T) {
	tbl := newBookingTable()

	var requested int
	tbl.SetPagination(Pagination{CurrentPage: 1, PerPage: 20, Total: 80, TotalPages: 4}, func(page int) {
		requested = page
	})

	tbl.ChangePage(3)
	assert.Equal(t, 3, requested)

	tbl.ChangePage(0) // invalid page is ignored
	assert.Equal(t, 3, requested)
}

func TestSortNativeOrdering(t *testing.T) {
	tbl := New([]Column{
		{Key: "id", Type: TypeNumber, Sortable: true},
		{Key: "plate", Type: TypeText, Sortable: true},
	})
	tbl.SetRecords([]Record{
		{"id": 10, "plate": "B-2"},
		{"id": 2, "plate": "A-10"},
		{"id": 1, "plate": "A-2"},
	})

	// Numeric values compare numerically: 1 < 2 < 10.
	tbl.ToggleSort("id")
	assert.Equal(t, []int{1, 2, 10}, rowIDs(tbl.Rows()))

	// Strings compare byte-wise: "A-10" < "A-2" < "B-2".
	tbl.ClearSort()
	tbl.ToggleSort("plate")
	assert.Equal(t, []int{2, 1, 10}, rowIDs(tbl.Rows()))
}
