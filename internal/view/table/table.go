// Package table implements the generic list-view engine behind every data
// grid in the app: one page of records in, a searched/filtered/sorted view
// out, plus selection and action dispatch. It never talks to the backend;
// callers hand it the page they fetched and read Rows() back.
package table

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Record is one row of data treated as an opaque field map. Rows are matched
// by their "id" field for selection and actions.
type Record map[string]interface{}

func (r Record) ID() string {
	return cast.ToString(r["id"])
}

type ColumnType string

const (
	TypeText     ColumnType = "text"
	TypeBoolean  ColumnType = "boolean"
	TypeStatus   ColumnType = "status"
	TypeCurrency ColumnType = "currency"
	TypeNumber   ColumnType = "number"
	TypeDate     ColumnType = "date"
)

// Column describes how to render, sort and filter one attribute of a record.
type Column struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	Type       ColumnType `json:"type,omitempty"`
	Sortable   bool       `json:"sortable"`
	Filterable bool       `json:"filterable"`

	// Render overrides the default per-type cell formatting.
	Render func(Record) string `json:"-"`
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterAll is the sentinel option that disables a basic filter.
const FilterAll = "all"

// Pagination is the externally-driven page descriptor; the engine passes it
// through untouched because slicing happens in the caller/API.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	TotalPages  int `json:"total_pages"`
}

// RowAction is a declarative per-row operation; the engine dispatches but
// never implements the semantics.
type RowAction struct {
	Name    string
	Label   string
	Icon    string
	Visible func(Record) bool
	Handler func(Record) error
}

// BulkAction applies to the selected id set.
type BulkAction struct {
	Name    string
	Label   string
	Icon    string
	Handler func(ids []string) error
}

type State int

const (
	StateReady State = iota
	StateError
	StateLoading
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateError:
		return "error"
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	default:
		return "ready"
	}
}

// Table holds one screen's worth of records plus the active query state.
type Table struct {
	columns []Column
	records []Record

	search    string
	filters   map[string]string
	advanced  map[string]string
	dateStart string
	dateEnd   string
	sortKey   string
	sortOrder SortOrder

	selected map[string]struct{}

	loading    bool
	err        error
	pagination Pagination
	onPage     func(page int)

	rowActions  []RowAction
	bulkActions []BulkAction
}

func New(columns []Column) *Table {
	return &Table{
		columns:  columns,
		filters:  make(map[string]string),
		advanced: make(map[string]string),
		selected: make(map[string]struct{}),
	}
}

func (t *Table) Columns() []Column {
	return t.columns
}

// SetRecords replaces the data page. Query state survives a refetch; the
// selection does not, since ids may no longer be present.
func (t *Table) SetRecords(records []Record) {
	t.records = records
	t.selected = make(map[string]struct{})
	t.err = nil
	t.loading = false
}

func (t *Table) SetLoading(loading bool) {
	t.loading = loading
}

func (t *Table) SetError(err error) {
	t.err = err
	t.loading = false
}

func (t *Table) SetPagination(p Pagination, onPage func(page int)) {
	t.pagination = p
	t.onPage = onPage
}

func (t *Table) Pagination() Pagination {
	return t.pagination
}

// ChangePage delegates to the caller; the engine never slices records itself.
func (t *Table) ChangePage(page int) {
	if t.onPage != nil && page >= 1 {
		t.onPage(page)
	}
}

func (t *Table) SetRowActions(actions []RowAction) {
	t.rowActions = actions
}

func (t *Table) SetBulkActions(actions []BulkAction) {
	t.bulkActions = actions
}

// SetSearch sets the free-text query matched case-insensitively against the
// stringified value of every column, OR'd across columns.
func (t *Table) SetSearch(q string) {
	t.search = q
}

// SetFilter sets a basic equality filter on one column; FilterAll or the
// empty string disables it.
func (t *Table) SetFilter(key, value string) {
	if value == "" || value == FilterAll {
		delete(t.filters, key)
		return
	}
	t.filters[key] = value
}

// SetAdvancedFilter sets a threshold filter: >= for number/currency columns,
// on-or-after for date columns, substring match for everything else.
func (t *Table) SetAdvancedFilter(key, value string) {
	if strings.TrimSpace(value) == "" {
		delete(t.advanced, key)
		return
	}
	t.advanced[key] = value
}

// SetDateRange bounds the first date-tagged column only. Bounds are inclusive;
// a blank side leaves that end open.
func (t *Table) SetDateRange(start, end string) {
	t.dateStart = strings.TrimSpace(start)
	t.dateEnd = strings.TrimSpace(end)
}

// ClearFilters drops search, basic, advanced and date-range filters. Rows()
// then yields the input in its original order (sorting is stable, so an
// unsorted table restores the source ordering exactly).
func (t *Table) ClearFilters() {
	t.search = ""
	t.filters = make(map[string]string)
	t.advanced = make(map[string]string)
	t.dateStart = ""
	t.dateEnd = ""
}

// ToggleSort sorts by the given column, flipping asc/desc on repeat clicks.
// Non-sortable columns are ignored.
func (t *Table) ToggleSort(key string) {
	col := t.column(key)
	if col == nil || !col.Sortable {
		return
	}

	if t.sortKey == key {
		if t.sortOrder == SortAsc {
			t.sortOrder = SortDesc
		} else {
			t.sortOrder = SortAsc
		}
		return
	}
	t.sortKey = key
	t.sortOrder = SortAsc
}

func (t *Table) ClearSort() {
	t.sortKey = ""
	t.sortOrder = ""
}

func (t *Table) SortState() (string, SortOrder) {
	return t.sortKey, t.sortOrder
}

// State reports the render state. Error beats loading beats empty; the three
// are mutually exclusive.
func (t *Table) State() State {
	if t.err != nil {
		return StateError
	}
	if t.loading {
		return StateLoading
	}
	if len(t.Rows()) == 0 {
		return StateEmpty
	}
	return StateReady
}

func (t *Table) Err() error {
	return t.err
}

// Rows recomputes the visible rows: search, then basic filters, then advanced
// filters, then the date range, then a stable sort. The source slice is never
// mutated and filters are non-destructive.
func (t *Table) Rows() []Record {
	rows := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		if !t.matchesSearch(r) {
			continue
		}
		if !t.matchesFilters(r) {
			continue
		}
		if !t.matchesAdvanced(r) {
			continue
		}
		if !t.matchesDateRange(r) {
			continue
		}
		rows = append(rows, r)
	}

	if t.sortKey != "" {
		desc := t.sortOrder == SortDesc
		sort.SliceStable(rows, func(i, j int) bool {
			c := compareValues(rows[i][t.sortKey], rows[j][t.sortKey])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	return rows
}

// DistinctValues lists a column's observed values from the full unfiltered
// input, for populating basic-filter dropdowns. FilterAll is prepended.
func (t *Table) DistinctValues(key string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, r := range t.records {
		v := cast.ToString(r[key])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)

	return append([]string{FilterAll}, values...)
}

// CellValue renders one cell, honoring the column's custom renderer first.
func (t *Table) CellValue(r Record, col Column) string {
	if col.Render != nil {
		return col.Render(r)
	}

	v := r[col.Key]
	switch col.Type {
	case TypeBoolean:
		if cast.ToBool(v) {
			return "Yes"
		}
		return "No"
	case TypeCurrency:
		return fmt.Sprintf("$%.2f", cast.ToFloat64(v))
	default:
		return cast.ToString(v)
	}
}

// VisibleRowActions evaluates each action's visibility predicate for one row.
func (t *Table) VisibleRowActions(r Record) []RowAction {
	var visible []RowAction
	for _, a := range t.rowActions {
		if a.Visible == nil || a.Visible(r) {
			visible = append(visible, a)
		}
	}
	return visible
}

// RunRowAction dispatches a named action for the row with the given id.
func (t *Table) RunRowAction(name, id string) error {
	for _, r := range t.Rows() {
		if r.ID() != id {
			continue
		}
		for _, a := range t.rowActions {
			if a.Name != name {
				continue
			}
			if a.Visible != nil && !a.Visible(r) {
				return fmt.Errorf("action %q not available for row %q", name, id)
			}
			if a.Handler == nil {
				return nil
			}
			return a.Handler(r)
		}
		return fmt.Errorf("unknown row action %q", name)
	}
	return fmt.Errorf("row %q not visible", id)
}

func (t *Table) ToggleSelect(id string) {
	if _, ok := t.selected[id]; ok {
		delete(t.selected, id)
		return
	}
	t.selected[id] = struct{}{}
}

// ToggleSelectAll flips between no selection and all currently visible
// (sorted/filtered) rows. On an empty view it is a no-op.
func (t *Table) ToggleSelectAll() {
	rows := t.Rows()
	if len(rows) == 0 {
		return
	}

	allSelected := true
	for _, r := range rows {
		if _, ok := t.selected[r.ID()]; !ok {
			allSelected = false
			break
		}
	}

	if allSelected {
		t.selected = make(map[string]struct{})
		return
	}

	t.selected = make(map[string]struct{}, len(rows))
	for _, r := range rows {
		t.selected[r.ID()] = struct{}{}
	}
}

func (t *Table) IsSelected(id string) bool {
	_, ok := t.selected[id]
	return ok
}

// SelectedIDs returns the selection in current visible-row order.
func (t *Table) SelectedIDs() []string {
	var ids []string
	for _, r := range t.Rows() {
		if t.IsSelected(r.ID()) {
			ids = append(ids, r.ID())
		}
	}
	return ids
}

func (t *Table) ClearSelection() {
	t.selected = make(map[string]struct{})
}

// RunBulkAction dispatches a named bulk action against the current selection.
// The selection is cleared once the action fires, whether or not it succeeds.
func (t *Table) RunBulkAction(name string) error {
	ids := t.SelectedIDs()
	if len(ids) == 0 {
		return fmt.Errorf("no rows selected")
	}

	for _, a := range t.bulkActions {
		if a.Name != name {
			continue
		}
		t.ClearSelection()
		if a.Handler == nil {
			return nil
		}
		return a.Handler(ids)
	}
	return fmt.Errorf("unknown bulk action %q", name)
}

func (t *Table) column(key string) *Column {
	for i := range t.columns {
		if t.columns[i].Key == key {
			return &t.columns[i]
		}
	}
	return nil
}

func (t *Table) firstDateColumn() *Column {
	for i := range t.columns {
		if t.columns[i].Type == TypeDate {
			return &t.columns[i]
		}
	}
	return nil
}

func (t *Table) matchesSearch(r Record) bool {
	q := strings.ToLower(strings.TrimSpace(t.search))
	if q == "" {
		return true
	}
	for _, col := range t.columns {
		v := strings.ToLower(cast.ToString(r[col.Key]))
		if strings.Contains(v, q) {
			return true
		}
	}
	return false
}

func (t *Table) matchesFilters(r Record) bool {
	for key, want := range t.filters {
		if cast.ToString(r[key]) != want {
			return false
		}
	}
	return true
}

func (t *Table) matchesAdvanced(r Record) bool {
	for key, raw := range t.advanced {
		col := t.column(key)
		colType := TypeText
		if col != nil {
			colType = col.Type
		}

		switch colType {
		case TypeNumber, TypeCurrency:
			threshold, err := cast.ToFloat64E(raw)
			if err != nil {
				continue
			}
			v, err := cast.ToFloat64E(r[key])
			if err != nil || v < threshold {
				return false
			}
		case TypeDate:
			threshold, err := parseDateValue(raw)
			if err != nil {
				continue
			}
			v, err := parseDateValue(r[key])
			if err != nil || v.Before(threshold) {
				return false
			}
		default:
			v := strings.ToLower(cast.ToString(r[key]))
			if !strings.Contains(v, strings.ToLower(raw)) {
				return false
			}
		}
	}
	return true
}

func (t *Table) matchesDateRange(r Record) bool {
	if t.dateStart == "" && t.dateEnd == "" {
		return true
	}
	col := t.firstDateColumn()
	if col == nil {
		return true
	}

	v, err := parseDateValue(r[col.Key])
	if err != nil {
		return false
	}

	if t.dateStart != "" {
		start, err := parseDateValue(t.dateStart)
		if err == nil && v.Before(start) {
			return false
		}
	}
	if t.dateEnd != "" {
		end, err := parseDateValue(t.dateEnd)
		if err == nil && v.After(end) {
			return false
		}
	}
	return true
}

// compareValues orders two raw field values natively: numerics numerically,
// times chronologically, everything else byte-wise on the stringified value.
func compareValues(a, b interface{}) int {
	af, aok := numericValue(a)
	bf, bok := numericValue(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(cast.ToString(a), cast.ToString(b))
}

// numericValue accepts genuinely numeric kinds only; numeric-looking strings
// keep their lexicographic ordering.
func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func parseDateValue(v interface{}) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}

	s := strings.TrimSpace(cast.ToString(v))
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
