// Package listquery implements the client-side complaint list projection:
// keyword and date-range filtering, sorting, and pagination over the full
// fetched collection. Apply is a pure function of the collection and the
// query state, so repeated application with the same inputs yields the same
// page.
package listquery

import (
	"slices"
	"strconv"
	"strings"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
)

// PageSize is the fixed number of rows per page.
const PageSize = 10

// pageOffset is how many page numbers are shown on each side of the current page.
const pageOffset = 2

// Ellipsis marks a collapsed run of hidden page numbers in PageNumbers output.
const Ellipsis = "..."

// SortKey selects one of the four total-order sorts.
type SortKey string

const (
	SortDateDesc SortKey = "date-desc"
	SortDateAsc  SortKey = "date-asc"
	SortStatus   SortKey = "status"
	SortTitle    SortKey = "title"
)

// ParseSortKey maps a request parameter to a SortKey, defaulting to date descending.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortDateAsc, SortStatus, SortTitle:
		return SortKey(raw)
	}
	return SortDateDesc
}

// State is the user-controlled query state of one list view.
//
// Keyword and date edits land in the Draft fields and only take effect when
// Search commits them; the sort key applies immediately. State survives
// between requests in the session and is reset only by an explicit user
// action.
type State struct {
	DraftKeyword   string
	DraftStartDate string
	DraftEndDate   string

	Keyword   string
	StartDate string
	EndDate   string

	Sort SortKey
	Page int
}

// NewState returns the default query state: no filters, newest first, page 1.
func NewState() State {
	return State{Sort: SortDateDesc, Page: 1}
}

// EditKeyword records a keyword edit without applying it.
func (s *State) EditKeyword(keyword string) {
	s.DraftKeyword = keyword
}

// EditDateRange records a date-range edit without applying it.
func (s *State) EditDateRange(start, end string) {
	s.DraftStartDate = start
	s.DraftEndDate = end
}

// Search commits the drafted filters and returns to the first page.
func (s *State) Search() {
	s.Keyword = s.DraftKeyword
	s.StartDate = s.DraftStartDate
	s.EndDate = s.DraftEndDate
	s.Page = 1
}

// SetSort switches the sort order. Unlike filters, sorting applies immediately.
func (s *State) SetSort(key SortKey) {
	s.Sort = key
}

// Reset clears all filters and drafts, restores the default sort, and
// returns to the first page.
func (s *State) Reset() {
	*s = NewState()
}

// GoToPage requests a page; the value is clamped against the filtered
// collection when Apply runs.
func (s *State) GoToPage(page int) {
	s.Page = page
}

// Result is the visible page derived from a collection and a State.
type Result struct {
	Items         []models.ComplaintSummary
	FilteredCount int
	TotalCount    int
	TotalPages    int
	// Page is the clamped current page, 1-indexed.
	Page int
}

// Apply derives the visible page. It never mutates the input collection.
func Apply(all []models.ComplaintSummary, s State) Result {
	filtered := filter(all, s)
	sortComplaints(filtered, s.Sort)

	totalPages := TotalPages(len(filtered))
	page := ClampPage(s.Page, totalPages)

	start := (page - 1) * PageSize
	end := min(start+PageSize, len(filtered))
	if start > len(filtered) {
		start, end = 0, 0
	}

	return Result{
		Items:         filtered[start:end],
		FilteredCount: len(filtered),
		TotalCount:    len(all),
		TotalPages:    totalPages,
		Page:          page,
	}
}

// filter applies the committed keyword and date-range predicates. The
// predicates are independent so their order does not affect the result.
func filter(all []models.ComplaintSummary, s State) []models.ComplaintSummary {
	filtered := make([]models.ComplaintSummary, 0, len(all))
	keyword := strings.ToLower(strings.TrimSpace(s.Keyword))
	for _, c := range all {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(c.Title), keyword) &&
			!strings.Contains(strings.ToLower(c.ID), keyword) {
			continue
		}
		// ISO 8601 dates order correctly as strings; bounds are inclusive.
		if s.StartDate != "" && c.SubmittedDate < s.StartDate {
			continue
		}
		if s.EndDate != "" && c.SubmittedDate > s.EndDate {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func sortComplaints(complaints []models.ComplaintSummary, key SortKey) {
	slices.SortStableFunc(complaints, func(a, b models.ComplaintSummary) int {
		switch key {
		case SortDateAsc:
			return strings.Compare(a.SubmittedDate, b.SubmittedDate)
		case SortStatus:
			return strings.Compare(string(a.Status), string(b.Status))
		case SortTitle:
			return strings.Compare(a.Title, b.Title)
		default:
			return strings.Compare(b.SubmittedDate, a.SubmittedDate)
		}
	})
}

// TotalPages is always at least 1, even for an empty collection.
func TotalPages(filteredCount int) int {
	pages := (filteredCount + PageSize - 1) / PageSize
	return max(1, pages)
}

// ClampPage clamps a requested page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	return max(1, min(page, totalPages))
}

// PageNumbers builds the pagination strip: always page 1 and the last page,
// every page within pageOffset of the current page, and the remaining gaps
// collapsed into the Ellipsis marker. The strip never repeats a value.
func PageNumbers(current, totalPages int) []string {
	current = ClampPage(current, totalPages)

	var strip []string
	seen := make(map[string]bool)
	push := func(v string) {
		if !seen[v] {
			seen[v] = true
			strip = append(strip, v)
		}
	}

	for i := 1; i <= totalPages; i++ {
		switch {
		case i == 1 || i == totalPages ||
			(i >= current-pageOffset && i <= current+pageOffset):
			push(strconv.Itoa(i))
		case i == current-pageOffset-1 || i == current+pageOffset+1:
			push(Ellipsis)
		}
	}
	return strip
}
