// Package report builds the view model for the reports screen: a
// per-user aggregate list keyed by report kind, with per-row drill-down
// that is a pure visibility toggle over detail records already embedded
// in the payload.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"workday-web/internal/model"
)

type Kind string

const (
	KindHours        Kind = "horas"
	KindProduction   Kind = "producao"
	KindConsolidated Kind = "consolidado"
)

// ParseKind maps a query value to a report kind, defaulting to hours.
func ParseKind(raw string) Kind {
	switch Kind(strings.TrimSpace(strings.ToLower(raw))) {
	case KindProduction:
		return KindProduction
	case KindConsolidated:
		return KindConsolidated
	default:
		return KindHours
	}
}

// Filter is one report request: kind, optional user, inclusive date range.
type Filter struct {
	Kind   Kind
	UserID int
	Start  string
	End    string
}

// DefaultRange returns the first and last day of now's calendar month,
// formatted as the API expects.
func DefaultRange(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// View is a fetched report ready for rendering. Expanded holds the ids
// of rows whose embedded detail records are visible; toggling membership
// never triggers a new fetch.
type View struct {
	Filter          Filter
	Rows            []model.ReportRow
	TotalHours      *float64
	TotalProduction *int
	Expanded        map[int]bool
}

// NewView pairs a payload with its filter. Totals are kept only for the
// kinds that define them, mirroring the upstream contract.
func NewView(filter Filter, payload model.ReportPayload, expanded map[int]bool) *View {
	if expanded == nil {
		expanded = map[int]bool{}
	}

	view := &View{Filter: filter, Rows: payload.Users, Expanded: expanded}
	switch filter.Kind {
	case KindHours:
		view.TotalHours = payload.TotalHours
	case KindProduction:
		view.TotalProduction = payload.TotalProduction
	}

	return view
}

// ParseExpanded decodes the exp query parameter ("3,7,12") into the set
// of expanded row ids. Unparseable entries are ignored.
func ParseExpanded(raw string) map[int]bool {
	expanded := map[int]bool{}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			continue
		}
		expanded[id] = true
	}
	return expanded
}

// ToggleParam returns the exp parameter value with rowID's expansion
// flipped, leaving every other row's state untouched. Rows expand and
// collapse independently.
func ToggleParam(expanded map[int]bool, rowID int) string {
	ids := make([]int, 0, len(expanded)+1)
	for id, on := range expanded {
		if !on || id == rowID {
			continue
		}
		ids = append(ids, id)
	}
	if !expanded[rowID] {
		ids = append(ids, rowID)
	}

	sort.Ints(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}

// EncodeExpanded renders the current expansion set as an exp value.
func EncodeExpanded(expanded map[int]bool) string {
	ids := make([]int, 0, len(expanded))
	for id, on := range expanded {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
