package analysis

import (
	"sort"
	"time"

	"github.com/hoko-ai/analytics/pkg/models/domain"
)

// Merge outer-joins the given tables on the date key. The resulting
// date domain is the union of all inputs; a date a table never
// observed yields invalid cells for that table's columns, not zeros.
// The row set is independent of input order; column order follows it.
func Merge(tables []domain.Table) domain.Table {
	if len(tables) == 0 {
		return domain.NewTable()
	}

	dateSet := map[time.Time]struct{}{}
	for _, t := range tables {
		for _, d := range t.Dates {
			dateSet[d] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := domain.Table{
		Dates:   dates,
		Columns: []string{},
		Values:  map[string][]domain.Cell{},
	}
	index := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	for _, t := range tables {
		for _, col := range t.Columns {
			cells := make([]domain.Cell, len(dates))
			src := t.Values[col]
			for i, d := range t.Dates {
				cells[index[d]] = src[i]
			}
			if _, dup := out.Values[col]; !dup {
				out.Columns = append(out.Columns, col)
			}
			out.Values[col] = cells
		}
	}
	return out
}

// Clip restricts a merged table to days within [from, to]; a nil bound
// leaves that side open.
func Clip(t domain.Table, from, to *time.Time) domain.Table {
	if from == nil && to == nil {
		return t
	}
	keep := make([]int, 0, len(t.Dates))
	for i, d := range t.Dates {
		if from != nil && d.Before(*from) {
			continue
		}
		if to != nil && d.After(*to) {
			continue
		}
		keep = append(keep, i)
	}
	if len(keep) == len(t.Dates) {
		return t
	}

	out := domain.Table{
		Dates:   make([]time.Time, len(keep)),
		Columns: append([]string{}, t.Columns...),
		Values:  make(map[string][]domain.Cell, len(t.Columns)),
	}
	for j, i := range keep {
		out.Dates[j] = t.Dates[i]
	}
	for _, col := range t.Columns {
		src := t.Values[col]
		cells := make([]domain.Cell, len(keep))
		for j, i := range keep {
			cells[j] = src[i]
		}
		out.Values[col] = cells
	}
	return out
}
