package incident

import "sort"

// NewIncidentSet assembles a set from per-category results.
// Every known category is present, empty when nothing was supplied.
func NewIncidentSet(byCategory map[Category][]Incident) IncidentSet {
	set := make(IncidentSet, len(Categories))
	for _, c := range Categories {
		items := byCategory[c]
		if items == nil {
			items = []Incident{}
		}
		set[c] = items
	}
	return set
}

// All flattens the set into one list, most recent first.
// Incidents without a timestamp sort last; ties keep category then source order.
func (s IncidentSet) All() []Incident {
	var n int
	for _, c := range Categories {
		n += len(s[c])
	}

	all := make([]Incident, 0, n)
	for _, c := range Categories {
		all = append(all, s[c]...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		ti, tj := all[i].Timestamp, all[j].Timestamp
		if ti.IsZero() || tj.IsZero() {
			return !ti.IsZero() && tj.IsZero()
		}
		return ti.After(tj)
	})
	return all
}

// Len returns the number of incidents across all categories.
func (s IncidentSet) Len() int {
	var n int
	for _, items := range s {
		n += len(items)
	}
	return n
}
