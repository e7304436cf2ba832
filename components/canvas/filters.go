package canvas

import "sort"

// FilterMap is the shared field -> allowed-values map maintained by slicer
// widgets and consumed by every widget's row resolution. Entries with an
// empty value set are inactive. The map is keyed by field name, so multiple
// slicers bound to the same field implicitly share state.
type FilterMap struct {
	entries map[string]map[string]struct{}
}

// NewFilterMap returns an empty filter map.
func NewFilterMap() *FilterMap {
	return &FilterMap{entries: map[string]map[string]struct{}{}}
}

// Toggle flips membership of value in the field's allowed set and reports
// whether the value is selected afterwards. Removing the last value empties
// the entry and deactivates filtering on the field.
func (f *FilterMap) Toggle(field, value string) bool {
	set, ok := f.entries[field]
	if !ok {
		set = map[string]struct{}{}
		f.entries[field] = set
	}
	if _, selected := set[value]; selected {
		delete(set, value)
		if len(set) == 0 {
			delete(f.entries, field)
		}
		return false
	}
	set[value] = struct{}{}
	return true
}

// SetValues replaces the field's allowed set. An empty list clears the entry.
func (f *FilterMap) SetValues(field string, values []string) {
	if len(values) == 0 {
		delete(f.entries, field)
		return
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	f.entries[field] = set
}

// Clear removes the field's entry entirely.
func (f *FilterMap) Clear(field string) {
	delete(f.entries, field)
}

// Active reports whether the field currently filters rows.
func (f *FilterMap) Active(field string) bool {
	return len(f.entries[field]) > 0
}

// Allowed returns the field's allowed values, sorted.
func (f *FilterMap) Allowed(field string) []string {
	set := f.entries[field]
	if len(set) == 0 {
		return nil
	}
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Allows reports whether a row survives every active entry: for each field
// with a non-empty allowed set, the row's stringified value must be in it.
func (f *FilterMap) Allows(row Row) bool {
	for field, set := range f.entries {
		if len(set) == 0 {
			continue
		}
		if _, ok := set[stringifyValue(row[field])]; !ok {
			return false
		}
	}
	return true
}

// Apply filters rows through every active entry, preserving order. Applying
// the same map twice is a no-op on already-filtered rows.
func (f *FilterMap) Apply(rows []Row) []Row {
	if f == nil || len(f.entries) == 0 {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if f.Allows(row) {
			out = append(out, row)
		}
	}
	return out
}

// Snapshot returns a copy of all active entries for persistence/inspection.
func (f *FilterMap) Snapshot() map[string][]string {
	out := make(map[string][]string, len(f.entries))
	for field := range f.entries {
		out[field] = f.Allowed(field)
	}
	return out
}
