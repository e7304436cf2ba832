package canvas

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// maxTableRows caps how many rows a table widget hands to the renderer.
const maxTableRows = 50

// BaseRows resolves a widget's unfiltered row set: the cached rows of its
// dataset if present, else the first currently-selected dataset's rows, else
// empty. Percentage aggregation uses this as its denominator.
func BaseRows(w *Widget, cache *DatasetCache, selected []int) []Row {
	if rows, ok := cache.Rows(w.DatasetID); ok {
		return rows
	}
	for _, id := range selected {
		if rows, ok := cache.Rows(id); ok {
			return rows
		}
	}
	return nil
}

// ResolveRows computes a widget's visible row set: BaseRows filtered through
// every active entry of the shared filter map.
func ResolveRows(w *Widget, cache *DatasetCache, selected []int, filters *FilterMap) []Row {
	rows := BaseRows(w, cache, selected)
	if len(rows) == 0 {
		return nil
	}
	return filters.Apply(rows)
}

// Aggregate reduces the field across filtered rows. base is the unfiltered
// row set and participates only in the percentage aggregation, which reports
// the filtered share of all rows. first/last return the raw value without
// re-sorting; sum coerces non-numeric values to 0.
func Aggregate(rows []Row, base []Row, field string, agg Aggregation) any {
	switch agg {
	case AggCount:
		return len(rows)
	case AggSum:
		total := 0.0
		for _, row := range rows {
			total += numberValue(row[field])
		}
		return total
	case AggFirst:
		if len(rows) == 0 {
			return nil
		}
		return rows[0][field]
	case AggLast:
		if len(rows) == 0 {
			return nil
		}
		return rows[len(rows)-1][field]
	case AggPercentage:
		if len(base) == 0 {
			return 0.0
		}
		return float64(len(rows)) / float64(len(base)) * 100
	default:
		return len(rows)
	}
}

// DistinctValues returns the field's stringified values in first-appearance
// order, skipping duplicates and empties. Slicer widgets use this over their
// own resolved rows so options shrink as other slicers filter.
func DistinctValues(rows []Row, field string) []string {
	seen := make(map[string]struct{}, len(rows))
	var out []string
	for _, row := range rows {
		v := stringifyValue(row[field])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// TableRows caps the row set for table rendering. Columns come from the
// first row's keys (see DatasetCache inference).
func TableRows(rows []Row) []Row {
	if len(rows) > maxTableRows {
		return rows[:maxTableRows]
	}
	return rows
}

// numberValue coerces a loosely-typed cell to a float64. Non-numeric and
// missing values coerce to 0, matching spreadsheet-style sums.
func numberValue(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	case bool:
		if val {
			return 1
		}
	}
	return 0
}

// stringifyValue coerces a cell to the string form used for filter matching
// and slicer options.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
