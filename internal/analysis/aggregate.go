package analysis

import (
	"math"
	"sort"

	"github.com/ignite/prospect-insights/internal/prospect"
)

// SortOrder selects how a breakdown is ranked
type SortOrder int

const (
	// SortByRate orders by conversion rate descending (channel, job)
	SortByRate SortOrder = iota
	// SortByConversions orders by conversion count then rate descending (geography)
	SortByConversions
	// SortByCount orders by total prospects descending (funnel)
	SortByCount
)

// AggregateOptions tunes a breakdown computation
type AggregateOptions struct {
	WithShare bool      // add volume share and efficiency score columns
	Sort      SortOrder // ranking applied after aggregation
	TopN      int       // rows kept after sorting; 0 keeps all
}

// Aggregate groups the dataset by a dimension and computes per-value totals,
// conversions, and conversion rates. Every observed value appears exactly
// once (blanks land in the sentinel category) and totals sum to the record
// count. A missing dimension field yields an empty breakdown, not an error.
func Aggregate(ds prospect.Dataset, dim Dimension, target prospect.Status, opts AggregateOptions) Breakdown {
	b := Breakdown{Dimension: dim}
	if !ds.Has(dim.Field()) || ds.Len() == 0 {
		return b
	}

	byValue := make(map[string]*BreakdownRow)
	for _, r := range ds.Records {
		v := dim.Value(r)
		row, ok := byValue[v]
		if !ok {
			row = &BreakdownRow{Value: v}
			byValue[v] = row
		}
		row.TotalProspects++
		if r.Status == target {
			row.Conversions++
		}
	}

	overall := ds.Len()
	rows := make([]BreakdownRow, 0, len(byValue))
	for _, row := range byValue {
		row.ConversionRate = round1(percent(row.Conversions, row.TotalProspects))
		if opts.WithShare {
			row.VolumeShare = round1(percent(row.TotalProspects, overall))
			row.EfficiencyScore = round2(row.ConversionRate * row.VolumeShare / 100)
		}
		rows = append(rows, *row)
	}

	sortRows(rows, opts.Sort)
	if opts.TopN > 0 && len(rows) > opts.TopN {
		rows = rows[:opts.TopN]
	}

	b.Rows = rows
	return b
}

// sortRows ranks rows for the given order with a deterministic name
// tie-break so repeated runs always produce identical output
func sortRows(rows []BreakdownRow, order SortOrder) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch order {
		case SortByConversions:
			if a.Conversions != b.Conversions {
				return a.Conversions > b.Conversions
			}
			if a.ConversionRate != b.ConversionRate {
				return a.ConversionRate > b.ConversionRate
			}
		case SortByCount:
			if a.TotalProspects != b.TotalProspects {
				return a.TotalProspects > b.TotalProspects
			}
		default:
			if a.ConversionRate != b.ConversionRate {
				return a.ConversionRate > b.ConversionRate
			}
		}
		return a.Value < b.Value
	})
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
