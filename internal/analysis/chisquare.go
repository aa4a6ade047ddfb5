package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ignite/prospect-insights/internal/prospect"
)

// ContingencyTable is the channel-by-status count matrix the independence
// test runs over
type ContingencyTable struct {
	RowLabels []string
	ColLabels []string
	Counts    [][]float64
}

// ChiSquareBackend runs a chi-square test of independence and returns its
// library-specific raw result. The result is decoded by capability probing
// (attribute shape first, positional shape second) so swapping the backing
// statistics library does not ripple through the engine.
type ChiSquareBackend interface {
	Test(table ContingencyTable) (any, error)
}

// AttributeResult is the accessor-style result shape
type AttributeResult interface {
	Statistic() float64
	PValue() float64
	Dof() int
}

// chiSquareOutcome is the gonum backend's result, exposed attribute-style
type chiSquareOutcome struct {
	stat float64
	p    float64
	dof  int
}

func (o chiSquareOutcome) Statistic() float64 { return o.stat }
func (o chiSquareOutcome) PValue() float64    { return o.p }
func (o chiSquareOutcome) Dof() int           { return o.dof }

// GonumBackend computes the chi-square statistic from observed vs expected
// marginal counts and the p-value from the chi-squared distribution
type GonumBackend struct{}

func (GonumBackend) Test(table ContingencyTable) (any, error) {
	rows := len(table.RowLabels)
	cols := len(table.ColLabels)
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("contingency table too small: %dx%d", rows, cols)
	}

	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	total := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := table.Counts[i][j]
			rowSums[i] += v
			colSums[j] += v
			total += v
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("contingency table is empty")
	}

	stat := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected := rowSums[i] * colSums[j] / total
			if expected == 0 {
				continue
			}
			d := table.Counts[i][j] - expected
			stat += d * d / expected
		}
	}

	dof := (rows - 1) * (cols - 1)
	dist := distuv.ChiSquared{K: float64(dof)}
	p := 1 - dist.CDF(stat)

	return chiSquareOutcome{stat: stat, p: p, dof: dof}, nil
}

// BuildContingency cross-tabulates channel against funnel status with
// sorted labels for deterministic output
func BuildContingency(ds prospect.Dataset) ContingencyTable {
	counts := make(map[string]map[string]float64)
	colSet := make(map[string]bool)
	for _, r := range ds.Records {
		channel := DimensionChannel.Value(r)
		status := DimensionFunnel.Value(r)
		if counts[channel] == nil {
			counts[channel] = make(map[string]float64)
		}
		counts[channel][status]++
		colSet[status] = true
	}

	table := ContingencyTable{}
	for ch := range counts {
		table.RowLabels = append(table.RowLabels, ch)
	}
	for st := range colSet {
		table.ColLabels = append(table.ColLabels, st)
	}
	sort.Strings(table.RowLabels)
	sort.Strings(table.ColLabels)

	table.Counts = make([][]float64, len(table.RowLabels))
	for i, ch := range table.RowLabels {
		table.Counts[i] = make([]float64, len(table.ColLabels))
		for j, st := range table.ColLabels {
			table.Counts[i][j] = counts[ch][st]
		}
	}
	return table
}

// decodeChiSquare probes the two known result shapes and falls back to the
// sentinel non-significant result when neither matches
func decodeChiSquare(raw any) (stat, p float64, dof int) {
	switch r := raw.(type) {
	case AttributeResult:
		return r.Statistic(), r.PValue(), r.Dof()
	case []float64:
		if len(r) >= 3 {
			return r[0], r[1], int(r[2])
		}
	}
	return 0, 1, 0
}

// TestIndependence runs the channel-vs-status chi-square test through the
// given backend. Any backend failure comes back as a structured error
// payload rather than an error return, so the caller can embed it directly.
func TestIndependence(ds prospect.Dataset, backend ChiSquareBackend, alpha float64) IndependenceResult {
	if !ds.Has(prospect.FieldChannel) || !ds.Has(prospect.FieldStatus) {
		return IndependenceResult{
			PValue: 1,
			Err:    "channel or status data not available for significance testing",
		}
	}

	raw, err := backend.Test(BuildContingency(ds))
	if err != nil {
		return IndependenceResult{
			PValue: 1,
			Err:    fmt.Sprintf("Statistical significance testing failed: %v", err),
		}
	}

	stat, p, dof := decodeChiSquare(raw)
	res := IndependenceResult{
		ChiSquareStatistic: stat,
		PValue:             p,
		DegreesOfFreedom:   dof,
		Significant:        p < alpha,
	}
	if res.Significant {
		res.Interpretation = "Channels have significantly different conversion patterns"
	} else {
		res.Interpretation = "No significant difference between channel performance"
	}
	return res
}
