package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/ignite/prospect-insights/internal/prospect"
)

// Training schedule for the logistic model. Fixed iteration count,
// zero-initialized weights, and no randomness keep the fit deterministic.
const (
	regressionIterations = 1000
	regressionLearnRate  = 0.1
	regressionL2         = 1.0
)

// featureEncoding maps a categorical feature's observed values to dense
// integer codes, sorted so the same data always encodes the same way
type featureEncoding struct {
	name  string
	codes map[string]int
}

func newFeatureEncoding(name string, values []string) featureEncoding {
	distinct := make(map[string]bool, len(values))
	for _, v := range values {
		distinct[v] = true
	}
	sorted := make([]string, 0, len(distinct))
	for v := range distinct {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)

	codes := make(map[string]int, len(sorted))
	for i, v := range sorted {
		codes[v] = i
	}
	return featureEncoding{name: name, codes: codes}
}

// PredictConversion fits an L2-regularized logistic classifier of the
// registration flag on the available categorical features and reports each
// feature's signed coefficient plus training-set accuracy. It soft-fails to
// an unavailable result when the target flag or all features are absent.
//
// Accuracy is computed on the training data itself; there is no holdout
// split, so it is a descriptive fit measure only.
func PredictConversion(ds prospect.Dataset, target prospect.Status) RegressionResult {
	if !ds.Has(prospect.FieldStatus) {
		return RegressionResult{Err: "Target conversion variable not available for modeling"}
	}

	type feature struct {
		name  string
		field prospect.Field
		value func(prospect.Record) string
	}
	candidates := []feature{
		{"channel", prospect.FieldChannel, DimensionChannel.Value},
		{"country", prospect.FieldCountry, DimensionGeography.Value},
		{"jobCategory", prospect.FieldJobCategory, DimensionJob.Value},
	}

	var used []feature
	for _, f := range candidates {
		if ds.Has(f.field) {
			used = append(used, f)
		}
	}
	if len(used) == 0 {
		return RegressionResult{Err: "No features available for predictive modeling"}
	}

	n := ds.Len()
	if n == 0 {
		return RegressionResult{Err: "No records available for predictive modeling"}
	}
	k := len(used)

	// Ordinal-encode each feature column, then standardize so one learning
	// rate works regardless of how many categories a feature has.
	x := mat.NewDense(n, k, nil)
	y := make([]float64, n)
	for j, f := range used {
		values := make([]string, n)
		for i, r := range ds.Records {
			values[i] = f.value(r)
		}
		enc := newFeatureEncoding(f.name, values)
		for i, v := range values {
			x.Set(i, j, float64(enc.codes[v]))
		}
	}
	for i, r := range ds.Records {
		if r.Status == target {
			y[i] = 1
		}
	}
	standardizeColumns(x)

	weights, bias := fitLogistic(x, y)

	correct := 0
	for i := 0; i < n; i++ {
		p := sigmoid(mat.Dot(weights, x.RowView(i)) + bias)
		if (p >= 0.5) == (y[i] == 1) {
			correct++
		}
	}

	importance := make(map[string]float64, k)
	for j, f := range used {
		importance[f.name] = weights.AtVec(j)
	}

	return RegressionResult{
		Available:         true,
		FeatureImportance: importance,
		ModelAccuracy:     float64(correct) / float64(n),
		ModelSummary:      fmt.Sprintf("Logistic regression trained on %d samples with %d features", n, k),
	}
}

// fitLogistic runs batch gradient descent on the cross-entropy loss with L2
// regularization on the weights (not the bias)
func fitLogistic(x *mat.Dense, y []float64) (*mat.VecDense, float64) {
	n, k := x.Dims()
	w := mat.NewVecDense(k, nil)
	bias := 0.0

	diff := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(k, nil)

	for it := 0; it < regressionIterations; it++ {
		biasGrad := 0.0
		for i := 0; i < n; i++ {
			p := sigmoid(mat.Dot(w, x.RowView(i)) + bias)
			diff.SetVec(i, p-y[i])
			biasGrad += p - y[i]
		}

		grad.MulVec(x.T(), diff)
		grad.ScaleVec(1/float64(n), grad)
		grad.AddScaledVec(grad, regressionL2/float64(n), w)

		w.AddScaledVec(w, -regressionLearnRate, grad)
		bias -= regressionLearnRate * biasGrad / float64(n)
	}

	return w, bias
}

// standardizeColumns rescales each column to zero mean and unit variance.
// Constant columns are left at zero so they carry no signal.
func standardizeColumns(x *mat.Dense) {
	n, k := x.Dims()
	for j := 0; j < k; j++ {
		var sum, sumSq float64
		for i := 0; i < n; i++ {
			v := x.At(i, j)
			sum += v
			sumSq += v * v
		}
		mean := sum / float64(n)
		variance := sumSq/float64(n) - mean*mean
		if variance <= 0 {
			for i := 0; i < n; i++ {
				x.Set(i, j, 0)
			}
			continue
		}
		std := math.Sqrt(variance)
		for i := 0; i < n; i++ {
			x.Set(i, j, (x.At(i, j)-mean)/std)
		}
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
