// Package analysis is the marketing analytics and recommendation engine. It
// turns a prospect dataset into per-dimension conversion breakdowns, a set of
// statistical association signals, channel insights, and a priority-ordered
// list of budget reallocation recommendations.
package analysis

import (
	"time"

	"github.com/ignite/prospect-insights/internal/prospect"
)

// Dimension is a categorical field records are grouped on for breakdowns
type Dimension string

const (
	DimensionFunnel    Dimension = "funnel"
	DimensionChannel   Dimension = "channel"
	DimensionGeography Dimension = "geography"
	DimensionJob       Dimension = "jobCategory"
)

// Field returns the input field this dimension groups on
func (d Dimension) Field() prospect.Field {
	switch d {
	case DimensionChannel:
		return prospect.FieldChannel
	case DimensionGeography:
		return prospect.FieldCountry
	case DimensionJob:
		return prospect.FieldJobCategory
	default:
		return prospect.FieldStatus
	}
}

// Value extracts the dimension value from a record, normalizing blanks to the
// sentinel category so every record lands in exactly one group
func (d Dimension) Value(r prospect.Record) string {
	var v string
	switch d {
	case DimensionChannel:
		v = r.Channel
	case DimensionGeography:
		v = r.Country
	case DimensionJob:
		v = string(r.JobCategory)
		if v == "" {
			return string(prospect.JobOther)
		}
	default:
		v = string(r.Status)
	}
	if v == "" {
		return "Unknown"
	}
	return v
}

// BreakdownRow holds the metrics for one distinct dimension value
type BreakdownRow struct {
	Value           string  `json:"value"`
	TotalProspects  int     `json:"totalProspects"`
	Conversions     int     `json:"conversions"`
	ConversionRate  float64 `json:"conversionRate"`
	VolumeShare     float64 `json:"volumeShare,omitempty"`
	EfficiencyScore float64 `json:"efficiencyScore,omitempty"`
}

// Breakdown is the aggregated view of one dimension, sorted for reporting
type Breakdown struct {
	Dimension Dimension      `json:"dimension"`
	Rows      []BreakdownRow `json:"rows"`
}

// Empty reports whether the breakdown carries no rows
func (b Breakdown) Empty() bool {
	return len(b.Rows) == 0
}

// Row looks up the row for a dimension value
func (b Breakdown) Row(value string) (BreakdownRow, bool) {
	for _, r := range b.Rows {
		if r.Value == value {
			return r, true
		}
	}
	return BreakdownRow{}, false
}

// FunnelResult is the funnel stage output: the status breakdown plus the
// overall conversion picture and the dominant (bottleneck) status
type FunnelResult struct {
	Breakdown             Breakdown `json:"breakdown"`
	TotalProspects        int       `json:"totalProspects"`
	TargetConversions     int       `json:"targetConversions"`
	OverallConversionRate float64   `json:"overallConversionRate"`
	FunnelBottleneck      string    `json:"funnelBottleneck"`
	BottleneckPercentage  float64   `json:"bottleneckPercentage"`
}

// JobResult is the job segmentation stage output
type JobResult struct {
	Breakdown        Breakdown `json:"breakdown"`
	TotalCategories  int       `json:"totalCategories"`
	BestCategory     string    `json:"bestCategory"`
	BestCategoryRate float64   `json:"bestCategoryRate"`
}

// RegressionResult reports the conversion predictor's association signal.
// ModelAccuracy is measured on the training set itself (no holdout), so it
// describes fit, not out-of-sample predictive power.
type RegressionResult struct {
	Available         bool               `json:"available"`
	FeatureImportance map[string]float64 `json:"featureImportance,omitempty"`
	ModelAccuracy     float64            `json:"modelAccuracy,omitempty"`
	ModelSummary      string             `json:"modelSummary,omitempty"`
	Err               string             `json:"error,omitempty"`
}

// IndependenceResult reports the chi-square test of channel vs status
type IndependenceResult struct {
	ChiSquareStatistic float64 `json:"chiSquareStatistic"`
	PValue             float64 `json:"pValue"`
	DegreesOfFreedom   int     `json:"degreesOfFreedom"`
	Significant        bool    `json:"significant"`
	Interpretation     string  `json:"interpretation"`
	Err                string  `json:"error,omitempty"`
}

// MixChannel holds one channel's marketing-mix metrics. ConversionRate here
// is a 0-1 fraction, not a percentage, matching the mix methodology.
type MixChannel struct {
	Conversions     int     `json:"conversions"`
	TotalProspects  int     `json:"totalProspects"`
	ConversionRate  float64 `json:"conversionRate"`
	Volume          int     `json:"volume"`
	EfficiencyScore float64 `json:"efficiencyScore"`
}

// MixResult is the marketing-mix modeling output
type MixResult struct {
	ChannelPerformance map[string]MixChannel `json:"channelPerformance"`
	Methodology        string                `json:"methodology"`
	Err                string                `json:"error,omitempty"`
}

// StatisticalResult bundles the optional statistical stages. A nil entry
// means the stage was skipped or failed; the warning list says which.
type StatisticalResult struct {
	LogisticRegression  *RegressionResult   `json:"logisticRegression,omitempty"`
	MarketingMix        *MixResult          `json:"marketingMix,omitempty"`
	SignificanceTesting *IndependenceResult `json:"significanceTesting,omitempty"`
}

// ChannelTier is the primary classification of a channel's performance
type ChannelTier string

const (
	TierZeroConversion  ChannelTier = "zero_conversion"
	TierHighPerforming  ChannelTier = "high_performing"
	TierUnderperforming ChannelTier = "underperforming"
	TierUnclassified    ChannelTier = "unclassified"
)

// Insights is the derived channel insight bundle. A channel can sit in the
// underperforming set and the problems list at the same time; that overlap
// flags wasted spend at scale and is intentional.
type Insights struct {
	Problems                []string `json:"problems"`
	Opportunities           []string `json:"opportunities"`
	ZeroConversionChannels  []string `json:"zeroConversionChannels"`
	HighPerformingChannels  []string `json:"highPerformingChannels"`
	UnderperformingChannels []string `json:"underperformingChannels"`
	BestChannel             string   `json:"bestChannel"`
	WorstChannel            string   `json:"worstChannel"`
	KeyInsight              string   `json:"keyInsight"`
}

// Action is the budget adjustment verb attached to a recommendation
type Action string

const (
	ActionStop   Action = "STOP"
	ActionCut    Action = "CUT"
	ActionReduce Action = "REDUCE"
	ActionGrow   Action = "GROW"
	ActionScale  Action = "SCALE"
)

// Priority ranks recommendations by magnitude of change
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Recommendation is one channel's budget reallocation advice
type Recommendation struct {
	Channel          string   `json:"channel"`
	CurrentShare     float64  `json:"currentShare"`
	RecommendedShare float64  `json:"recommendedShare"`
	ChangePercentage float64  `json:"changePercentage"`
	Reason           string   `json:"reason"`
	Action           Action   `json:"action"`
	Priority         Priority `json:"priority"`
}

// ExecutiveSummary is the one-screen view for decision makers
type ExecutiveSummary struct {
	Company               string  `json:"company"`
	Objective             string  `json:"objective"`
	TotalProspects        int     `json:"totalProspects"`
	OverallConversionRate float64 `json:"overallConversionRate"`
	BestChannel           string  `json:"bestChannel"`
	WorstChannel          string  `json:"worstChannel"`
	KeyOpportunity        string  `json:"keyOpportunity"`
	PrimaryProblem        string  `json:"primaryProblem"`
	RecommendedAction     string  `json:"recommendedAction"`
}

// Result is the complete output of one analysis run, built once and returned
// by value; downstream reporting reads it as plain nested structures.
type Result struct {
	RunID           string            `json:"runId"`
	GeneratedAt     time.Time         `json:"generatedAt"`
	Funnel          FunnelResult      `json:"funnel"`
	Channels        Breakdown         `json:"channels"`
	Geography       Breakdown         `json:"geography"`
	JobTitles       JobResult         `json:"jobTitles"`
	Statistical     StatisticalResult `json:"statisticalAnalysis"`
	Insights        Insights          `json:"strategicInsights"`
	Recommendations []Recommendation  `json:"budgetRecommendations"`
	Summary         ExecutiveSummary  `json:"executiveSummary"`
	Warnings        []string          `json:"warnings,omitempty"`
}
