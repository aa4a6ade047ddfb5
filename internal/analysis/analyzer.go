package analysis

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/prospect-insights/internal/config"
	"github.com/ignite/prospect-insights/internal/prospect"
)

// Analyzer sequences the analysis stages over a dataset. It holds only
// configuration; every run builds its result from scratch, so one Analyzer
// can serve concurrent runs over separate datasets.
type Analyzer struct {
	cfg     *config.Config
	backend ChiSquareBackend
}

// New returns an analyzer with the gonum chi-square backend installed
func New(cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Analyzer{cfg: cfg, backend: GonumBackend{}}
}

// WithBackend overrides the significance-testing backend. A nil backend
// marks the statistical test library unavailable and skips that stage.
func (a *Analyzer) WithBackend(b ChiSquareBackend) *Analyzer {
	a.backend = b
	return a
}

// Run executes the full analysis pipeline: funnel, channel, geography, job
// segmentation, then the statistical modeling stages, then insights,
// recommendations, and the executive summary. Each stage is optional on
// field presence, and a failure inside a statistical stage is recorded as a
// warning without touching sibling results.
func (a *Analyzer) Run(ds prospect.Dataset) Result {
	log.Printf("Analysis: starting run over %d records for %s", ds.Len(), a.cfg.Company)

	target := prospect.Status(a.cfg.Analysis.TargetStatus)
	res := Result{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	res.Funnel = a.analyzeFunnel(ds, target)
	res.Channels = Aggregate(ds, DimensionChannel, target, AggregateOptions{WithShare: true, Sort: SortByRate})
	res.Geography = Aggregate(ds, DimensionGeography, target, AggregateOptions{Sort: SortByConversions, TopN: a.cfg.Analysis.GeoTopN})
	res.JobTitles = a.analyzeJobTitles(ds, target)

	a.runStatisticalModeling(ds, target, &res)

	res.Insights = BuildInsights(res.Channels, a.cfg.Analysis.Thresholds)
	res.Recommendations = Recommend(res.Channels, a.cfg.Analysis.Thresholds)
	res.Summary = a.buildExecutiveSummary(res)

	log.Printf("Analysis: run %s complete - %d channels, %d recommendations, %d warnings",
		res.RunID, len(res.Channels.Rows), len(res.Recommendations), len(res.Warnings))
	return res
}

// analyzeFunnel computes the status distribution plus the overall conversion
// rate and the dominant (bottleneck) status
func (a *Analyzer) analyzeFunnel(ds prospect.Dataset, target prospect.Status) FunnelResult {
	breakdown := Aggregate(ds, DimensionFunnel, target, AggregateOptions{Sort: SortByCount})
	if breakdown.Empty() {
		return FunnelResult{}
	}

	total := ds.Len()
	conversions := 0
	if row, ok := breakdown.Row(string(target)); ok {
		conversions = row.TotalProspects
	}

	top := breakdown.Rows[0]
	return FunnelResult{
		Breakdown:             breakdown,
		TotalProspects:        total,
		TargetConversions:     conversions,
		OverallConversionRate: round2(percent(conversions, total)),
		FunnelBottleneck:      top.Value,
		BottleneckPercentage:  round1(percent(top.TotalProspects, total)),
	}
}

// analyzeJobTitles ranks job categories by conversion rate
func (a *Analyzer) analyzeJobTitles(ds prospect.Dataset, target prospect.Status) JobResult {
	breakdown := Aggregate(ds, DimensionJob, target, AggregateOptions{Sort: SortByRate})
	if breakdown.Empty() {
		return JobResult{}
	}
	best := breakdown.Rows[0]
	return JobResult{
		Breakdown:        breakdown,
		TotalCategories:  len(breakdown.Rows),
		BestCategory:     best.Value,
		BestCategoryRate: best.ConversionRate,
	}
}

// runStatisticalModeling executes the predictor, marketing mix, and
// independence test with per-stage fault isolation: a panic in one stage
// becomes a warning and the remaining stages still run.
func (a *Analyzer) runStatisticalModeling(ds prospect.Dataset, target prospect.Status, res *Result) {
	a.guardStage(res, "logistic regression modeling", func() {
		r := PredictConversion(ds, target)
		res.Statistical.LogisticRegression = &r
	})

	a.guardStage(res, "marketing mix modeling", func() {
		r := MarketingMix(ds, target)
		res.Statistical.MarketingMix = &r
	})

	if a.backend == nil {
		log.Printf("Analysis: significance testing skipped - statistical test backend unavailable")
		return
	}
	a.guardStage(res, "statistical significance testing", func() {
		r := TestIndependence(ds, a.backend, a.cfg.Analysis.SignificanceLevel)
		res.Statistical.SignificanceTesting = &r
	})
}

// guardStage runs one optional stage, converting a panic into a warning so
// sibling stages and the terminal result are unaffected
func (a *Analyzer) guardStage(res *Result, stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("%s failed: %v", stage, r)
			log.Printf("Analysis: %s", msg)
			res.Warnings = append(res.Warnings, msg)
		}
	}()
	fn()
}

// buildExecutiveSummary condenses the run into the decision-maker view.
// Placeholder text survives wherever a stage produced nothing.
func (a *Analyzer) buildExecutiveSummary(res Result) ExecutiveSummary {
	summary := ExecutiveSummary{
		Company:           a.cfg.Company,
		Objective:         a.cfg.Objective,
		BestChannel:       "Unknown",
		WorstChannel:      "Unknown",
		KeyOpportunity:    "Analysis in progress",
		PrimaryProblem:    "Analysis in progress",
		RecommendedAction: "Further analysis required",
	}

	summary.TotalProspects = res.Funnel.TotalProspects
	summary.OverallConversionRate = res.Funnel.OverallConversionRate

	if res.Insights.BestChannel != "" {
		summary.BestChannel = res.Insights.BestChannel
		summary.WorstChannel = res.Insights.WorstChannel
	}
	if len(res.Insights.Opportunities) > 0 {
		summary.KeyOpportunity = res.Insights.Opportunities[0]
	}
	if len(res.Insights.Problems) > 0 {
		summary.PrimaryProblem = res.Insights.Problems[0]
	}
	if len(res.Recommendations) > 0 {
		top := res.Recommendations[0]
		summary.RecommendedAction = fmt.Sprintf("%s %s - %s", top.Action, top.Channel, top.Reason)
	}

	return summary
}
