package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/prospect-insights/internal/config"
	"github.com/ignite/prospect-insights/internal/prospect"
)

func fullDataset() prospect.Dataset {
	return buildDataset([]channelSpec{
		{"Email Campaign", 30, 9}, // 30.0%
		{"Social Media", 40, 2},   // 5.0%
		{"Cold Call", 20, 0},      // 0.0%
		{"Referral", 10, 3},       // 30.0%
	})
}

func TestAnalyzer_Run(t *testing.T) {
	res := New(config.Default()).Run(fullDataset())

	// Funnel
	assert.Equal(t, 100, res.Funnel.TotalProspects)
	assert.Equal(t, 14, res.Funnel.TargetConversions)
	assert.Equal(t, 14.0, res.Funnel.OverallConversionRate)
	assert.Equal(t, string(prospect.StatusNoShow), res.Funnel.FunnelBottleneck)
	assert.Equal(t, 86.0, res.Funnel.BottleneckPercentage)

	// Channel breakdown is rate-sorted with the name tie-break
	require.Len(t, res.Channels.Rows, 4)
	assert.Equal(t, "Email Campaign", res.Channels.Rows[0].Value)
	assert.Equal(t, "Cold Call", res.Channels.Rows[3].Value)

	// Geography and job stages ran off the rotated fixture fields
	assert.False(t, res.Geography.Empty())
	assert.Equal(t, 4, res.JobTitles.TotalCategories)

	// Statistical stages all produced results
	require.NotNil(t, res.Statistical.LogisticRegression)
	assert.True(t, res.Statistical.LogisticRegression.Available)
	require.NotNil(t, res.Statistical.MarketingMix)
	require.NotNil(t, res.Statistical.SignificanceTesting)
	assert.True(t, res.Statistical.SignificanceTesting.Significant)
	assert.Empty(t, res.Warnings)

	// Insights and recommendations
	assert.Equal(t, "Email Campaign", res.Insights.BestChannel)
	assert.Equal(t, "Cold Call", res.Insights.WorstChannel)
	assert.Contains(t, res.Insights.ZeroConversionChannels, "Cold Call")
	require.Len(t, res.Recommendations, 4)
	assert.Equal(t, "Cold Call", res.Recommendations[0].Channel)
	assert.Equal(t, ActionStop, res.Recommendations[0].Action)

	// Executive summary
	assert.Equal(t, "ABC Inc.", res.Summary.Company)
	assert.Equal(t, 100, res.Summary.TotalProspects)
	assert.Equal(t, "Email Campaign", res.Summary.BestChannel)
	assert.Equal(t, "STOP Cold Call - 0% conversion rate - eliminate budget allocation immediately", res.Summary.RecommendedAction)

	assert.NotEmpty(t, res.RunID)
	assert.False(t, res.GeneratedAt.IsZero())
}

func TestAnalyzer_Deterministic(t *testing.T) {
	a := New(config.Default())
	first := a.Run(fullDataset())
	second := a.Run(fullDataset())

	// Everything except run identity must match exactly
	first.RunID, second.RunID = "", ""
	first.GeneratedAt, second.GeneratedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
}

func TestAnalyzer_MissingFieldsSkipStages(t *testing.T) {
	// Only the status column: channel, geography, and job stages degrade to
	// empty results and the run still completes.
	var records []prospect.Record
	for i := 0; i < 10; i++ {
		records = append(records, prospect.NewRecord("p", prospect.StatusRegistered, "", "", "", ""))
	}
	ds := prospect.NewDataset(records, prospect.FieldStatus)

	res := New(config.Default()).Run(ds)

	assert.Equal(t, 10, res.Funnel.TotalProspects)
	assert.True(t, res.Channels.Empty())
	assert.True(t, res.Geography.Empty())
	assert.Equal(t, 0, res.JobTitles.TotalCategories)
	assert.Empty(t, res.Recommendations)

	// Predictor soft-fails, it does not warn or abort
	require.NotNil(t, res.Statistical.LogisticRegression)
	assert.False(t, res.Statistical.LogisticRegression.Available)
	assert.Equal(t, "Analysis in progress", res.Summary.KeyOpportunity)
	assert.Equal(t, "Unknown", res.Summary.BestChannel)
	assert.Equal(t, "Further analysis required", res.Summary.RecommendedAction)
}

// panickingBackend simulates an unexpected failure inside the test library
type panickingBackend struct{}

func (panickingBackend) Test(ContingencyTable) (any, error) {
	panic("chi-square library blew up")
}

func TestAnalyzer_StageFailureIsIsolated(t *testing.T) {
	a := New(config.Default()).WithBackend(panickingBackend{})
	res := a.Run(fullDataset())

	// The failing stage is excluded and recorded; siblings are intact
	assert.Nil(t, res.Statistical.SignificanceTesting)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "statistical significance testing failed")
	require.NotNil(t, res.Statistical.LogisticRegression)
	require.NotNil(t, res.Statistical.MarketingMix)
	assert.NotEmpty(t, res.Recommendations)
}

func TestAnalyzer_NilBackendSkipsSignificanceTesting(t *testing.T) {
	a := New(config.Default()).WithBackend(nil)
	res := a.Run(fullDataset())

	assert.Nil(t, res.Statistical.SignificanceTesting)
	assert.Empty(t, res.Warnings)
	require.NotNil(t, res.Statistical.LogisticRegression)
}
