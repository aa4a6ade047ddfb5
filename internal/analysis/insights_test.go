package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/prospect-insights/internal/config"
)

func defaultThresholds() config.ThresholdConfig {
	return config.Default().Analysis.Thresholds
}

func TestClassifyChannel(t *testing.T) {
	th := defaultThresholds()
	tests := []struct {
		name       string
		row        BreakdownRow
		wantTier   ChannelTier
		wantWasted bool
	}{
		{"zero conversion", BreakdownRow{ConversionRate: 0, VolumeShare: 50}, TierZeroConversion, false},
		{"high performing", BreakdownRow{ConversionRate: 25}, TierHighPerforming, false},
		{"underperforming small", BreakdownRow{ConversionRate: 3, VolumeShare: 5}, TierUnderperforming, false},
		{"underperforming at scale", BreakdownRow{ConversionRate: 3, VolumeShare: 15}, TierUnderperforming, true},
		{"middle of the road", BreakdownRow{ConversionRate: 12}, TierUnclassified, false},
		{"boundary rate 20 unclassified", BreakdownRow{ConversionRate: 20}, TierUnclassified, false},
		{"boundary rate 5 unclassified", BreakdownRow{ConversionRate: 5}, TierUnclassified, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, wasted := ClassifyChannel(tt.row, th)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantWasted, wasted)
		})
	}
}

func TestBuildInsights(t *testing.T) {
	channels := Breakdown{
		Dimension: DimensionChannel,
		Rows: []BreakdownRow{
			{Value: "Referral", TotalProspects: 10, Conversions: 3, ConversionRate: 30.0, VolumeShare: 10.0},
			{Value: "Email Campaign", TotalProspects: 30, Conversions: 4, ConversionRate: 13.3, VolumeShare: 30.0},
			{Value: "Social Media", TotalProspects: 40, Conversions: 1, ConversionRate: 2.5, VolumeShare: 40.0},
			{Value: "Cold Call", TotalProspects: 20, Conversions: 0, ConversionRate: 0.0, VolumeShare: 20.0},
		},
	}

	insights := BuildInsights(channels, defaultThresholds())

	assert.Equal(t, []string{"Cold Call"}, insights.ZeroConversionChannels)
	assert.Equal(t, []string{"Referral"}, insights.HighPerformingChannels)
	assert.Equal(t, []string{"Social Media"}, insights.UnderperformingChannels)

	// Social Media is underperforming AND a problem: low rate at high volume
	require.Len(t, insights.Problems, 2)
	assert.Equal(t, "**Social Media**: Low 2.5% conversion despite 40.0% volume share", insights.Problems[0])
	assert.Equal(t, "**Cold Call**: 0% conversion → Complete budget waste requiring immediate action", insights.Problems[1])

	require.Len(t, insights.Opportunities, 1)
	assert.Equal(t, "**Referral**: 30.0% conversion → Scale investment for maximum ROI", insights.Opportunities[0])

	assert.Equal(t, "Referral", insights.BestChannel)
	assert.Equal(t, "Cold Call", insights.WorstChannel)
	assert.Equal(t, "Referral outperforms significantly - consider strategic budget reallocation", insights.KeyInsight)
}

func TestBuildInsights_EmptyBreakdown(t *testing.T) {
	insights := BuildInsights(Breakdown{Dimension: DimensionChannel}, defaultThresholds())
	assert.Empty(t, insights.Problems)
	assert.Empty(t, insights.Opportunities)
	assert.Empty(t, insights.BestChannel)
}
