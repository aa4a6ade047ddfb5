package analysis

import (
	"fmt"

	"github.com/ignite/prospect-insights/internal/config"
)

// channelRule pairs a performance tier with its predicate. Rules are
// evaluated in order and the first match wins the primary tier.
type channelRule struct {
	tier  ChannelTier
	match func(BreakdownRow) bool
}

func channelRules(th config.ThresholdConfig) []channelRule {
	return []channelRule{
		{TierZeroConversion, func(r BreakdownRow) bool { return r.ConversionRate == 0 }},
		{TierHighPerforming, func(r BreakdownRow) bool { return r.ConversionRate > th.HighPerformingRate }},
		{TierUnderperforming, func(r BreakdownRow) bool { return r.ConversionRate < th.UnderperformingRate }},
	}
}

// ClassifyChannel returns a channel's primary performance tier plus an
// independent flag marking an underperformer that still soaks up a large
// volume share. The flag is separate from the tier on purpose: such a
// channel belongs in the underperforming set and the problems list at once.
func ClassifyChannel(row BreakdownRow, th config.ThresholdConfig) (ChannelTier, bool) {
	tier := TierUnclassified
	for _, rule := range channelRules(th) {
		if rule.match(row) {
			tier = rule.tier
			break
		}
	}
	wastedAtScale := tier == TierUnderperforming && row.VolumeShare > th.HighVolumeShare
	return tier, wastedAtScale
}

// BuildInsights derives the insight bundle from the rate-sorted channel
// breakdown. It only reads the breakdown; best and worst channel are its
// first and last rows.
func BuildInsights(channels Breakdown, th config.ThresholdConfig) Insights {
	insights := Insights{}
	if channels.Empty() {
		return insights
	}

	for _, row := range channels.Rows {
		tier, wastedAtScale := ClassifyChannel(row, th)
		switch tier {
		case TierZeroConversion:
			insights.ZeroConversionChannels = append(insights.ZeroConversionChannels, row.Value)
			insights.Problems = append(insights.Problems,
				fmt.Sprintf("**%s**: 0%% conversion → Complete budget waste requiring immediate action", row.Value))
		case TierHighPerforming:
			insights.HighPerformingChannels = append(insights.HighPerformingChannels, row.Value)
			insights.Opportunities = append(insights.Opportunities,
				fmt.Sprintf("**%s**: %.1f%% conversion → Scale investment for maximum ROI", row.Value, row.ConversionRate))
		case TierUnderperforming:
			insights.UnderperformingChannels = append(insights.UnderperformingChannels, row.Value)
			if wastedAtScale {
				insights.Problems = append(insights.Problems,
					fmt.Sprintf("**%s**: Low %.1f%% conversion despite %.1f%% volume share", row.Value, row.ConversionRate, row.VolumeShare))
			}
		}
	}

	insights.BestChannel = channels.Rows[0].Value
	insights.WorstChannel = channels.Rows[len(channels.Rows)-1].Value
	insights.KeyInsight = fmt.Sprintf("%s outperforms significantly - consider strategic budget reallocation", insights.BestChannel)

	return insights
}
