package analysis

import (
	"github.com/ignite/prospect-insights/internal/prospect"
)

const mixMethodology = "Simplified MMM based on conversion efficiency and strategic volume allocation"

// MarketingMix scores each channel's share of total conversion efficiency:
// conversion fraction weighted by the channel's slice of overall volume.
// Without the status field the model still reports volumes, with conversions
// zeroed, so downstream reporting keeps a consistent shape.
func MarketingMix(ds prospect.Dataset, target prospect.Status) MixResult {
	if !ds.Has(prospect.FieldChannel) {
		return MixResult{Err: "Channel data not available for marketing mix modeling"}
	}

	hasTarget := ds.Has(prospect.FieldStatus)
	channels := make(map[string]MixChannel)
	for _, r := range ds.Records {
		ch := DimensionChannel.Value(r)
		m := channels[ch]
		m.TotalProspects++
		m.Volume++
		if hasTarget && r.Status == target {
			m.Conversions++
		}
		channels[ch] = m
	}

	totalVolume := ds.Len()
	for ch, m := range channels {
		if hasTarget && m.TotalProspects > 0 {
			m.ConversionRate = round3(float64(m.Conversions) / float64(m.TotalProspects))
		}
		if totalVolume > 0 {
			m.EfficiencyScore = round3(m.ConversionRate * float64(m.Volume) / float64(totalVolume))
		}
		channels[ch] = m
	}

	return MixResult{
		ChannelPerformance: channels,
		Methodology:        mixMethodology,
	}
}
