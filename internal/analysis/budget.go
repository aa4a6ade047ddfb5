package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/ignite/prospect-insights/internal/config"
)

// Share multipliers and change percentages are paired per action; the tier
// thresholds separating the actions come from configuration.
const (
	scaleMultiplier  = 1.5
	growMultiplier   = 1.2
	reduceMultiplier = 0.9
	cutMultiplier    = 0.5
)

var priorityRank = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Recommend maps each channel row to a budget adjustment via the conversion
// rate tier rule and returns the list ordered by priority rank, then change
// magnitude. The sort is stable so equal entries keep breakdown order.
func Recommend(channels Breakdown, th config.ThresholdConfig) []Recommendation {
	if channels.Empty() {
		return nil
	}

	overall := 0
	for _, row := range channels.Rows {
		overall += row.TotalProspects
	}
	if overall == 0 {
		return nil
	}

	recs := make([]Recommendation, 0, len(channels.Rows))
	for _, row := range channels.Rows {
		currentShare := float64(row.TotalProspects) / float64(overall) * 100
		rate := row.ConversionRate

		var (
			recommendedShare float64
			change           float64
			reason           string
			action           Action
		)
		switch {
		case rate == 0:
			recommendedShare = 0
			change = -100
			reason = "0% conversion rate - eliminate budget allocation immediately"
			action = ActionStop
		case rate > th.HighPerformingRate:
			// Cap the winner's share so the portfolio stays diversified
			recommendedShare = math.Min(currentShare*scaleMultiplier, th.RecommendedShareCap)
			change = 50
			reason = fmt.Sprintf("High conversion rate (%.1f%%) - increase investment for maximum ROI", rate)
			action = ActionScale
		case rate > th.GoodRate:
			recommendedShare = currentShare * growMultiplier
			change = 20
			reason = fmt.Sprintf("Good performance (%.1f%%) - moderate increase recommended", rate)
			action = ActionGrow
		case rate > th.UnderperformingRate:
			recommendedShare = currentShare * reduceMultiplier
			change = -10
			reason = fmt.Sprintf("Below average performance (%.1f%%) - slight reduction recommended", rate)
			action = ActionReduce
		default:
			recommendedShare = currentShare * cutMultiplier
			change = -50
			reason = fmt.Sprintf("Poor performance (%.1f%%) - significant reduction required", rate)
			action = ActionCut
		}

		recs = append(recs, Recommendation{
			Channel:          row.Value,
			CurrentShare:     round1(currentShare),
			RecommendedShare: round1(recommendedShare),
			ChangePercentage: math.Round(change),
			Reason:           reason,
			Action:           action,
			Priority:         priorityFor(change),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := priorityRank[recs[i].Priority], priorityRank[recs[j].Priority]
		if ri != rj {
			return ri > rj
		}
		return math.Abs(recs[i].ChangePercentage) > math.Abs(recs[j].ChangePercentage)
	})

	return recs
}

func priorityFor(change float64) Priority {
	switch {
	case math.Abs(change) > 30:
		return PriorityHigh
	case math.Abs(change) > 10:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
