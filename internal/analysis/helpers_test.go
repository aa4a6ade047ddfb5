package analysis

import (
	"fmt"

	"github.com/ignite/prospect-insights/internal/prospect"
)

// channelSpec describes one fabricated channel: how many prospects it
// produced and how many of them registered
type channelSpec struct {
	channel     string
	total       int
	conversions int
}

var testCountries = []string{"United States", "Germany", "Japan", "Brazil"}

var testCategories = []prospect.JobCategory{
	prospect.JobExecutive,
	prospect.JobDecisionMaker,
	prospect.JobPractitioner,
	prospect.JobOther,
}

// buildDataset fabricates a deterministic dataset. The first `conversions`
// records of each channel register; the rest are no-shows. Countries and job
// categories rotate through fixed lists.
func buildDataset(specs []channelSpec) prospect.Dataset {
	var records []prospect.Record
	i := 0
	for _, spec := range specs {
		for n := 0; n < spec.total; n++ {
			status := prospect.StatusNoShow
			if n < spec.conversions {
				status = prospect.StatusRegistered
			}
			records = append(records, prospect.NewRecord(
				fmt.Sprintf("p-%04d", i),
				status,
				spec.channel,
				testCountries[i%len(testCountries)],
				"Manager",
				testCategories[i%len(testCategories)],
			))
			i++
		}
	}
	return prospect.DetectFields(records)
}
