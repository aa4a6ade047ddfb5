// Package prospect defines the immutable prospect record model consumed by
// the analytics engine. Records arrive already cleaned and feature-enriched
// from the upstream loading pipeline; nothing here mutates them.
package prospect

// Status represents a prospect's position in the marketing funnel
type Status string

const (
	StatusNoShow     Status = "No Show"
	StatusResponded  Status = "Responded"
	StatusAttended   Status = "Attended"
	StatusRegistered Status = "Registered"
)

// AllStatuses returns the funnel statuses in progression order
func AllStatuses() []Status {
	return []Status{StatusNoShow, StatusResponded, StatusAttended, StatusRegistered}
}

// JobCategory buckets job titles by decision-making authority
type JobCategory string

const (
	JobExecutive     JobCategory = "Executive"
	JobDecisionMaker JobCategory = "Decision Maker"
	JobPractitioner  JobCategory = "Practitioner"
	JobOther         JobCategory = "Other"
)

// valuePotential maps job authority to a prospect value score
var valuePotential = map[JobCategory]int{
	JobExecutive:     5,
	JobDecisionMaker: 4,
	JobPractitioner:  3,
	JobOther:         2,
}

// Record is a single prospect row. Funnel flags and scores are derived from
// the status and job category at construction time and never change.
type Record struct {
	ID          string      `json:"id"`
	Status      Status      `json:"status"`
	Channel     string      `json:"channel"`
	Country     string      `json:"country"`
	JobTitle    string      `json:"jobTitle"`
	JobCategory JobCategory `json:"jobCategory"`

	IsRegistered bool `json:"isRegistered"`
	IsAttended   bool `json:"isAttended"`
	IsResponded  bool `json:"isResponded"`
	IsNoShow     bool `json:"isNoShow"`

	EngagementScore int `json:"engagementScore"`
	ValuePotential  int `json:"valuePotential"`
}

// NewRecord builds a record and derives its funnel flags, engagement score,
// and value potential. The engagement weighting rewards every prospect that
// at least showed up, so a bare non-no-show still scores 1.
func NewRecord(id string, status Status, channel, country, jobTitle string, category JobCategory) Record {
	r := Record{
		ID:          id,
		Status:      status,
		Channel:     channel,
		Country:     country,
		JobTitle:    jobTitle,
		JobCategory: category,

		IsRegistered: status == StatusRegistered,
		IsAttended:   status == StatusAttended,
		IsResponded:  status == StatusResponded,
		IsNoShow:     status == StatusNoShow,
	}

	r.EngagementScore = boolScore(r.IsRegistered)*4 +
		boolScore(r.IsAttended)*3 +
		boolScore(r.IsResponded)*2 +
		(1 - boolScore(r.IsNoShow))

	if v, ok := valuePotential[category]; ok {
		r.ValuePotential = v
	} else {
		r.ValuePotential = valuePotential[JobOther]
	}

	return r
}

func boolScore(b bool) int {
	if b {
		return 1
	}
	return 0
}
