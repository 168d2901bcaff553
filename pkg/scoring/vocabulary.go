// Package scoring holds the shot-counting ledger kept during an active
// round and the read-side scorecard aggregation over persisted shots.
package scoring

import "slices"

const (
	// TotalHoles is the standard round length.
	TotalHoles = 18
	// DefaultPar is used when a course has no par recorded.
	DefaultPar = 72
)

// DefaultShotTypes and DefaultOutcomes are the deployment defaults;
// both sets are overridable through configuration at startup.
var (
	DefaultShotTypes = []string{"Tee Shot", "Long Shot", "Approach", "Chip", "Putts", "Sand", "Penalties"}
	DefaultOutcomes  = []string{"On Target", "Slightly Off", "Recovery Needed"}
)

// Vocabulary is the closed set of shot-type and outcome labels for one
// deployment. Outcomes is always a 3-element ordered set.
type Vocabulary struct {
	ShotTypes []string
	Outcomes  []string
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		ShotTypes: DefaultShotTypes,
		Outcomes:  DefaultOutcomes,
	}
}

func NewVocabulary(shotTypes, outcomes []string) Vocabulary {
	v := DefaultVocabulary()
	if len(shotTypes) > 0 {
		v.ShotTypes = shotTypes
	}
	if len(outcomes) > 0 {
		v.Outcomes = outcomes
	}
	return v
}

func (v Vocabulary) HasShotType(shotType string) bool {
	return slices.Contains(v.ShotTypes, shotType)
}

func (v Vocabulary) HasOutcome(outcome string) bool {
	return slices.Contains(v.Outcomes, outcome)
}
