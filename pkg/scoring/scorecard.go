package scoring

import "github.com/tmworl/golftracker/pkg/entity"

// HoleScore is the display-ready line for one hole: the raw shot count
// plus a per-outcome breakdown.
type HoleScore struct {
	Hole     int            `json:"hole"`
	Score    int            `json:"score"`
	Outcomes map[string]int `json:"outcomes"`
}

type Totals struct {
	FrontNine int            `json:"front_nine"`
	BackNine  int            `json:"back_nine"`
	Total     int            `json:"total"`
	Outcomes  map[string]int `json:"outcomes"`
}

// Aggregate rebuilds the per-hole breakdown from persisted shot records.
// Every shot counts toward its hole's raw score; only shots whose outcome
// is in the vocabulary count toward the outcome tally, so rounds recorded
// under an older vocabulary still total correctly.
func Aggregate(shots []entity.Shot, totalHoles int, outcomes []string) []HoleScore {
	holes := make([]HoleScore, totalHoles)
	for i := range holes {
		tally := make(map[string]int, len(outcomes))
		for _, o := range outcomes {
			tally[o] = 0
		}
		holes[i] = HoleScore{Hole: i + 1, Outcomes: tally}
	}
	for _, shot := range shots {
		if shot.HoleNumber < 1 || shot.HoleNumber > totalHoles {
			continue
		}
		h := &holes[shot.HoleNumber-1]
		h.Score++
		if _, ok := h.Outcomes[shot.Outcome]; ok {
			h.Outcomes[shot.Outcome]++
		}
	}
	return holes
}

// ComputeTotals sums a breakdown into front-nine (holes 1..9), back-nine
// (10..18) and overall totals, plus per-outcome totals across all holes.
func ComputeTotals(holes []HoleScore) Totals {
	totals := Totals{Outcomes: make(map[string]int)}
	for _, h := range holes {
		if h.Hole <= 9 {
			totals.FrontNine += h.Score
		} else {
			totals.BackNine += h.Score
		}
		for o, n := range h.Outcomes {
			totals.Outcomes[o] += n
		}
	}
	totals.Total = totals.FrontNine + totals.BackNine
	return totals
}

// HolePar is the displayed per-hole par: the course par evenly divided
// across 18 holes, rounded down. An approximation, not a real par map.
func HolePar(coursePar int) int {
	return coursePar / TotalHoles
}

// SidePar is the displayed Out/In par subtotal.
func SidePar(coursePar int) int {
	return coursePar / 2
}
