package scoring

import (
	"maps"

	"github.com/google/uuid"
	"github.com/tmworl/golftracker/pkg/entity"
)

// HoleCounts maps shot type -> outcome -> count for a single hole.
type HoleCounts map[string]map[string]int

// Ledger is an immutable snapshot of per-hole shot counts for an active
// round. Increment and Decrement return a new snapshot; only the touched
// hole's sub-maps are copied, the rest is shared.
type Ledger struct {
	vocab Vocabulary
	holes map[int]HoleCounts
}

// NewLedger builds an all-zero ledger covering holes 1..totalHoles for
// every (shotType, outcome) pair in the vocabulary.
func NewLedger(totalHoles int, vocab Vocabulary) Ledger {
	holes := make(map[int]HoleCounts, totalHoles)
	for h := 1; h <= totalHoles; h++ {
		counts := make(HoleCounts, len(vocab.ShotTypes))
		for _, st := range vocab.ShotTypes {
			cell := make(map[string]int, len(vocab.Outcomes))
			for _, o := range vocab.Outcomes {
				cell[o] = 0
			}
			counts[st] = cell
		}
		holes[h] = counts
	}
	return Ledger{vocab: vocab, holes: holes}
}

func (l Ledger) TotalHoles() int {
	return len(l.holes)
}

func (l Ledger) Count(hole int, shotType, outcome string) int {
	return l.holes[hole][shotType][outcome]
}

// HoleCounts returns a copy of one hole's counts, safe to hand out.
func (l Ledger) HoleCounts(hole int) HoleCounts {
	counts, ok := l.holes[hole]
	if !ok {
		return nil
	}
	out := make(HoleCounts, len(counts))
	for st, cell := range counts {
		out[st] = maps.Clone(cell)
	}
	return out
}

// Increment adds one shot to the cell. Unknown holes and labels outside
// the vocabulary leave the ledger unchanged.
func (l Ledger) Increment(hole int, shotType, outcome string) Ledger {
	return l.adjust(hole, shotType, outcome, 1)
}

// Decrement removes one shot from the cell, clamping at zero: decrementing
// an empty cell is a no-op, not an error.
func (l Ledger) Decrement(hole int, shotType, outcome string) Ledger {
	return l.adjust(hole, shotType, outcome, -1)
}

func (l Ledger) adjust(hole int, shotType, outcome string, delta int) Ledger {
	counts, ok := l.holes[hole]
	if !ok {
		return l
	}
	cell, ok := counts[shotType]
	if !ok {
		return l
	}
	if _, ok := cell[outcome]; !ok {
		return l
	}
	next := cell[outcome] + delta
	if next < 0 {
		next = 0
	}
	if next == cell[outcome] {
		return l
	}
	newCell := maps.Clone(cell)
	newCell[outcome] = next
	newCounts := maps.Clone(counts)
	newCounts[shotType] = newCell
	newHoles := maps.Clone(l.holes)
	newHoles[hole] = newCounts
	return Ledger{vocab: l.vocab, holes: newHoles}
}

// FlattenHole de-normalizes one hole's counts into individual shot records:
// a cell holding count N emits N identical records. An all-zero hole yields
// an empty slice. Emission order is unspecified.
func (l Ledger) FlattenHole(roundID uuid.UUID, hole int) []entity.Shot {
	return FlattenCounts(roundID, hole, l.holes[hole])
}

// FlattenCounts is FlattenHole over a free-standing counts map, used when
// the counts arrive over the wire instead of from a held ledger.
func FlattenCounts(roundID uuid.UUID, hole int, counts HoleCounts) []entity.Shot {
	shots := make([]entity.Shot, 0)
	for shotType, cell := range counts {
		for outcome, n := range cell {
			for i := 0; i < n; i++ {
				shots = append(shots, entity.Shot{
					RoundID:    roundID,
					HoleNumber: hole,
					ShotType:   shotType,
					Outcome:    outcome,
				})
			}
		}
	}
	return shots
}
