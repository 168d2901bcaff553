package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/internal/repository"
	"github.com/tmworl/golftracker/pkg/scoring"
)

type ScorecardService struct {
	courses CourseServiceI
	rounds  repository.RoundsRepositoryI
	shots   repository.ShotsRepositoryI
	vocab   scoring.Vocabulary
}

func NewScorecardService(
	courseService CourseServiceI,
	roundsRepo repository.RoundsRepositoryI,
	shotsRepo repository.ShotsRepositoryI,
	vocab scoring.Vocabulary,
) *ScorecardService {
	if courseService == nil || roundsRepo == nil || shotsRepo == nil {
		log.Fatal("on scorecard service provided nil dependencies")
	}
	return &ScorecardService{
		courses: courseService,
		rounds:  roundsRepo,
		shots:   shotsRepo,
		vocab:   vocab,
	}
}

// GetScorecard rebuilds the per-hole breakdown from the round's persisted
// shot records, independent of whatever ledger produced them.
func (ss *ScorecardService) GetScorecard(ctx context.Context, roundID, userID uuid.UUID) (*Scorecard, error) {
	round, err := ss.rounds.GetByID(ctx, roundID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoundNotFound) {
			return nil, err
		}
		return nil, errors.New("rounds repository error: " + err.Error())
	}
	if round.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	course, err := ss.courses.GetCourse(ctx, round.CourseID)
	if err != nil {
		return nil, err
	}
	par := course.Par
	if par <= 0 {
		par = scoring.DefaultPar
	}
	shots, err := ss.shots.GetByRoundID(ctx, roundID)
	if err != nil {
		return nil, errors.New("shots repository error: " + err.Error())
	}
	holes := scoring.Aggregate(shots, scoring.TotalHoles, ss.vocab.Outcomes)
	return &Scorecard{
		RoundID:    round.ID,
		CoursePar:  par,
		HolePar:    scoring.HolePar(par),
		SidePar:    scoring.SidePar(par),
		IsComplete: round.IsComplete,
		GrossShots: round.GrossShots,
		Score:      round.Score,
		Holes:      holes,
		Totals:     scoring.ComputeTotals(holes),
	}, nil
}
