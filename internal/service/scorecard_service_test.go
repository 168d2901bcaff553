package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/internal/service"
	"github.com/tmworl/golftracker/pkg/entity"
	"github.com/tmworl/golftracker/pkg/scoring"
)

func TestGetScorecard(t *testing.T) {
	ctx := context.Background()
	t.Run("rebuilds holes and totals from persisted shots", func(t *testing.T) {
		round, courses := testRoundFixtures()
		shots := &shotsRepoMock{}
		shots.shots = append(shots.shots,
			entity.Shot{RoundID: round.ID, HoleNumber: 1, ShotType: "Tee Shot", Outcome: "On Target"},
			entity.Shot{RoundID: round.ID, HoleNumber: 1, ShotType: "Putts", Outcome: "On Target"},
			entity.Shot{RoundID: round.ID, HoleNumber: 1, ShotType: "Putts", Outcome: "Slightly Off"},
			entity.Shot{RoundID: round.ID, HoleNumber: 10, ShotType: "Tee Shot", Outcome: "Recovery Needed"},
			entity.Shot{RoundID: round.ID, HoleNumber: 10, ShotType: "Chip", Outcome: "On Target"},
		)
		serv := service.NewScorecardService(courses, newRoundsRepoMock(round), shots, scoring.DefaultVocabulary())
		card, err := serv.GetScorecard(ctx, round.ID, round.UserID)
		assert.NoError(t, err)
		assert.Equal(t, round.ID, card.RoundID)
		assert.Equal(t, 72, card.CoursePar)
		assert.Equal(t, 4, card.HolePar)
		assert.Equal(t, 36, card.SidePar)
		assert.False(t, card.IsComplete)
		assert.Len(t, card.Holes, scoring.TotalHoles)
		assert.Equal(t, 3, card.Holes[0].Score)
		assert.Equal(t, 2, card.Holes[0].Outcomes["On Target"])
		assert.Equal(t, 1, card.Holes[0].Outcomes["Slightly Off"])
		assert.Equal(t, 2, card.Holes[9].Score)
		assert.Equal(t, 3, card.Totals.FrontNine)
		assert.Equal(t, 2, card.Totals.BackNine)
		assert.Equal(t, 5, card.Totals.Total)
		assert.Equal(t, 3, card.Totals.Outcomes["On Target"])
	})
	t.Run("empty round yields zeroed holes", func(t *testing.T) {
		round, courses := testRoundFixtures()
		serv := service.NewScorecardService(courses, newRoundsRepoMock(round), &shotsRepoMock{}, scoring.DefaultVocabulary())
		card, err := serv.GetScorecard(ctx, round.ID, round.UserID)
		assert.NoError(t, err)
		assert.Len(t, card.Holes, scoring.TotalHoles)
		for _, hole := range card.Holes {
			assert.Zero(t, hole.Score)
		}
		assert.Zero(t, card.Totals.Total)
	})
	t.Run("complete round carries stored totals", func(t *testing.T) {
		round, courses := testRoundFixtures()
		gross, score := 84, 12
		round.IsComplete = true
		round.GrossShots = &gross
		round.Score = &score
		serv := service.NewScorecardService(courses, newRoundsRepoMock(round), &shotsRepoMock{}, scoring.DefaultVocabulary())
		card, err := serv.GetScorecard(ctx, round.ID, round.UserID)
		assert.NoError(t, err)
		assert.True(t, card.IsComplete)
		assert.Equal(t, 84, *card.GrossShots)
		assert.Equal(t, 12, *card.Score)
	})
	t.Run("not found", func(t *testing.T) {
		_, courses := testRoundFixtures()
		serv := service.NewScorecardService(courses, newRoundsRepoMock(), &shotsRepoMock{}, scoring.DefaultVocabulary())
		_, err := serv.GetScorecard(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrRoundNotFound)
	})
	t.Run("foreign round is hidden from the caller", func(t *testing.T) {
		round, courses := testRoundFixtures()
		serv := service.NewScorecardService(courses, newRoundsRepoMock(round), &shotsRepoMock{}, scoring.DefaultVocabulary())
		_, err := serv.GetScorecard(ctx, round.ID, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
}
