package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/internal/repository"
	"github.com/tmworl/golftracker/pkg/entity"
	"github.com/tmworl/golftracker/pkg/scoring"
)

var insightsTimeout = time.Second * 30

type RoundService struct {
	courses    CourseServiceI
	rounds     repository.RoundsRepositoryI
	shots      repository.ShotsRepositoryI
	insights   InsightGeneratorI
	vocab      scoring.Vocabulary
	totalHoles int
}

func NewRoundService(
	courseService CourseServiceI,
	roundsRepo repository.RoundsRepositoryI,
	shotsRepo repository.ShotsRepositoryI,
	insights InsightGeneratorI,
	vocab scoring.Vocabulary,
) *RoundService {
	if courseService == nil || roundsRepo == nil || shotsRepo == nil {
		log.Fatal("on round service provided nil dependencies")
	}
	return &RoundService{
		courses:    courseService,
		rounds:     roundsRepo,
		shots:      shotsRepo,
		insights:   insights,
		vocab:      vocab,
		totalHoles: scoring.TotalHoles,
	}
}

// StartRound resolves the course (find-or-create) and opens an incomplete
// round on it. The two writes are separate calls: a round insert failing
// after a course create leaves the course behind, which is fine since the
// next resolve reuses it.
func (rs *RoundService) StartRound(ctx context.Context, userID uuid.UUID, req *StartRoundRequest) (*entity.Round, *entity.Course, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, nil, err
		}
		return nil, nil, errors.New("validation unexpected error: " + err.Error())
	}
	course, err := rs.courses.Resolve(ctx, &ResolveCourseRequest{
		Name:     req.CourseName,
		ClubName: req.ClubName,
		Location: req.Location,
		Par:      req.Par,
	})
	if err != nil {
		return nil, nil, err
	}
	id, err := rs.rounds.Create(ctx, &entity.Round{
		UserID:   userID,
		CourseID: course.ID,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, nil, errorvalues.ErrUserNotFound
		}
		return nil, nil, errors.New("rounds repository error: " + err.Error())
	}
	round, err := rs.rounds.GetByID(ctx, id)
	if err != nil {
		return nil, nil, errors.New("rounds repository error: " + err.Error())
	}
	return round, course, nil
}

func (rs *RoundService) GetRound(ctx context.Context, roundID, userID uuid.UUID) (*entity.Round, error) {
	round, err := rs.rounds.GetByID(ctx, roundID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoundNotFound) {
			return nil, err
		}
		return nil, errors.New("rounds repository error: " + err.Error())
	}
	if round.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return round, nil
}

func (rs *RoundService) GetUserRounds(ctx context.Context, userID uuid.UUID, pagination PaginationOpts) ([]*entity.Round, error) {
	rounds, err := rs.rounds.GetByUserID(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("rounds repository error: " + err.Error())
	}
	return rounds, nil
}

// FinishHole flattens the hole's counts into individual shot records and
// persists them in one bulk insert. Zero recorded shots is a valid finish.
func (rs *RoundService) FinishHole(ctx context.Context, roundID, userID uuid.UUID, hole int, counts scoring.HoleCounts) (int, error) {
	if hole < 1 || hole > rs.totalHoles {
		return 0, errorvalues.ErrInvalidHole
	}
	for shotType, cell := range counts {
		if !rs.vocab.HasShotType(shotType) {
			return 0, errorvalues.ErrUnknownShotType
		}
		for outcome := range cell {
			if !rs.vocab.HasOutcome(outcome) {
				return 0, errorvalues.ErrUnknownOutcome
			}
		}
	}
	round, err := rs.GetRound(ctx, roundID, userID)
	if err != nil {
		return 0, err
	}
	if round.IsComplete {
		return 0, errorvalues.ErrRoundComplete
	}
	shots := scoring.FlattenCounts(roundID, hole, counts)
	err = rs.shots.CreateBatch(ctx, shots)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoundNotFound) {
			return 0, err
		}
		return 0, errors.New("shots repository error: " + err.Error())
	}
	return len(shots), nil
}

// CompleteRound derives gross shots and score from persisted truth: a
// store-side count of the round's shot records against the course par.
// Calling it on an already-complete round is a no-op returning the stored
// round, so retries are safe and the insights trigger fires at most once
// per completion.
func (rs *RoundService) CompleteRound(ctx context.Context, roundID, userID uuid.UUID) (*entity.Round, error) {
	round, err := rs.GetRound(ctx, roundID, userID)
	if err != nil {
		return nil, err
	}
	if round.IsComplete {
		return round, nil
	}
	course, err := rs.courses.GetCourse(ctx, round.CourseID)
	if err != nil {
		return nil, err
	}
	par := course.Par
	if par <= 0 {
		par = scoring.DefaultPar
	}
	gross, err := rs.shots.CountByRoundID(ctx, roundID)
	if err != nil {
		return nil, errors.New("shots repository error: " + err.Error())
	}
	score := gross - par
	err = rs.rounds.Complete(ctx, roundID, gross, score)
	if err != nil {
		// lost a concurrent completion race: the winner's totals stand
		// and the winner already fired the insights trigger
		if errors.Is(err, errorvalues.ErrRoundComplete) {
			round, err = rs.rounds.GetByID(ctx, roundID)
			if err != nil {
				return nil, errors.New("rounds repository error: " + err.Error())
			}
			return round, nil
		}
		if errors.Is(err, errorvalues.ErrRoundNotFound) {
			return nil, err
		}
		return nil, errors.New("rounds repository error: " + err.Error())
	}
	round.IsComplete = true
	round.GrossShots = &gross
	round.Score = &score
	rs.triggerInsights(round)
	return round, nil
}

// triggerInsights dispatches the analysis call on its own goroutine with
// its own deadline. Failures are logged and swallowed: the completed round
// has already been returned to the caller.
func (rs *RoundService) triggerInsights(round *entity.Round) {
	if rs.insights == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), insightsTimeout)
		defer cancel()
		if _, err := rs.insights.GenerateForRound(ctx, round); err != nil {
			slog.Error("insights generation failed",
				slog.String("round_id", round.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}()
}
