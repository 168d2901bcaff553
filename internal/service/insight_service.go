package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/internal/insights"
	"github.com/tmworl/golftracker/internal/repository"
	"github.com/tmworl/golftracker/pkg/entity"
	"github.com/tmworl/golftracker/pkg/scoring"
)

// AnalyzerI is the remote analysis function behind the insights feature.
type AnalyzerI interface {
	Analyze(ctx context.Context, req *insights.AnalysisRequest) (*insights.AnalysisResult, error)
}

type InsightService struct {
	repo     repository.InsightsRepositoryI
	shots    repository.ShotsRepositoryI
	courses  CourseServiceI
	analyzer AnalyzerI
	vocab    scoring.Vocabulary
}

func NewInsightService(
	insightsRepo repository.InsightsRepositoryI,
	shotsRepo repository.ShotsRepositoryI,
	courseService CourseServiceI,
	analyzer AnalyzerI,
	vocab scoring.Vocabulary,
) *InsightService {
	if insightsRepo == nil || shotsRepo == nil || courseService == nil || analyzer == nil {
		log.Fatal("on insight service provided nil dependencies")
	}
	return &InsightService{
		repo:     insightsRepo,
		shots:    shotsRepo,
		courses:  courseService,
		analyzer: analyzer,
		vocab:    vocab,
	}
}

// GenerateForRound aggregates the round's persisted shots, sends the
// summary to the remote analysis function and stores what comes back.
// Runs detached from round completion; the caller there logs and drops
// any error returned here.
func (is *InsightService) GenerateForRound(ctx context.Context, round *entity.Round) (*entity.Insight, error) {
	if round == nil {
		return nil, errors.New("round is nil")
	}
	course, err := is.courses.GetCourse(ctx, round.CourseID)
	if err != nil {
		return nil, err
	}
	par := course.Par
	if par <= 0 {
		par = scoring.DefaultPar
	}
	shots, err := is.shots.GetByRoundID(ctx, round.ID)
	if err != nil {
		return nil, errors.New("shots repository error: " + err.Error())
	}
	holes := scoring.Aggregate(shots, scoring.TotalHoles, is.vocab.Outcomes)
	req := &insights.AnalysisRequest{
		UserID:    round.UserID.String(),
		RoundID:   round.ID.String(),
		CoursePar: par,
	}
	if round.GrossShots != nil {
		req.GrossShots = *round.GrossShots
	}
	if round.Score != nil {
		req.Score = *round.Score
	}
	for _, h := range holes {
		if h.Score == 0 {
			continue
		}
		req.Holes = append(req.Holes, insights.HoleSummary{
			Hole:     h.Hole,
			Score:    h.Score,
			Outcomes: h.Outcomes,
		})
	}
	result, err := is.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, errors.New("analysis function error: " + err.Error())
	}
	roundID := round.ID
	insight := &entity.Insight{
		UserID:        round.UserID,
		RoundID:       &roundID,
		Summary:       result.Summary,
		PrimaryIssue:  result.PrimaryIssue,
		Reason:        result.Reason,
		PracticeFocus: result.PracticeFocus,
		ManagementTip: result.ManagementTip,
		ProgressNote:  result.ProgressNote,
	}
	id, err := is.repo.Create(ctx, insight)
	if err != nil {
		return nil, errors.New("insights repository error: " + err.Error())
	}
	stored, err := is.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("insights repository error: " + err.Error())
	}
	return stored, nil
}

func (is *InsightService) GetLatest(ctx context.Context, userID uuid.UUID) (*entity.Insight, error) {
	insight, err := is.repo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrInsightNotFound) {
			return nil, err
		}
		return nil, errors.New("insights repository error: " + err.Error())
	}
	return insight, nil
}

func (is *InsightService) RateInsight(ctx context.Context, insightID, userID uuid.UUID, rating int) error {
	if rating < 1 || rating > 3 {
		return errorvalues.ErrInvalidRating
	}
	insight, err := is.repo.GetByID(ctx, insightID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrInsightNotFound) {
			return err
		}
		return errors.New("insights repository error: " + err.Error())
	}
	if insight.UserID != userID {
		return errorvalues.ErrWrongOwner
	}
	err = is.repo.UpdateFeedback(ctx, insightID, rating)
	if err != nil {
		if errors.Is(err, errorvalues.ErrInsightNotFound) {
			return err
		}
		return errors.New("insights repository error: " + err.Error())
	}
	return nil
}
