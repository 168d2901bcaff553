package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tmworl/golftracker/pkg/entity"
	"github.com/tmworl/golftracker/pkg/scoring"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type ResolveCourseRequest struct {
	Name     string `validate:"required,min=2,max=150"`
	ClubName string `validate:"max=150"`
	Location string `validate:"max=150"`
	Par      int    `validate:"omitempty,min=27,max=100"`
}

type CourseServiceI interface {
	// Maps a user-supplied course name to a canonical course, creating one
	// on first reference. Lookup is case-insensitive.
	Resolve(ctx context.Context, req *ResolveCourseRequest) (*entity.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*entity.Course, error)
}

type StartRoundRequest struct {
	CourseName string `validate:"required,min=2,max=150"`
	ClubName   string `validate:"max=150"`
	Location   string `validate:"max=150"`
	Par        int    `validate:"omitempty,min=27,max=100"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type RoundServiceI interface {
	// Resolves the course and opens an incomplete round on it
	StartRound(ctx context.Context, userID uuid.UUID, req *StartRoundRequest) (*entity.Round, *entity.Course, error)
	GetRound(ctx context.Context, roundID, userID uuid.UUID) (*entity.Round, error)
	GetUserRounds(ctx context.Context, userID uuid.UUID, pagination PaginationOpts) ([]*entity.Round, error)
	// Flattens the submitted per-hole counts into shot records and persists
	// them in one bulk insert. Returns how many records were persisted
	FinishHole(ctx context.Context, roundID, userID uuid.UUID, hole int, counts scoring.HoleCounts) (int, error)
	// Recounts persisted shots, derives the score against course par and
	// marks the round complete. Idempotent: a complete round is returned
	// as is. Triggers insights generation on the incomplete->complete
	// transition, detached from this call's outcome
	CompleteRound(ctx context.Context, roundID, userID uuid.UUID) (*entity.Round, error)
}

// Scorecard is the display-ready reconstruction of a round from its
// persisted shot records.
type Scorecard struct {
	RoundID    uuid.UUID           `json:"round_id"`
	CoursePar  int                 `json:"course_par"`
	HolePar    int                 `json:"hole_par"`
	SidePar    int                 `json:"side_par"`
	IsComplete bool                `json:"is_complete"`
	GrossShots *int                `json:"gross_shots"`
	Score      *int                `json:"score"`
	Holes      []scoring.HoleScore `json:"holes"`
	Totals     scoring.Totals      `json:"totals"`
}

type ScorecardServiceI interface {
	GetScorecard(ctx context.Context, roundID, userID uuid.UUID) (*Scorecard, error)
}

type InsightServiceI interface {
	// Builds the round's performance summary, calls the remote analysis
	// function and stores the result
	GenerateForRound(ctx context.Context, round *entity.Round) (*entity.Insight, error)
	GetLatest(ctx context.Context, userID uuid.UUID) (*entity.Insight, error)
	RateInsight(ctx context.Context, insightID, userID uuid.UUID, rating int) error
}

// InsightGeneratorI is the detached post-completion trigger RoundService
// depends on; its failures never reach round completion's caller.
type InsightGeneratorI interface {
	GenerateForRound(ctx context.Context, round *entity.Round) (*entity.Insight, error)
}
