package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/internal/service"
	"github.com/tmworl/golftracker/pkg/entity"
	"github.com/tmworl/golftracker/pkg/scoring"
)

type courseServiceMock struct {
	course *entity.Course
	err    error
}

func (m *courseServiceMock) Resolve(ctx context.Context, req *service.ResolveCourseRequest) (*entity.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *courseServiceMock) GetCourse(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

type roundsRepoMock struct {
	rounds        map[uuid.UUID]*entity.Round
	err           error
	completeCalls int
}

func newRoundsRepoMock(rounds ...*entity.Round) *roundsRepoMock {
	m := &roundsRepoMock{rounds: make(map[uuid.UUID]*entity.Round)}
	for _, r := range rounds {
		m.rounds[r.ID] = r
	}
	return m
}

func (m *roundsRepoMock) Create(ctx context.Context, round *entity.Round) (uuid.UUID, error) {
	if m.err != nil {
		return uuid.UUID{}, m.err
	}
	stored := *round
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	m.rounds[stored.ID] = &stored
	return stored.ID, nil
}

func (m *roundsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Round, error) {
	if m.err != nil {
		return nil, m.err
	}
	round, ok := m.rounds[id]
	if !ok {
		return nil, errorvalues.ErrRoundNotFound
	}
	copied := *round
	return &copied, nil
}

func (m *roundsRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Round, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*entity.Round, 0)
	for _, round := range m.rounds {
		if round.UserID == uid {
			copied := *round
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *roundsRepoMock) Complete(ctx context.Context, id uuid.UUID, grossShots, score int) error {
	if m.err != nil {
		return m.err
	}
	round, ok := m.rounds[id]
	if !ok {
		return errorvalues.ErrRoundNotFound
	}
	if round.IsComplete {
		return errorvalues.ErrRoundComplete
	}
	m.completeCalls++
	round.IsComplete = true
	round.GrossShots = &grossShots
	round.Score = &score
	return nil
}

// staleRoundsRepo serves a configurable number of reads that still show
// the round as incomplete, emulating a concurrent completion landing
// between the read and the guarded update.
type staleRoundsRepo struct {
	*roundsRepoMock
	staleReads int
}

func (m *staleRoundsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Round, error) {
	round, err := m.roundsRepoMock.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.staleReads > 0 {
		m.staleReads--
		round.IsComplete = false
		round.GrossShots = nil
		round.Score = nil
	}
	return round, nil
}

type shotsRepoMock struct {
	shots []entity.Shot
	err   error
}

func (m *shotsRepoMock) CreateBatch(ctx context.Context, shots []entity.Shot) error {
	if m.err != nil {
		return m.err
	}
	m.shots = append(m.shots, shots...)
	return nil
}

func (m *shotsRepoMock) GetByRoundID(ctx context.Context, roundID uuid.UUID) ([]entity.Shot, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]entity.Shot, 0)
	for _, shot := range m.shots {
		if shot.RoundID == roundID {
			result = append(result, shot)
		}
	}
	return result, nil
}

func (m *shotsRepoMock) CountByRoundID(ctx context.Context, roundID uuid.UUID) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	shots, _ := m.GetByRoundID(ctx, roundID)
	return len(shots), nil
}

type insightGenMock struct {
	err    error
	called chan *entity.Round
}

func newInsightGenMock(err error) *insightGenMock {
	return &insightGenMock{err: err, called: make(chan *entity.Round, 1)}
}

func (m *insightGenMock) GenerateForRound(ctx context.Context, round *entity.Round) (*entity.Insight, error) {
	m.called <- round
	if m.err != nil {
		return nil, m.err
	}
	return &entity.Insight{ID: uuid.New()}, nil
}

func (m *insightGenMock) waitCall(t *testing.T) *entity.Round {
	t.Helper()
	select {
	case round := <-m.called:
		return round
	case <-time.After(time.Second):
		t.Fatal("insights generation was not triggered")
		return nil
	}
}

func testRoundFixtures() (*entity.Round, *courseServiceMock) {
	round := &entity.Round{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		CourseID: testCourse.ID,
	}
	return round, &courseServiceMock{course: &testCourse}
}

func TestStartRound(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	t.Run("success", func(t *testing.T) {
		rounds := newRoundsRepoMock()
		serv := service.NewRoundService(&courseServiceMock{course: &testCourse}, rounds, &shotsRepoMock{}, nil, scoring.DefaultVocabulary())
		round, course, err := serv.StartRound(ctx, userID, &service.StartRoundRequest{CourseName: "Pebble Beach"})
		assert.NoError(t, err)
		assert.Equal(t, testCourse.ID, course.ID)
		assert.Equal(t, userID, round.UserID)
		assert.Equal(t, testCourse.ID, round.CourseID)
		assert.False(t, round.IsComplete)
	})
	t.Run("validation rejects empty course name", func(t *testing.T) {
		serv := service.NewRoundService(&courseServiceMock{course: &testCourse}, newRoundsRepoMock(), &shotsRepoMock{}, nil, scoring.DefaultVocabulary())
		_, _, err := serv.StartRound(ctx, userID, &service.StartRoundRequest{CourseName: ""})
		assert.Error(t, err)
	})
	t.Run("missing owner maps to user not found", func(t *testing.T) {
		rounds := newRoundsRepoMock()
		rounds.err = errorvalues.ErrOwnerNotFound
		serv := service.NewRoundService(&courseServiceMock{course: &testCourse}, rounds, &shotsRepoMock{}, nil, scoring.DefaultVocabulary())
		_, _, err := serv.StartRound(ctx, userID, &service.StartRoundRequest{CourseName: "Pebble Beach"})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestFinishHole(t *testing.T) {
	ctx := context.Background()
	t.Run("counts flatten into persisted shots", func(t *testing.T) {
		round, courses := testRoundFixtures()
		rounds := newRoundsRepoMock(round)
		shots := &shotsRepoMock{}
		serv := service.NewRoundService(courses, rounds, shots, nil, scoring.DefaultVocabulary())
		n, err := serv.FinishHole(ctx, round.ID, round.UserID, 3, scoring.HoleCounts{
			"Tee Shot": {"On Target": 1},
			"Putts":    {"On Target": 1, "Slightly Off": 1},
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Len(t, shots.shots, 3)
		for _, shot := range shots.shots {
			assert.Equal(t, round.ID, shot.RoundID)
			assert.Equal(t, 3, shot.HoleNumber)
		}
	})
	t.Run("empty counts are a valid finish", func(t *testing.T) {
		round, courses := testRoundFixtures()
		shots := &shotsRepoMock{}
		serv := service.NewRoundService(courses, newRoundsRepoMock(round), shots, nil, scoring.DefaultVocabulary())
		n, err := serv.FinishHole(ctx, round.ID, round.UserID, 1, scoring.HoleCounts{})
		assert.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Empty(t, shots.shots)
	})
	t.Run("hole number out of range", func(t *testing.T) {
		round, courses := testRoundFixtures()
		serv := service.NewRoundService(courses, newRoundsRepoMock(round), &shotsRepoMock{}, nil, scoring.DefaultVocabulary())
		for _, hole := range []int{0, -1, 19} {
			_, err := serv.FinishHole(ctx, round.ID, round.UserID, hole, scoring.HoleCounts{})
			assert.ErrorIs(t, err, errorvalues.ErrInvalidHole)
		}
	})
	t.Run("labels outside the vocabulary are rejected", func(t *testing.T) {
		round, courses := testRoundFixtures()
		serv := service.NewRoundService(courses, newRoundsRepoMock(round), &shotsRepoMock{}, nil, scoring.DefaultVocabulary())
		_, err := serv.FinishHole(ctx, round.ID, round.UserID, 1, scoring.HoleCounts{
			"Mulligan": {"On Target": 1},
		})
		assert.ErrorIs(t, err, errorvalues.ErrUnknownShotType)
		_, err = serv.FinishHole(ctx, round.ID, round.UserID, 1, scoring.HoleCounts{
			"Putts": {"Perfect": 1},
		})
		assert.ErrorIs(t, err, errorvalues.ErrUnknownOutcome)
	})
	t.Run("foreign round is hidden from the caller", func(t *testing.T) {
		round, courses := testRoundFixtures()
		serv := service.NewRoundService(courses, newRoundsRepoMock(round), &shotsRepoMock{}, nil, scoring.DefaultVocabulary())
		_, err := serv.FinishHole(ctx, round.ID, uuid.New(), 1, scoring.HoleCounts{})
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("complete round takes no more shots", func(t *testing.T) {
		round, courses := testRoundFixtures()
		round.IsComplete = true
		serv := service.NewRoundService(courses, newRoundsRepoMock(round), &shotsRepoMock{}, nil, scoring.DefaultVocabulary())
		_, err := serv.FinishHole(ctx, round.ID, round.UserID, 1, scoring.HoleCounts{})
		assert.ErrorIs(t, err, errorvalues.ErrRoundComplete)
	})
}

func TestCompleteRound(t *testing.T) {
	ctx := context.Background()
	t.Run("derives totals from the persisted count", func(t *testing.T) {
		round, courses := testRoundFixtures()
		shots := &shotsRepoMock{}
		for range 84 {
			shots.shots = append(shots.shots, entity.Shot{RoundID: round.ID, HoleNumber: 1, ShotType: "Putts", Outcome: "On Target"})
		}
		gen := newInsightGenMock(nil)
		serv := service.NewRoundService(courses, newRoundsRepoMock(round), shots, gen, scoring.DefaultVocabulary())
		completed, err := serv.CompleteRound(ctx, round.ID, round.UserID)
		assert.NoError(t, err)
		assert.True(t, completed.IsComplete)
		assert.Equal(t, 84, *completed.GrossShots)
		assert.Equal(t, 12, *completed.Score)
		triggered := gen.waitCall(t)
		assert.Equal(t, round.ID, triggered.ID)
	})
	t.Run("repeated completion is a no-op", func(t *testing.T) {
		round, courses := testRoundFixtures()
		gross, score := 84, 12
		round.IsComplete = true
		round.GrossShots = &gross
		round.Score = &score
		rounds := newRoundsRepoMock(round)
		gen := newInsightGenMock(nil)
		serv := service.NewRoundService(courses, rounds, &shotsRepoMock{}, gen, scoring.DefaultVocabulary())
		completed, err := serv.CompleteRound(ctx, round.ID, round.UserID)
		assert.NoError(t, err)
		assert.True(t, completed.IsComplete)
		assert.Equal(t, 84, *completed.GrossShots)
		assert.Equal(t, 0, rounds.completeCalls)
		select {
		case <-gen.called:
			t.Fatal("insights must not be re-triggered on repeated completion")
		case <-time.After(50 * time.Millisecond):
		}
	})
	t.Run("losing a concurrent completion keeps the winner's totals", func(t *testing.T) {
		round, courses := testRoundFixtures()
		gross, score := 90, 18
		round.IsComplete = true
		round.GrossShots = &gross
		round.Score = &score
		rounds := &staleRoundsRepo{roundsRepoMock: newRoundsRepoMock(round), staleReads: 1}
		gen := newInsightGenMock(nil)
		serv := service.NewRoundService(courses, rounds, &shotsRepoMock{}, gen, scoring.DefaultVocabulary())
		completed, err := serv.CompleteRound(ctx, round.ID, round.UserID)
		assert.NoError(t, err)
		assert.True(t, completed.IsComplete)
		assert.Equal(t, 90, *completed.GrossShots)
		assert.Equal(t, 18, *completed.Score)
		assert.Equal(t, 0, rounds.completeCalls)
		select {
		case <-gen.called:
			t.Fatal("insights must not fire on the losing side of the race")
		case <-time.After(50 * time.Millisecond):
		}
	})
	t.Run("insights failure never reaches the caller", func(t *testing.T) {
		round, courses := testRoundFixtures()
		gen := newInsightGenMock(errors.New("analysis unavailable"))
		serv := service.NewRoundService(courses, newRoundsRepoMock(round), &shotsRepoMock{}, gen, scoring.DefaultVocabulary())
		completed, err := serv.CompleteRound(ctx, round.ID, round.UserID)
		assert.NoError(t, err)
		assert.True(t, completed.IsComplete)
		gen.waitCall(t)
	})
	t.Run("not found", func(t *testing.T) {
		_, courses := testRoundFixtures()
		serv := service.NewRoundService(courses, newRoundsRepoMock(), &shotsRepoMock{}, nil, scoring.DefaultVocabulary())
		_, err := serv.CompleteRound(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrRoundNotFound)
	})
}

// Plays a full round through the service surface and checks the derived
// score matches the hole-by-hole sum.
func TestRoundLifecycle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	rounds := newRoundsRepoMock()
	shots := &shotsRepoMock{}
	serv := service.NewRoundService(&courseServiceMock{course: &testCourse}, rounds, shots, nil, scoring.DefaultVocabulary())

	round, _, err := serv.StartRound(ctx, userID, &service.StartRoundRequest{CourseName: "Pebble Beach"})
	assert.NoError(t, err)

	// a birdie opening hole, then steady fours
	n, err := serv.FinishHole(ctx, round.ID, userID, 1, scoring.HoleCounts{
		"Tee Shot": {"On Target": 1},
		"Approach": {"Slightly Off": 1},
		"Putts":    {"On Target": 1},
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	for hole := 2; hole <= 18; hole++ {
		n, err = serv.FinishHole(ctx, round.ID, userID, hole, scoring.HoleCounts{
			"Tee Shot": {"On Target": 1},
			"Approach": {"On Target": 1},
			"Putts":    {"On Target": 2},
		})
		assert.NoError(t, err)
		assert.Equal(t, 4, n)
	}

	completed, err := serv.CompleteRound(ctx, round.ID, userID)
	assert.NoError(t, err)
	assert.Equal(t, 71, *completed.GrossShots)
	assert.Equal(t, -1, *completed.Score)
}
