package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tmworl/golftracker/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Updates user's info
	Update(ctx context.Context, user *entity.User) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type CoursesRepositoryI interface {
	// Creates new course. Name must already be normalized (lower-cased)
	Create(ctx context.Context, course *entity.Course) (uuid.UUID, error)
	// Looks up course by its normalized name
	FindByName(ctx context.Context, name string) (*entity.Course, error)
	// Searches course with given id, tees included
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Course, error)
	// Adds a tee variant to a course
	CreateTee(ctx context.Context, tee *entity.Tee) (uuid.UUID, error)
}

type RoundsRepositoryI interface {
	// Creates new incomplete round for user on course
	Create(ctx context.Context, round *entity.Round) (uuid.UUID, error)
	// Searches round with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Round, error)
	// Lists rounds owned by user, newest first. Requires pagination params
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Round, error)
	// Marks round complete and fills derived totals. The only mutation
	// path for a round after creation. Completes at most once: a round
	// already complete yields ErrRoundComplete
	Complete(ctx context.Context, id uuid.UUID, grossShots, score int) error
}

type ShotsRepositoryI interface {
	// Persists shots in one bulk insert. Empty input is a no-op
	CreateBatch(ctx context.Context, shots []entity.Shot) error
	// Provides all shots of a round
	GetByRoundID(ctx context.Context, roundID uuid.UUID) ([]entity.Shot, error)
	// Returns count of persisted shots for a round (store-side aggregate)
	CountByRoundID(ctx context.Context, roundID uuid.UUID) (int, error)
}

type InsightsRepositoryI interface {
	// Stores a generated insight
	Create(ctx context.Context, insight *entity.Insight) (uuid.UUID, error)
	// Searches insight with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Insight, error)
	// Returns user's most recent insight
	GetLatestByUserID(ctx context.Context, uid uuid.UUID) (*entity.Insight, error)
	// Records a 1..3 feedback rating
	UpdateFeedback(ctx context.Context, id uuid.UUID, rating int) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
