package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/pkg/cleanup"
	"github.com/tmworl/golftracker/pkg/entity"
)

type RoundsRepository struct {
	conn PgConnection
}

func NewRoundsRepo(cfg DBConfig) *RoundsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for roundsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for roundsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing roundsRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &RoundsRepository{
		conn: pool,
	}
}

func NewRoundsRepoWithConn(conn PgConnection) *RoundsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for roundsRepo: " + err.Error())
	}
	return &RoundsRepository{
		conn: conn,
	}
}

func (rr *RoundsRepository) Create(ctx context.Context, round *entity.Round) (uuid.UUID, error) {
	if round == nil {
		return uuid.UUID{}, errors.New("round is nil")
	}
	var id uuid.UUID
	row := rr.conn.QueryRow(ctx, `INSERT INTO rounds (user_id, course_id) VALUES ($1, $2) RETURNING id;`,
		round.UserID,
		round.CourseID,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation: either the user or the course is gone
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating round db error: " + err.Error())
	}
	return id, nil
}

func (rr *RoundsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Round, error) {
	var round entity.Round
	row := rr.conn.QueryRow(ctx, `SELECT id, user_id, course_id, is_complete, gross_shots, score, created_at FROM rounds WHERE id = $1;`, id)
	if err := row.Scan(&round.ID, &round.UserID, &round.CourseID, &round.IsComplete, &round.GrossShots, &round.Score, &round.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrRoundNotFound
		}
		return nil, errors.New("searching round by id error: " + err.Error())
	}
	return &round, nil
}

func (rr *RoundsRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Round, error) {
	rounds := make([]*entity.Round, 0)
	rows, err := rr.conn.Query(ctx, `SELECT id, user_id, course_id, is_complete, gross_shots, score, created_at
		FROM rounds WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting rounds by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		r := entity.Round{}
		err = rows.Scan(&r.ID, &r.UserID, &r.CourseID, &r.IsComplete, &r.GrossShots, &r.Score, &r.CreatedAt)
		if err != nil {
			return nil, errors.New("round row parsing error: " + err.Error())
		}
		rounds = append(rounds, &r)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected round rows error: " + rows.Err().Error())
	}
	return rounds, nil
}

// Complete only touches rounds still marked incomplete, so concurrent
// completions race on the predicate and exactly one update lands. A zero
// row count then means the round is either gone or already complete; the
// follow-up read tells the two apart.
func (rr *RoundsRepository) Complete(ctx context.Context, id uuid.UUID, grossShots, score int) error {
	ct, err := rr.conn.Exec(ctx, `UPDATE rounds SET is_complete = TRUE, gross_shots = $1, score = $2 WHERE id = $3 AND is_complete = FALSE;`,
		grossShots,
		score,
		id,
	)
	if err != nil {
		return errors.New("completing round error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		row := rr.conn.QueryRow(ctx, `SELECT is_complete FROM rounds WHERE id = $1;`, id)
		var isComplete bool
		if err := row.Scan(&isComplete); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errorvalues.ErrRoundNotFound
			}
			return errors.New("completing round error: " + err.Error())
		}
		if isComplete {
			return errorvalues.ErrRoundComplete
		}
		return errorvalues.ErrRoundNotFound
	}
	return nil
}
