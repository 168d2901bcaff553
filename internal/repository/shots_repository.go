package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/pkg/cleanup"
	"github.com/tmworl/golftracker/pkg/entity"
)

type ShotsRepository struct {
	conn PgConnection
}

func NewShotsRepo(cfg DBConfig) *ShotsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for shotsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for shotsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing shotsRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ShotsRepository{
		conn: pool,
	}
}

func NewShotsRepoWithConn(conn PgConnection) *ShotsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for shotsRepo: " + err.Error())
	}
	return &ShotsRepository{
		conn: conn,
	}
}

// CreateBatch inserts all shots in a single multi-row statement. A hole
// finished with zero shots recorded is valid, so empty input succeeds
// without touching the database.
func (sr *ShotsRepository) CreateBatch(ctx context.Context, shots []entity.Shot) error {
	if len(shots) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO shots (round_id, hole_number, shot_type, outcome) VALUES `)
	args := make([]any, 0, len(shots)*4)
	for i, s := range shots {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 4
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4)
		args = append(args, s.RoundID, s.HoleNumber, s.ShotType, s.Outcome)
	}
	sb.WriteString(";")
	_, err := sr.conn.Exec(ctx, sb.String(), args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrRoundNotFound
			}
		}
		return errors.New("creating shots db error: " + err.Error())
	}
	return nil
}

func (sr *ShotsRepository) GetByRoundID(ctx context.Context, roundID uuid.UUID) ([]entity.Shot, error) {
	rows, err := sr.conn.Query(
		ctx,
		`SELECT id, round_id, hole_number, shot_type, outcome, created_at FROM shots WHERE round_id = $1 ORDER BY hole_number, id;`,
		roundID,
	)
	if err != nil {
		return nil, errors.New("getting shots for round error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.Shot, 0)
	for rows.Next() {
		shot := entity.Shot{}
		err = rows.Scan(&shot.ID, &shot.RoundID, &shot.HoleNumber, &shot.ShotType, &shot.Outcome, &shot.CreatedAt)
		if err != nil {
			return nil, errors.New("shot row parsing error: " + err.Error())
		}
		result = append(result, shot)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected shot rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (sr *ShotsRepository) CountByRoundID(ctx context.Context, roundID uuid.UUID) (int, error) {
	row := sr.conn.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM shots WHERE round_id = $1;`,
		roundID,
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting shots: " + err.Error())
	}
	return count, nil
}
