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

type InsightsRepository struct {
	conn PgConnection
}

func NewInsightsRepo(cfg DBConfig) *InsightsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for insightsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for insightsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing insightsRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &InsightsRepository{
		conn: pool,
	}
}

func NewInsightsRepoWithConn(conn PgConnection) *InsightsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for insightsRepo: " + err.Error())
	}
	return &InsightsRepository{
		conn: conn,
	}
}

func (ir *InsightsRepository) Create(ctx context.Context, insight *entity.Insight) (uuid.UUID, error) {
	if insight == nil {
		return uuid.UUID{}, errors.New("insight is nil")
	}
	var id uuid.UUID
	row := ir.conn.QueryRow(ctx, `INSERT INTO insights (user_id, round_id, summary, primary_issue, reason, practice_focus, management_tip, progress_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;`,
		insight.UserID,
		insight.RoundID,
		insight.Summary,
		insight.PrimaryIssue,
		insight.Reason,
		insight.PracticeFocus,
		insight.ManagementTip,
		insight.ProgressNote,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating insight db error: " + err.Error())
	}
	return id, nil
}

func (ir *InsightsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Insight, error) {
	var insight entity.Insight
	row := ir.conn.QueryRow(ctx, `SELECT id, user_id, round_id, summary, primary_issue, reason, practice_focus, management_tip, progress_note, feedback_rating, created_at
		FROM insights WHERE id = $1;`, id)
	if err := scanInsight(row, &insight); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrInsightNotFound
		}
		return nil, errors.New("searching insight by id error: " + err.Error())
	}
	return &insight, nil
}

func (ir *InsightsRepository) GetLatestByUserID(ctx context.Context, uid uuid.UUID) (*entity.Insight, error) {
	var insight entity.Insight
	row := ir.conn.QueryRow(ctx, `SELECT id, user_id, round_id, summary, primary_issue, reason, practice_focus, management_tip, progress_note, feedback_rating, created_at
		FROM insights WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1;`, uid)
	if err := scanInsight(row, &insight); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrInsightNotFound
		}
		return nil, errors.New("searching latest insight error: " + err.Error())
	}
	return &insight, nil
}

func (ir *InsightsRepository) UpdateFeedback(ctx context.Context, id uuid.UUID, rating int) error {
	ct, err := ir.conn.Exec(ctx, `UPDATE insights SET feedback_rating = $1 WHERE id = $2;`, rating, id)
	if err != nil {
		return errors.New("updating insight feedback error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrInsightNotFound
	}
	return nil
}

func scanInsight(row pgx.Row, insight *entity.Insight) error {
	return row.Scan(
		&insight.ID,
		&insight.UserID,
		&insight.RoundID,
		&insight.Summary,
		&insight.PrimaryIssue,
		&insight.Reason,
		&insight.PracticeFocus,
		&insight.ManagementTip,
		&insight.ProgressNote,
		&insight.FeedbackRating,
		&insight.CreatedAt,
	)
}
