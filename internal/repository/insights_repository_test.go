package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/internal/repository"
	"github.com/tmworl/golftracker/pkg/entity"
)

var insightColumns = []string{"id", "user_id", "round_id", "summary", "primary_issue", "reason", "practice_focus", "management_tip", "progress_note", "feedback_rating", "created_at"}

func testInsight() entity.Insight {
	rid := uuid.New()
	return entity.Insight{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		RoundID:       &rid,
		Summary:       "solid ball striking, putting cost strokes",
		PrimaryIssue:  "three putts",
		Reason:        "distance control on long putts",
		PracticeFocus: "lag putting drills",
		ManagementTip: "aim for the fat side of the green",
		CreatedAt:     time.Now(),
	}
}

func TestCreateInsight(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewInsightsRepoWithConn(conn)
	insight := testInsight()
	iid := uuid.New()
	query := regexp.QuoteMeta(`INSERT INTO insights (user_id, round_id, summary, primary_issue, reason, practice_focus, management_tip, progress_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;`)
	ctx := context.Background()
	t.Run("successfully created", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(insight.UserID, insight.RoundID, insight.Summary, insight.PrimaryIssue, insight.Reason, insight.PracticeFocus, insight.ManagementTip, insight.ProgressNote).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(iid))
		id, err := repo.Create(ctx, &insight)
		assert.NoError(t, err)
		assert.Equal(t, iid, id)
	})
	t.Run("FK violation", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(insight.UserID, insight.RoundID, insight.Summary, insight.PrimaryIssue, insight.Reason, insight.PracticeFocus, insight.ManagementTip, insight.ProgressNote).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		_, err := repo.Create(ctx, &insight)
		assert.ErrorIs(t, err, errorvalues.ErrOwnerNotFound)
	})
}

func TestGetLatestInsightByUserID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewInsightsRepoWithConn(conn)
	insight := testInsight()
	query := regexp.QuoteMeta(`SELECT id, user_id, round_id, summary, primary_issue, reason, practice_focus, management_tip, progress_note, feedback_rating, created_at
		FROM insights WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1;`)
	ctx := context.Background()
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(insight.UserID).
			WillReturnRows(pgxmock.NewRows(insightColumns).
				AddRow(insight.ID, insight.UserID, insight.RoundID, insight.Summary, insight.PrimaryIssue, insight.Reason, insight.PracticeFocus, insight.ManagementTip, insight.ProgressNote, insight.FeedbackRating, insight.CreatedAt),
			)
		result, err := repo.GetLatestByUserID(ctx, insight.UserID)
		assert.NoError(t, err)
		assert.Equal(t, insight, *result)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(insight.UserID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetLatestByUserID(ctx, insight.UserID)
		assert.ErrorIs(t, err, errorvalues.ErrInsightNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(insight.UserID).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetLatestByUserID(ctx, insight.UserID)
		assert.Error(t, err)
	})
}

func TestUpdateInsightFeedback(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewInsightsRepoWithConn(conn)
	iid := uuid.New()
	query := regexp.QuoteMeta(`UPDATE insights SET feedback_rating = $1 WHERE id = $2;`)
	ctx := context.Background()
	t.Run("updated", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(3, iid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.UpdateFeedback(ctx, iid, 3)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(3, iid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.UpdateFeedback(ctx, iid, 3)
		assert.ErrorIs(t, err, errorvalues.ErrInsightNotFound)
	})
}
