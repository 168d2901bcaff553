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

type CoursesRepository struct {
	conn PgConnection
}

func NewCoursesRepo(cfg DBConfig) *CoursesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for coursesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for coursesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing coursesRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &CoursesRepository{
		conn: pool,
	}
}

func NewCoursesRepoWithConn(conn PgConnection) *CoursesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for coursesRepo: " + err.Error())
	}
	return &CoursesRepository{
		conn: conn,
	}
}

func (cr *CoursesRepository) Create(ctx context.Context, course *entity.Course) (uuid.UUID, error) {
	if course == nil {
		return uuid.UUID{}, errors.New("course is nil")
	}
	var id uuid.UUID
	row := cr.conn.QueryRow(ctx, `INSERT INTO courses (name, club_name, location, par) VALUES ($1, $2, $3, $4) RETURNING id;`,
		course.Name,
		course.ClubName,
		course.Location,
		course.Par,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation: another caller created the same name first
			case "23505":
				return uuid.UUID{}, errorvalues.ErrCourseExists
			}
		}
		return uuid.UUID{}, errors.New("creating course db error: " + err.Error())
	}
	return id, nil
}

func (cr *CoursesRepository) FindByName(ctx context.Context, name string) (*entity.Course, error) {
	var course entity.Course
	row := cr.conn.QueryRow(ctx, `SELECT id, name, club_name, location, par, created_at FROM courses WHERE name = $1;`, name)
	if err := row.Scan(&course.ID, &course.Name, &course.ClubName, &course.Location, &course.Par, &course.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrCourseNotFound
		}
		return nil, errors.New("searching course by name error: " + err.Error())
	}
	return &course, nil
}

func (cr *CoursesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	var course entity.Course
	row := cr.conn.QueryRow(ctx, `SELECT id, name, club_name, location, par, created_at FROM courses WHERE id = $1;`, id)
	if err := row.Scan(&course.ID, &course.Name, &course.ClubName, &course.Location, &course.Par, &course.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrCourseNotFound
		}
		return nil, errors.New("searching course by id error: " + err.Error())
	}
	tees, err := cr.getTees(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Tees = tees
	return &course, nil
}

func (cr *CoursesRepository) getTees(ctx context.Context, courseID uuid.UUID) ([]entity.Tee, error) {
	rows, err := cr.conn.Query(ctx, `SELECT id, course_id, name, color, total_distance FROM course_tees WHERE course_id = $1;`, courseID)
	if err != nil {
		return nil, errors.New("getting course tees error: " + err.Error())
	}
	defer rows.Close()
	tees := make([]entity.Tee, 0)
	for rows.Next() {
		t := entity.Tee{}
		err = rows.Scan(&t.ID, &t.CourseID, &t.Name, &t.Color, &t.TotalDistance)
		if err != nil {
			return nil, errors.New("tee row parsing error: " + err.Error())
		}
		tees = append(tees, t)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected tee rows error: " + rows.Err().Error())
	}
	return tees, nil
}

func (cr *CoursesRepository) CreateTee(ctx context.Context, tee *entity.Tee) (uuid.UUID, error) {
	if tee == nil {
		return uuid.UUID{}, errors.New("tee is nil")
	}
	var id uuid.UUID
	row := cr.conn.QueryRow(ctx, `INSERT INTO course_tees (course_id, name, color, total_distance) VALUES ($1, $2, $3, $4) RETURNING id;`,
		tee.CourseID,
		tee.Name,
		tee.Color,
		tee.TotalDistance,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrCourseNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating tee db error: " + err.Error())
	}
	return id, nil
}
