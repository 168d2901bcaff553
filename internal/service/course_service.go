package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/tmworl/golftracker/internal/error_values"
	"github.com/tmworl/golftracker/internal/repository"
	"github.com/tmworl/golftracker/pkg/entity"
	"github.com/tmworl/golftracker/pkg/scoring"
)

type CourseService struct {
	repo repository.CoursesRepositoryI
}

func NewCourseService(coursesRepo repository.CoursesRepositoryI) *CourseService {
	if coursesRepo == nil {
		log.Fatal("provided nil coursesRepo")
	}
	return &CourseService{
		repo: coursesRepo,
	}
}

// NormalizeCourseName is the canonical lookup key: courses are stored and
// matched under the trimmed, lower-cased name.
func NormalizeCourseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve finds the course with the given name or creates it on first
// reference. A not-found lookup result is the create signal, not an error.
// If the insert loses a concurrent first-use race (unique violation on the
// name), the lookup is re-run so both callers converge on one row.
func (cs *CourseService) Resolve(ctx context.Context, req *ResolveCourseRequest) (*entity.Course, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	name := NormalizeCourseName(req.Name)
	course, err := cs.repo.FindByName(ctx, name)
	if err == nil {
		return course, nil
	}
	if !errors.Is(err, errorvalues.ErrCourseNotFound) {
		return nil, errors.New("courses repository error: " + err.Error())
	}
	par := req.Par
	if par <= 0 {
		par = scoring.DefaultPar
	}
	id, err := cs.repo.Create(ctx, &entity.Course{
		Name:     name,
		ClubName: req.ClubName,
		Location: req.Location,
		Par:      par,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrCourseExists) {
			course, err = cs.repo.FindByName(ctx, name)
			if err != nil {
				return nil, errors.New("courses repository error: " + err.Error())
			}
			return course, nil
		}
		return nil, errors.New("courses repository error: " + err.Error())
	}
	course, err = cs.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("courses repository error: " + err.Error())
	}
	return course, nil
}

func (cs *CourseService) GetCourse(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	course, err := cs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCourseNotFound) {
			return nil, err
		}
		return nil, errors.New("courses repository error: " + err.Error())
	}
	return course, nil
}
