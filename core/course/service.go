package course

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("course")
)

type (
	Repository interface {
		QueryCourses(ctx context.Context) ([]Course, error)
		GetCourse(ctx context.Context, id int) (Course, error)
		CreateCourse(ctx context.Context, c Course) (Course, error)
		UpdateCourse(ctx context.Context, c Course) (Course, error)
		DeleteCourse(ctx context.Context, id int) error
	}

	// Dependent is a store of records owning a course foreign key, removed along with the course.
	Dependent interface {
		DeleteByCourse(ctx context.Context, courseID int) (int, error)
	}

	Service struct {
		repo       Repository
		dependents []Dependent
	}
)

func NewService(repo Repository, dependents ...Dependent) *Service {
	return &Service{repo: repo, dependents: dependents}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	c := Course{
		Name:       nc.Name,
		Instructor: nc.Instructor,
		Credits:    nc.Credits,
		Color:      nc.Color,
		Schedule:   nc.Schedule.clean(),
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
	return svc.repo.CreateCourse(ctx, c)
}

func (svc *Service) Query(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryCourses(ctx)
}

// Search returns the courses whose name or instructor contains term (case-insensitive).
func (svc *Service) Search(ctx context.Context, term string) ([]Course, error) {
	courses, err := svc.repo.QueryCourses(ctx)
	if err != nil {
		return nil, err
	}
	return Search(courses, term), nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourse(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	c, err := svc.repo.GetCourse(ctx, id)
	if err != nil {
		return Course{}, err
	}
	return svc.repo.UpdateCourse(ctx, uc.apply(c))
}

// SetCurrentGrade persists a recomputed course percentage; nil clears it.
func (svc *Service) SetCurrentGrade(ctx context.Context, id int, pct *float64) (Course, error) {
	c, err := svc.repo.GetCourse(ctx, id)
	if err != nil {
		return Course{}, err
	}
	c.CurrentGrade = pct
	return svc.repo.UpdateCourse(ctx, c)
}

// Delete removes the course and every dependent record (assignments, notes..) pointing to it.
func (svc *Service) Delete(ctx context.Context, id int) error {
	if _, err := svc.repo.GetCourse(ctx, id); err != nil {
		return err
	}
	for _, dep := range svc.dependents {
		if _, err := dep.DeleteByCourse(ctx, id); err != nil {
			return errors.Wrap(err, "deleting course dependents")
		}
	}
	return svc.repo.DeleteCourse(ctx, id)
}
