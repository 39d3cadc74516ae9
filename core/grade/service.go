package grade

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound = core.NewNotFoundError("grade")
)

type (
	Repository interface {
		QueryGrades(ctx context.Context) ([]Grade, error)
		QueryGradesByCourse(ctx context.Context, courseID int) ([]Grade, error)
		QueryGradesByAssignment(ctx context.Context, assignmentID int) ([]Grade, error)
		GetGrade(ctx context.Context, id int) (Grade, error)
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		UpdateGrade(ctx context.Context, g Grade) (Grade, error)
		DeleteGrade(ctx context.Context, id int) error
		DeleteGradesByAssignment(ctx context.Context, assignmentID int) (int, error)
		DeleteGradesByCourse(ctx context.Context, courseID int) (int, error)
	}

	// Cascade removes ledger entries along with the assignment or course they point to.
	// It is registered as a dependent of both the assignment and the course services.
	Cascade struct {
		repo Repository
	}

	// Service manages the grade ledger and keeps assignments grades & course percentages in sync with it.
	Service struct {
		repo      Repository
		asgSvc    *assignment.Service
		courseSvc *course.Service
	}
)

func NewService(repo Repository, asgSvc *assignment.Service, courseSvc *course.Service) *Service {
	return &Service{repo: repo, asgSvc: asgSvc, courseSvc: courseSvc}
}

func NewCascade(repo Repository) Cascade {
	return Cascade{repo: repo}
}

func (c Cascade) DeleteByAssignment(ctx context.Context, assignmentID int) (int, error) {
	return c.repo.DeleteGradesByAssignment(ctx, assignmentID)
}

func (c Cascade) DeleteByCourse(ctx context.Context, courseID int) (int, error) {
	return c.repo.DeleteGradesByCourse(ctx, courseID)
}

func (svc *Service) Query(ctx context.Context) ([]Grade, error) {
	return svc.repo.QueryGrades(ctx)
}

func (svc *Service) QueryByCourse(ctx context.Context, courseID int) ([]Grade, error) {
	return svc.repo.QueryGradesByCourse(ctx, courseID)
}

func (svc *Service) QueryByAssignment(ctx context.Context, assignmentID int) ([]Grade, error) {
	return svc.repo.QueryGradesByAssignment(ctx, assignmentID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Grade, error) {
	return svc.repo.GetGrade(ctx, id)
}

// Record adds a ledger entry for an assignment, marks the assignment graded & completed and
// recomputes its course percentage.
func (svc *Service) Record(ctx context.Context, ng NewGrade) (Grade, error) {
	if ng.Points == nil || ng.MaxPoints == nil {
		return Grade{}, core.NewValidationError(
			errors.New("missing points"),
			core.FieldError{Field: "points", Error: "this field is required"},
			core.FieldError{Field: "max_points", Error: "this field is required"},
		)
	}

	asg, err := svc.asgSvc.GetByID(ctx, ng.AssignmentID)
	if err != nil {
		if core.IsNotFound(err) {
			return Grade{}, core.NewValidationError(err, core.FieldError{Field: "assignment_id", Error: "invalid value"})
		}
		return Grade{}, errors.Wrap(err, "finding assignment")
	}

	g := Grade{
		AssignmentID: asg.ID,
		CourseID:     asg.CourseID,
		Points:       *ng.Points,
		MaxPoints:    *ng.MaxPoints,
		Weight:       ng.Weight,
		Date:         ng.Date,
	}
	if g.Weight <= 0 {
		g.Weight = DefaultWeight
	}
	if g.Date.IsZero() {
		g.Date = core.DateOf(NowFunc())
	}

	g, err = svc.repo.CreateGrade(ctx, g)
	if err != nil {
		return Grade{}, errors.Wrap(err, "creating grade")
	}
	if err = svc.syncAssignment(ctx, g); err != nil {
		return Grade{}, err
	}
	return g, nil
}

// Update modifies a ledger entry and propagates points to its assignment.
func (svc *Service) Update(ctx context.Context, id int, ug UpdateGrade) (Grade, error) {
	g, err := svc.repo.GetGrade(ctx, id)
	if err != nil {
		return Grade{}, err
	}
	g, err = svc.repo.UpdateGrade(ctx, ug.apply(g))
	if err != nil {
		return Grade{}, errors.Wrap(err, "updating grade")
	}
	if err = svc.syncAssignment(ctx, g); err != nil {
		return Grade{}, err
	}
	return g, nil
}

// Delete removes the ledger entry only; the assignment keeps its grade.
func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteGrade(ctx, id)
}

func (svc *Service) syncAssignment(ctx context.Context, g Grade) error {
	maxPoints := g.MaxPoints
	if _, err := svc.asgSvc.SetGrade(ctx, g.AssignmentID, g.Points, &maxPoints); err != nil {
		return errors.Wrap(err, "grading assignment")
	}
	if _, err := svc.RefreshCourseGrade(ctx, g.CourseID); err != nil {
		return errors.Wrap(err, "refreshing course grade")
	}
	return nil
}

// RefreshCourseGrade recomputes a course percentage from a fresh read of its assignments and persists it.
// A course without graded work gets no grade.
func (svc *Service) RefreshCourseGrade(ctx context.Context, courseID int) (course.Course, error) {
	asgs, err := svc.asgSvc.QueryByCourse(ctx, courseID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "querying course assignments")
	}
	return svc.courseSvc.SetCurrentGrade(ctx, courseID, CourseGrade(asgs))
}

// Summary loads courses and assignments concurrently and computes the GPA view.
func (svc *Service) Summary(ctx context.Context) (Summary, error) {
	var courses []course.Course
	var asgs []assignment.Assignment

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		courses, err = svc.courseSvc.Query(gctx)
		return errors.Wrap(err, "querying courses")
	})
	g.Go(func() (err error) {
		asgs, err = svc.asgSvc.Query(gctx)
		return errors.Wrap(err, "querying assignments")
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return Summarize(courses, asgs), nil
}
