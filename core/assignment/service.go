package assignment

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("assignment")
)

type (
	Repository interface {
		QueryAssignments(ctx context.Context) ([]Assignment, error)
		QueryAssignmentsByCourse(ctx context.Context, courseID int) ([]Assignment, error)
		GetAssignment(ctx context.Context, id int) (Assignment, error)
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		UpdateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		DeleteAssignment(ctx context.Context, id int) error
		DeleteAssignmentsByCourse(ctx context.Context, courseID int) (int, error)
	}

	// Dependent is a store of records owning an assignment foreign key, removed along with the assignment.
	Dependent interface {
		DeleteByAssignment(ctx context.Context, assignmentID int) (int, error)
	}

	Service struct {
		repo       Repository
		dependents []Dependent
	}
)

func NewService(repo Repository, dependents ...Dependent) *Service {
	return &Service{repo: repo, dependents: dependents}
}

// Create stores a new pending, ungraded Assignment.
func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	a := Assignment{
		CourseID:    na.CourseID,
		Title:       na.Title,
		Description: na.Description,
		DueDate:     na.DueDate,
		Priority:    na.Priority,
		Completed:   false,
		MaxPoints:   na.MaxPoints,
		Grade:       nil,
	}
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	return svc.repo.CreateAssignment(ctx, a)
}

func (svc *Service) Query(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAssignments(ctx)
}

func (svc *Service) QueryByCourse(ctx context.Context, courseID int) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByCourse(ctx, courseID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetAssignment(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error) {
	a, err := svc.repo.GetAssignment(ctx, id)
	if err != nil {
		return Assignment{}, err
	}
	return svc.repo.UpdateAssignment(ctx, ua.apply(a))
}

// SetGrade records earned points (and optionally the max points), marking the assignment completed.
func (svc *Service) SetGrade(ctx context.Context, id int, points float64, maxPoints *float64) (Assignment, error) {
	return svc.Update(ctx, id, UpdateAssignment{Grade: &points, MaxPoints: maxPoints})
}

// ToggleComplete flips the completed flag; the grade is left as is.
func (svc *Service) ToggleComplete(ctx context.Context, id int) (Assignment, error) {
	a, err := svc.repo.GetAssignment(ctx, id)
	if err != nil {
		return Assignment{}, err
	}
	a.Completed = !a.Completed
	return svc.repo.UpdateAssignment(ctx, a)
}

// Delete removes the assignment along with its dependent records.
func (svc *Service) Delete(ctx context.Context, id int) error {
	if _, err := svc.repo.GetAssignment(ctx, id); err != nil {
		return err
	}
	if err := svc.deleteDependents(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteAssignment(ctx, id)
}

// DeleteByCourse lets the course service cascade deletions.
func (svc *Service) DeleteByCourse(ctx context.Context, courseID int) (int, error) {
	if len(svc.dependents) > 0 {
		asgs, err := svc.repo.QueryAssignmentsByCourse(ctx, courseID)
		if err != nil {
			return 0, errors.Wrap(err, "querying course assignments")
		}
		for _, a := range asgs {
			if err = svc.deleteDependents(ctx, a.ID); err != nil {
				return 0, err
			}
		}
	}
	return svc.repo.DeleteAssignmentsByCourse(ctx, courseID)
}

func (svc *Service) deleteDependents(ctx context.Context, id int) error {
	for _, dep := range svc.dependents {
		if _, err := dep.DeleteByAssignment(ctx, id); err != nil {
			return errors.Wrap(err, "deleting assignment dependents")
		}
	}
	return nil
}
