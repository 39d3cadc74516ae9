package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
)

const assignmentColumns = "id, course_id, title, description, due_date, priority, completed, max_points, grade"

type assignmentRow struct {
	ID          int          `db:"id"`
	CourseID    int          `db:"course_id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	DueDate     core.Date    `db:"due_date"`
	Priority    string       `db:"priority"`
	Completed   bool         `db:"completed"`
	MaxPoints   null.Float64 `db:"max_points"`
	Grade       null.Float64 `db:"grade"`
}

func toAssignmentRow(a assignment.Assignment) assignmentRow {
	return assignmentRow{
		ID:          a.ID,
		CourseID:    a.CourseID,
		Title:       a.Title,
		Description: a.Description,
		DueDate:     a.DueDate,
		Priority:    string(a.Priority),
		Completed:   a.Completed,
		MaxPoints:   null.Float64FromPtr(a.MaxPoints),
		Grade:       null.Float64FromPtr(a.Grade),
	}
}

func (row assignmentRow) assignment() assignment.Assignment {
	return assignment.Assignment{
		ID:          row.ID,
		CourseID:    row.CourseID,
		Title:       row.Title,
		Description: row.Description,
		DueDate:     row.DueDate,
		Priority:    assignment.Priority(row.Priority),
		Completed:   row.Completed,
		MaxPoints:   row.MaxPoints.Ptr(),
		Grade:       row.Grade.Ptr(),
	}
}

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) selectMany(ctx context.Context, where string, args ...interface{}) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	q := "SELECT " + assignmentColumns + " FROM assignment " + where + " ORDER BY " + byID.String()
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting assignments")
	}
	asgs := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		asgs = append(asgs, row.assignment())
	}
	return asgs, nil
}

func (repo *assignmentRepository) QueryAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return repo.selectMany(ctx, "")
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(ctx context.Context, courseID int) ([]assignment.Assignment, error) {
	return repo.selectMany(ctx, "WHERE course_id = $1", courseID)
}

func (repo *assignmentRepository) GetAssignment(ctx context.Context, id int) (assignment.Assignment, error) {
	var row assignmentRow
	q := "SELECT " + assignmentColumns + " FROM assignment WHERE id = $1"
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return assignment.Assignment{}, notFoundOr(err, assignment.ErrNotFound, "selecting assignment")
	}
	return row.assignment(), nil
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	q := `INSERT INTO assignment (course_id, title, description, due_date, priority, completed, max_points, grade)
		VALUES (:course_id, :title, :description, :due_date, :priority, :completed, :max_points, :grade)
		RETURNING ` + assignmentColumns
	row, err := namedGet[assignmentRow](ctx, repo.db, q, toAssignmentRow(a))
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return row.assignment(), nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	q := `UPDATE assignment SET course_id = :course_id, title = :title, description = :description,
		due_date = :due_date, priority = :priority, completed = :completed, max_points = :max_points, grade = :grade
		WHERE id = :id RETURNING ` + assignmentColumns
	row, err := namedGet[assignmentRow](ctx, repo.db, q, toAssignmentRow(a))
	if err != nil {
		return assignment.Assignment{}, notFoundOr(err, assignment.ErrNotFound, "updating assignment")
	}
	return row.assignment(), nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) error {
	return deleteOne(ctx, repo.db, "DELETE FROM assignment WHERE id = $1", id, assignment.ErrNotFound)
}

func (repo *assignmentRepository) DeleteAssignmentsByCourse(ctx context.Context, courseID int) (int, error) {
	return deleteMany(ctx, repo.db, "DELETE FROM assignment WHERE course_id = $1", courseID)
}
