package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/grade"
)

const gradeColumns = "id, assignment_id, course_id, points, max_points, weight, date"

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) selectMany(ctx context.Context, where string, args ...interface{}) ([]grade.Grade, error) {
	grades := make([]grade.Grade, 0)
	q := "SELECT " + gradeColumns + " FROM grade " + where + " ORDER BY " + byID.String()
	if err := repo.db.SelectContext(ctx, &grades, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting grades")
	}
	return grades, nil
}

func (repo *gradeRepository) QueryGrades(ctx context.Context) ([]grade.Grade, error) {
	return repo.selectMany(ctx, "")
}

func (repo *gradeRepository) QueryGradesByCourse(ctx context.Context, courseID int) ([]grade.Grade, error) {
	return repo.selectMany(ctx, "WHERE course_id = $1", courseID)
}

func (repo *gradeRepository) QueryGradesByAssignment(ctx context.Context, assignmentID int) ([]grade.Grade, error) {
	return repo.selectMany(ctx, "WHERE assignment_id = $1", assignmentID)
}

func (repo *gradeRepository) GetGrade(ctx context.Context, id int) (grade.Grade, error) {
	var g grade.Grade
	q := "SELECT " + gradeColumns + " FROM grade WHERE id = $1"
	if err := repo.db.GetContext(ctx, &g, q, id); err != nil {
		return grade.Grade{}, notFoundOr(err, grade.ErrNotFound, "selecting grade")
	}
	return g, nil
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	q := `INSERT INTO grade (assignment_id, course_id, points, max_points, weight, date)
		VALUES (:assignment_id, :course_id, :points, :max_points, :weight, :date)
		RETURNING ` + gradeColumns
	g, err := namedGet[grade.Grade](ctx, repo.db, q, g)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return g, nil
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	q := `UPDATE grade SET assignment_id = :assignment_id, course_id = :course_id, points = :points,
		max_points = :max_points, weight = :weight, date = :date
		WHERE id = :id RETURNING ` + gradeColumns
	g, err := namedGet[grade.Grade](ctx, repo.db, q, g)
	if err != nil {
		return grade.Grade{}, notFoundOr(err, grade.ErrNotFound, "updating grade")
	}
	return g, nil
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, id int) error {
	return deleteOne(ctx, repo.db, "DELETE FROM grade WHERE id = $1", id, grade.ErrNotFound)
}

func (repo *gradeRepository) DeleteGradesByAssignment(ctx context.Context, assignmentID int) (int, error) {
	return deleteMany(ctx, repo.db, "DELETE FROM grade WHERE assignment_id = $1", assignmentID)
}

func (repo *gradeRepository) DeleteGradesByCourse(ctx context.Context, courseID int) (int, error) {
	return deleteMany(ctx, repo.db, "DELETE FROM grade WHERE course_id = $1", courseID)
}
