package recordstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/grade"
	"github.com/trezcool/studysync/core/note"
)

// Course

type courseRepository struct {
	client *Client
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(client *Client) course.Repository {
	return &courseRepository{client: client}
}

func (repo *courseRepository) QueryCourses(ctx context.Context) ([]course.Course, error) {
	var recs []courseRecord
	if err := repo.client.fetch(ctx, courseTable, courseFields, &recs); err != nil {
		return nil, err
	}
	courses := make([]course.Course, 0, len(recs))
	for _, r := range recs {
		courses = append(courses, r.course())
	}
	return courses, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, id int) (course.Course, error) {
	var rec courseRecord
	if err := repo.client.get(ctx, courseTable, id, &rec, course.ErrNotFound); err != nil {
		return course.Course{}, err
	}
	return rec.course(), nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	c.ID = 0
	var rec courseRecord
	if err := repo.client.write(ctx, rest.Post, courseTable, toCourseRecord(c), &rec, nil); err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return rec.course(), nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	var rec courseRecord
	if err := repo.client.write(ctx, rest.Put, courseTable, toCourseRecord(c), &rec, course.ErrNotFound); err != nil {
		return course.Course{}, err
	}
	return rec.course(), nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id int) error {
	return repo.client.delete(ctx, courseTable, course.ErrNotFound, id)
}

// Assignment

type assignmentRepository struct {
	client *Client
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(client *Client) assignment.Repository {
	return &assignmentRepository{client: client}
}

func (repo *assignmentRepository) query(ctx context.Context, where ...condition) ([]assignment.Assignment, error) {
	var recs []assignmentRecord
	if err := repo.client.fetch(ctx, assignmentTable, assignmentFields, &recs, where...); err != nil {
		return nil, err
	}
	asgs := make([]assignment.Assignment, 0, len(recs))
	for _, r := range recs {
		asgs = append(asgs, r.assignment())
	}
	return asgs, nil
}

func (repo *assignmentRepository) QueryAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return repo.query(ctx)
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(ctx context.Context, courseID int) ([]assignment.Assignment, error) {
	return repo.query(ctx, courseIs(courseID))
}

func (repo *assignmentRepository) GetAssignment(ctx context.Context, id int) (assignment.Assignment, error) {
	var rec assignmentRecord
	if err := repo.client.get(ctx, assignmentTable, id, &rec, assignment.ErrNotFound); err != nil {
		return assignment.Assignment{}, err
	}
	return rec.assignment(), nil
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	a.ID = 0
	var rec assignmentRecord
	if err := repo.client.write(ctx, rest.Post, assignmentTable, toAssignmentRecord(a), &rec, nil); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "creating assignment")
	}
	return rec.assignment(), nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	var rec assignmentRecord
	if err := repo.client.write(ctx, rest.Put, assignmentTable, toAssignmentRecord(a), &rec, assignment.ErrNotFound); err != nil {
		return assignment.Assignment{}, err
	}
	return rec.assignment(), nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) error {
	return repo.client.delete(ctx, assignmentTable, assignment.ErrNotFound, id)
}

func (repo *assignmentRepository) DeleteAssignmentsByCourse(ctx context.Context, courseID int) (int, error) {
	asgs, err := repo.query(ctx, courseIs(courseID))
	if err != nil {
		return 0, err
	}
	ids := make([]int, len(asgs))
	for i, a := range asgs {
		ids[i] = a.ID
	}
	if err = repo.client.delete(ctx, assignmentTable, nil, ids...); err != nil {
		return 0, errors.Wrap(err, "deleting course assignments")
	}
	return len(ids), nil
}

// Grade

type gradeRepository struct {
	client *Client
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(client *Client) grade.Repository {
	return &gradeRepository{client: client}
}

func (repo *gradeRepository) query(ctx context.Context, where ...condition) ([]grade.Grade, error) {
	var recs []gradeRecord
	if err := repo.client.fetch(ctx, gradeTable, gradeFields, &recs, where...); err != nil {
		return nil, err
	}
	grades := make([]grade.Grade, 0, len(recs))
	for _, r := range recs {
		grades = append(grades, r.grade())
	}
	return grades, nil
}

func (repo *gradeRepository) QueryGrades(ctx context.Context) ([]grade.Grade, error) {
	return repo.query(ctx)
}

func (repo *gradeRepository) QueryGradesByCourse(ctx context.Context, courseID int) ([]grade.Grade, error) {
	return repo.query(ctx, courseIs(courseID))
}

func (repo *gradeRepository) QueryGradesByAssignment(ctx context.Context, assignmentID int) ([]grade.Grade, error) {
	return repo.query(ctx, assignmentIs(assignmentID))
}

func (repo *gradeRepository) GetGrade(ctx context.Context, id int) (grade.Grade, error) {
	var rec gradeRecord
	if err := repo.client.get(ctx, gradeTable, id, &rec, grade.ErrNotFound); err != nil {
		return grade.Grade{}, err
	}
	return rec.grade(), nil
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	g.ID = 0
	var rec gradeRecord
	if err := repo.client.write(ctx, rest.Post, gradeTable, toGradeRecord(g), &rec, nil); err != nil {
		return grade.Grade{}, errors.Wrap(err, "creating grade")
	}
	return rec.grade(), nil
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	var rec gradeRecord
	if err := repo.client.write(ctx, rest.Put, gradeTable, toGradeRecord(g), &rec, grade.ErrNotFound); err != nil {
		return grade.Grade{}, err
	}
	return rec.grade(), nil
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, id int) error {
	return repo.client.delete(ctx, gradeTable, grade.ErrNotFound, id)
}

func (repo *gradeRepository) deleteWhere(ctx context.Context, where condition) (int, error) {
	grades, err := repo.query(ctx, where)
	if err != nil {
		return 0, err
	}
	ids := make([]int, len(grades))
	for i, g := range grades {
		ids[i] = g.ID
	}
	if err = repo.client.delete(ctx, gradeTable, nil, ids...); err != nil {
		return 0, errors.Wrap(err, "deleting grades")
	}
	return len(ids), nil
}

func (repo *gradeRepository) DeleteGradesByAssignment(ctx context.Context, assignmentID int) (int, error) {
	return repo.deleteWhere(ctx, assignmentIs(assignmentID))
}

func (repo *gradeRepository) DeleteGradesByCourse(ctx context.Context, courseID int) (int, error) {
	return repo.deleteWhere(ctx, courseIs(courseID))
}

// Note

type noteRepository struct {
	client *Client
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(client *Client) note.Repository {
	return &noteRepository{client: client}
}

func (repo *noteRepository) query(ctx context.Context, where ...condition) ([]note.Note, error) {
	var recs []noteRecord
	if err := repo.client.fetch(ctx, noteTable, noteFields, &recs, where...); err != nil {
		return nil, err
	}
	notes := make([]note.Note, 0, len(recs))
	for _, r := range recs {
		notes = append(notes, r.note())
	}
	return notes, nil
}

func (repo *noteRepository) QueryNotes(ctx context.Context) ([]note.Note, error) {
	return repo.query(ctx)
}

func (repo *noteRepository) QueryNotesByCourse(ctx context.Context, courseID int) ([]note.Note, error) {
	return repo.query(ctx, courseIs(courseID))
}

func (repo *noteRepository) GetNote(ctx context.Context, id int) (note.Note, error) {
	var rec noteRecord
	if err := repo.client.get(ctx, noteTable, id, &rec, note.ErrNotFound); err != nil {
		return note.Note{}, err
	}
	return rec.note(), nil
}

func (repo *noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	n.ID = 0
	var rec noteRecord
	if err := repo.client.write(ctx, rest.Post, noteTable, toNoteRecord(n), &rec, nil); err != nil {
		return note.Note{}, errors.Wrap(err, "creating note")
	}
	return rec.note(), nil
}

func (repo *noteRepository) UpdateNote(ctx context.Context, n note.Note) (note.Note, error) {
	var rec noteRecord
	if err := repo.client.write(ctx, rest.Put, noteTable, toNoteRecord(n), &rec, note.ErrNotFound); err != nil {
		return note.Note{}, err
	}
	return rec.note(), nil
}

func (repo *noteRepository) DeleteNote(ctx context.Context, id int) error {
	return repo.client.delete(ctx, noteTable, note.ErrNotFound, id)
}

func (repo *noteRepository) DeleteNotesByCourse(ctx context.Context, courseID int) (int, error) {
	notes, err := repo.query(ctx, courseIs(courseID))
	if err != nil {
		return 0, err
	}
	ids := make([]int, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	if err = repo.client.delete(ctx, noteTable, nil, ids...); err != nil {
		return 0, errors.Wrap(err, "deleting course notes")
	}
	return len(ids), nil
}
