package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/grade"
	"github.com/trezcool/studysync/core/note"
	"github.com/trezcool/studysync/storage/fixtures"
)

func seeded(t *testing.T) *DB {
	data, err := fixtures.Default()
	require.NoError(t, err)
	return Open(data)
}

func TestOpen(t *testing.T) {
	db := Open()
	courses, err := NewCourseRepository(db).QueryCourses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	db = seeded(t)
	assert.Equal(t, counters{course: 4, assignment: 6, grade: 3, note: 2}, db.seq)
}

func TestCourseRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository(seeded(t))

	crs, err := repo.CreateCourse(ctx, course.Course{Name: "Statistics", Credits: 3, Schedule: course.Schedule{Days: []string{"Friday"}}})
	require.NoError(t, err)
	assert.Equal(t, 5, crs.ID)

	// returned values never alias the store
	crs.Schedule.Days[0] = "Sunday"
	got, err := repo.GetCourse(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Friday"}, got.Schedule.Days)

	pct := 90.0
	got.CurrentGrade = &pct
	_, err = repo.UpdateCourse(ctx, got)
	require.NoError(t, err)
	pct = 10
	got, err = repo.GetCourse(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 90.0, *got.CurrentGrade)

	courses, err := repo.QueryCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 5)
	for i, c := range courses {
		assert.Equal(t, i+1, c.ID)
	}

	require.NoError(t, repo.DeleteCourse(ctx, 5))
	_, err = repo.GetCourse(ctx, 5)
	assert.Equal(t, course.ErrNotFound, err)
	assert.Equal(t, course.ErrNotFound, repo.DeleteCourse(ctx, 5))
	_, err = repo.UpdateCourse(ctx, course.Course{ID: 5})
	assert.Equal(t, course.ErrNotFound, err)

	// ids are never reused
	crs, err = repo.CreateCourse(ctx, course.Course{Name: "Again"})
	require.NoError(t, err)
	assert.Equal(t, 6, crs.ID)
}

func TestAssignmentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAssignmentRepository(seeded(t))

	byCourse, err := repo.QueryAssignmentsByCourse(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byCourse, 2)
	assert.Equal(t, []int{3, 4}, []int{byCourse[0].ID, byCourse[1].ID})

	empty, err := repo.QueryAssignmentsByCourse(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a, err := repo.CreateAssignment(ctx, assignment.Assignment{CourseID: 2, Title: "Quiz", DueDate: core.NewDate(2024, time.April, 1)})
	require.NoError(t, err)
	assert.Equal(t, 7, a.ID)

	n, err := repo.DeleteAssignmentsByCourse(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = repo.DeleteAssignmentsByCourse(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	all, err := repo.QueryAssignments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = repo.GetAssignment(ctx, 3)
	assert.Equal(t, assignment.ErrNotFound, err)
	assert.Equal(t, assignment.ErrNotFound, repo.DeleteAssignment(ctx, 3))
}

func TestGradeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGradeRepository(seeded(t))

	g, err := repo.CreateGrade(ctx, grade.Grade{AssignmentID: 2, CourseID: 1, Points: 40, MaxPoints: 50, Weight: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, g.ID)

	byCourse, err := repo.QueryGradesByCourse(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byCourse, 2)

	g.Points = 50
	_, err = repo.UpdateGrade(ctx, g)
	require.NoError(t, err)
	byAsg, err := repo.QueryGradesByAssignment(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byAsg, 1)
	assert.Equal(t, 50.0, byAsg[0].Points)

	require.NoError(t, repo.DeleteGrade(ctx, 4))
	_, err = repo.GetGrade(ctx, 4)
	assert.Equal(t, grade.ErrNotFound, err)
	_, err = repo.UpdateGrade(ctx, g)
	assert.Equal(t, grade.ErrNotFound, err)

	deleted, err := repo.DeleteGradesByAssignment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	deleted, err = repo.DeleteGradesByCourse(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	deleted, err = repo.DeleteGradesByCourse(ctx, 4)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	left, err := repo.QueryGrades(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, 2, left[0].ID)
}

func TestNoteRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(seeded(t))

	n, err := repo.CreateNote(ctx, note.Note{CourseID: 2, Title: "Titration"})
	require.NoError(t, err)
	assert.Equal(t, 3, n.ID)

	byCourse, err := repo.QueryNotesByCourse(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, byCourse, 2)

	deleted, err := repo.DeleteNotesByCourse(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	all, err := repo.QueryNotes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].ID)

	assert.Equal(t, note.ErrNotFound, repo.DeleteNote(ctx, 3))
	_, err = repo.UpdateNote(ctx, n)
	assert.Equal(t, note.ErrNotFound, err)
}
