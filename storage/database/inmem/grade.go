package inmemdb

import (
	"context"

	"github.com/trezcool/studysync/core/grade"
)

type gradeRepository struct {
	db *DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) query(keep func(g grade.Grade) bool) []grade.Grade {
	ids := sortedIDs(len(repo.db.grades), func(add func(int)) {
		for id := range repo.db.grades {
			add(id)
		}
	})
	grades := make([]grade.Grade, 0, len(ids))
	for _, id := range ids {
		if g := repo.db.grades[id]; keep(g) {
			grades = append(grades, g)
		}
	}
	return grades
}

func (repo *gradeRepository) QueryGrades(_ context.Context) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(grade.Grade) bool { return true }), nil
}

func (repo *gradeRepository) QueryGradesByCourse(_ context.Context, courseID int) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(g grade.Grade) bool { return g.CourseID == courseID }), nil
}

func (repo *gradeRepository) QueryGradesByAssignment(_ context.Context, assignmentID int) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(g grade.Grade) bool { return g.AssignmentID == assignmentID }), nil
}

func (repo *gradeRepository) GetGrade(_ context.Context, id int) (grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if g, ok := repo.db.grades[id]; ok {
		return g, nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) CreateGrade(_ context.Context, g grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq.grade++
	g.ID = repo.db.seq.grade
	repo.db.grades[g.ID] = g
	return g, nil
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, g grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.grades[g.ID]; !ok {
		return grade.Grade{}, grade.ErrNotFound
	}
	repo.db.grades[g.ID] = g
	return g, nil
}

func (repo *gradeRepository) DeleteGrade(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.grades[id]; !ok {
		return grade.ErrNotFound
	}
	delete(repo.db.grades, id)
	return nil
}

func (repo *gradeRepository) deleteWhere(match func(g grade.Grade) bool) int {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var n int
	for id, g := range repo.db.grades {
		if match(g) {
			delete(repo.db.grades, id)
			n++
		}
	}
	return n
}

func (repo *gradeRepository) DeleteGradesByAssignment(_ context.Context, assignmentID int) (int, error) {
	return repo.deleteWhere(func(g grade.Grade) bool { return g.AssignmentID == assignmentID }), nil
}

func (repo *gradeRepository) DeleteGradesByCourse(_ context.Context, courseID int) (int, error) {
	return repo.deleteWhere(func(g grade.Grade) bool { return g.CourseID == courseID }), nil
}
