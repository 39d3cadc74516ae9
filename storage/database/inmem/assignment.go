package inmemdb

import (
	"context"

	"github.com/trezcool/studysync/core/assignment"
)

type assignmentRepository struct {
	db *DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) query(keep func(a assignment.Assignment) bool) []assignment.Assignment {
	ids := sortedIDs(len(repo.db.assignments), func(add func(int)) {
		for id := range repo.db.assignments {
			add(id)
		}
	})
	asgs := make([]assignment.Assignment, 0, len(ids))
	for _, id := range ids {
		if a := repo.db.assignments[id]; keep(a) {
			asgs = append(asgs, cloneAssignment(a))
		}
	}
	return asgs
}

func (repo *assignmentRepository) QueryAssignments(_ context.Context) ([]assignment.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(assignment.Assignment) bool { return true }), nil
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(_ context.Context, courseID int) ([]assignment.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(a assignment.Assignment) bool { return a.CourseID == courseID }), nil
}

func (repo *assignmentRepository) GetAssignment(_ context.Context, id int) (assignment.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.assignments[id]; ok {
		return cloneAssignment(a), nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq.assignment++
	a.ID = repo.db.seq.assignment
	repo.db.assignments[a.ID] = cloneAssignment(a)
	return cloneAssignment(a), nil
}

func (repo *assignmentRepository) UpdateAssignment(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.assignments[a.ID]; !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	repo.db.assignments[a.ID] = cloneAssignment(a)
	return cloneAssignment(a), nil
}

func (repo *assignmentRepository) DeleteAssignment(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.assignments[id]; !ok {
		return assignment.ErrNotFound
	}
	delete(repo.db.assignments, id)
	return nil
}

func (repo *assignmentRepository) DeleteAssignmentsByCourse(_ context.Context, courseID int) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var n int
	for id, a := range repo.db.assignments {
		if a.CourseID == courseID {
			delete(repo.db.assignments, id)
			n++
		}
	}
	return n, nil
}
