package inmemdb

import (
	"context"

	"github.com/trezcool/studysync/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) QueryCourses(_ context.Context) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ids := sortedIDs(len(repo.db.courses), func(add func(int)) {
		for id := range repo.db.courses {
			add(id)
		}
	})
	courses := make([]course.Course, 0, len(ids))
	for _, id := range ids {
		courses = append(courses, cloneCourse(repo.db.courses[id]))
	}
	return courses, nil
}

func (repo *courseRepository) GetCourse(_ context.Context, id int) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.courses[id]; ok {
		return cloneCourse(c), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) CreateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq.course++
	c.ID = repo.db.seq.course
	repo.db.courses[c.ID] = cloneCourse(c)
	return cloneCourse(c), nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[c.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	repo.db.courses[c.ID] = cloneCourse(c)
	return cloneCourse(c), nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return course.ErrNotFound
	}
	delete(repo.db.courses, id)
	return nil
}
