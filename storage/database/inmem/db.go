package inmemdb

import (
	"sort"
	"sync"

	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/grade"
	"github.com/trezcool/studysync/core/note"
	"github.com/trezcool/studysync/storage/fixtures"
)

type (
	// DB is a process-local store. Every repository built on the same DB shares its lock and id counters.
	DB struct {
		mutex       sync.RWMutex
		courses     map[int]course.Course
		assignments map[int]assignment.Assignment
		grades      map[int]grade.Grade
		notes       map[int]note.Note
		seq         counters
	}

	counters struct {
		course, assignment, grade, note int
	}
)

// Open returns an empty store, or one holding a copy of the given data sets.
// Seeded ids are kept as is; new records are numbered after the highest one.
func Open(seed ...fixtures.Data) *DB {
	db := &DB{
		courses:     make(map[int]course.Course),
		assignments: make(map[int]assignment.Assignment),
		grades:      make(map[int]grade.Grade),
		notes:       make(map[int]note.Note),
	}
	for _, data := range seed {
		for _, c := range data.Courses {
			db.courses[c.ID] = cloneCourse(c)
			db.seq.course = maxInt(db.seq.course, c.ID)
		}
		for _, a := range data.Assignments {
			db.assignments[a.ID] = cloneAssignment(a)
			db.seq.assignment = maxInt(db.seq.assignment, a.ID)
		}
		for _, g := range data.Grades {
			db.grades[g.ID] = g
			db.seq.grade = maxInt(db.seq.grade, g.ID)
		}
		for _, n := range data.Notes {
			db.notes[n.ID] = n
			db.seq.note = maxInt(db.seq.note, n.ID)
		}
	}
	return db
}

func sortedIDs(n int, each func(add func(id int))) []int {
	ids := make([]int, 0, n)
	each(func(id int) { ids = append(ids, id) })
	sort.Ints(ids)
	return ids
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneCourse(c course.Course) course.Course {
	c.CurrentGrade = copyFloat(c.CurrentGrade)
	c.Schedule.Days = append(make([]string, 0, len(c.Schedule.Days)), c.Schedule.Days...)
	return c
}

func cloneAssignment(a assignment.Assignment) assignment.Assignment {
	a.MaxPoints = copyFloat(a.MaxPoints)
	a.Grade = copyFloat(a.Grade)
	return a
}
