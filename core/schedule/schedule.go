// Package schedule lays courses and assignments out over Monday-aligned weeks.
package schedule

import (
	"time"

	"github.com/jinzhu/now"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
)

const rangeLayout = "Jan 02"

type (
	Day struct {
		Date        core.Date               `json:"date"`
		Name        string                  `json:"name"`
		Courses     []course.Course         `json:"courses"`
		Assignments []assignment.Assignment `json:"assignments"`
	}

	Week struct {
		Start core.Date `json:"start"`
		Days  [7]Day    `json:"days"`
	}
)

// WeekStart returns the Monday of the week containing t.
func WeekStart(t time.Time) core.Date {
	cfg := &now.Config{WeekStartDay: time.Monday, TimeLocation: t.Location()}
	return core.DateOf(cfg.With(t).BeginningOfWeek())
}

// Current is the week start of now.
func Current(t time.Time) core.Date {
	return WeekStart(t)
}

// Shift moves a week start by n weeks, backwards when n is negative.
func Shift(weekStart core.Date, n int) core.Date {
	return weekStart.AddDays(7 * n)
}

// Resolve buckets courses by meeting day and assignments by due date over the seven days of the week.
// weekStart is expected to be a Monday.
func Resolve(weekStart core.Date, courses []course.Course, asgs []assignment.Assignment) Week {
	w := Week{Start: weekStart}
	for i := range w.Days {
		date := weekStart.AddDays(i)
		day := Day{
			Date:        date,
			Name:        date.Weekday().String(),
			Courses:     []course.Course{},
			Assignments: []assignment.Assignment{},
		}
		for _, c := range courses {
			if c.Schedule.HasDay(day.Name) {
				day.Courses = append(day.Courses, c)
			}
		}
		for _, a := range asgs {
			if a.DueDate == date {
				day.Assignments = append(day.Assignments, a)
			}
		}
		w.Days[i] = day
	}
	return w
}

// End is the Sunday closing the week.
func (w Week) End() core.Date {
	return w.Start.AddDays(6)
}

// Range renders the week bounds, e.g. "Jan 01 - Jan 07, 2024".
func (w Week) Range() string {
	end := w.End()
	return w.Start.Format(rangeLayout) + " - " + end.Format(rangeLayout) + ", " + end.Format("2006")
}

// TodayClasses returns the courses meeting on t's weekday.
func TodayClasses(t time.Time, courses []course.Course) []course.Course {
	day := t.Weekday().String()
	out := make([]course.Course, 0)
	for _, c := range courses {
		if c.Schedule.HasDay(day) {
			out = append(out, c)
		}
	}
	return out
}
