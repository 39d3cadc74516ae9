package sqlxrepos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysync/core/course"
)

const courseColumns = "id, name, instructor, credits, color, current_grade, schedule_days, schedule_time, schedule_location"

type courseRow struct {
	ID               int          `db:"id"`
	Name             string       `db:"name"`
	Instructor       string       `db:"instructor"`
	Credits          int          `db:"credits"`
	Color            string       `db:"color"`
	CurrentGrade     null.Float64 `db:"current_grade"`
	ScheduleDays     string       `db:"schedule_days"` // comma joined weekday names
	ScheduleTime     string       `db:"schedule_time"`
	ScheduleLocation string       `db:"schedule_location"`
}

func toCourseRow(c course.Course) courseRow {
	return courseRow{
		ID:               c.ID,
		Name:             c.Name,
		Instructor:       c.Instructor,
		Credits:          c.Credits,
		Color:            c.Color,
		CurrentGrade:     null.Float64FromPtr(c.CurrentGrade),
		ScheduleDays:     strings.Join(c.Schedule.Days, ","),
		ScheduleTime:     c.Schedule.Time,
		ScheduleLocation: c.Schedule.Location,
	}
}

func (row courseRow) course() course.Course {
	days := make([]string, 0)
	for _, d := range strings.Split(row.ScheduleDays, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	return course.Course{
		ID:           row.ID,
		Name:         row.Name,
		Instructor:   row.Instructor,
		Credits:      row.Credits,
		Color:        row.Color,
		CurrentGrade: row.CurrentGrade.Ptr(),
		Schedule: course.Schedule{
			Days:     days,
			Time:     row.ScheduleTime,
			Location: row.ScheduleLocation,
		},
	}
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) QueryCourses(ctx context.Context) ([]course.Course, error) {
	var rows []courseRow
	q := "SELECT " + courseColumns + " FROM course ORDER BY " + byID.String()
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "selecting courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.course())
	}
	return courses, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, id int) (course.Course, error) {
	var row courseRow
	q := "SELECT " + courseColumns + " FROM course WHERE id = $1"
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return course.Course{}, notFoundOr(err, course.ErrNotFound, "selecting course")
	}
	return row.course(), nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	q := `INSERT INTO course (name, instructor, credits, color, current_grade, schedule_days, schedule_time, schedule_location)
		VALUES (:name, :instructor, :credits, :color, :current_grade, :schedule_days, :schedule_time, :schedule_location)
		RETURNING ` + courseColumns
	row, err := namedGet[courseRow](ctx, repo.db, q, toCourseRow(c))
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return row.course(), nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	q := `UPDATE course SET name = :name, instructor = :instructor, credits = :credits, color = :color,
		current_grade = :current_grade, schedule_days = :schedule_days, schedule_time = :schedule_time,
		schedule_location = :schedule_location
		WHERE id = :id RETURNING ` + courseColumns
	row, err := namedGet[courseRow](ctx, repo.db, q, toCourseRow(c))
	if err != nil {
		return course.Course{}, notFoundOr(err, course.ErrNotFound, "updating course")
	}
	return row.course(), nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id int) error {
	return deleteOne(ctx, repo.db, "DELETE FROM course WHERE id = $1", id, course.ErrNotFound)
}
