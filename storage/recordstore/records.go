package recordstore

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/grade"
	"github.com/trezcool/studysync/core/note"
)

// Tables
const (
	courseTable     = "course_c"
	assignmentTable = "assignment_c"
	gradeTable      = "grade_c"
	noteTable       = "note_c"
)

var (
	courseFields = []string{
		"Name", "name_c", "instructor_c", "credits_c", "color_c", "current_grade_c",
		"schedule_days_c", "schedule_time_c", "schedule_location_c",
	}
	assignmentFields = []string{
		"Name", "course_id_c", "title_c", "description_c", "due_date_c", "priority_c",
		"completed_c", "max_points_c", "grade_c",
	}
	gradeFields = []string{
		"Name", "course_id_c", "assignment_id_c", "points_c", "max_points_c", "weight_c", "date_c",
	}
	noteFields = []string{
		"Name", "course_id_c", "title_c", "content_c", "created_at_c", "updated_at_c",
	}
)

// lookup is a relation field: a bare id, a numeric string, or a {"Id", "Name"} object.
type lookup int

func (l *lookup) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, string(data) == "null":
		*l = 0
	case data[0] == '{':
		var obj struct {
			ID int `json:"Id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return errors.Wrap(err, "decoding lookup")
		}
		*l = lookup(obj.ID)
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "decoding lookup")
		}
		if s == "" {
			*l = 0
			return nil
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			return errors.Wrapf(err, "decoding lookup %q", s)
		}
		*l = lookup(id)
	default:
		var id int
		if err := json.Unmarshal(data, &id); err != nil {
			return errors.Wrap(err, "decoding lookup")
		}
		*l = lookup(id)
	}
	return nil
}

func splitDays(s string) []string {
	days := make([]string, 0)
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	return days
}

func dateOrToday(s string) core.Date {
	if d, err := core.ParseDate(s); err == nil {
		return d
	}
	return today()
}

func dateString(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

type courseRecord struct {
	ID               int      `json:"Id,omitempty"`
	Name             string   `json:"Name"`
	NameC            string   `json:"name_c"`
	InstructorC      string   `json:"instructor_c"`
	CreditsC         int      `json:"credits_c"`
	ColorC           string   `json:"color_c"`
	CurrentGradeC    *float64 `json:"current_grade_c"`
	ScheduleDaysC    string   `json:"schedule_days_c"`
	ScheduleTimeC    string   `json:"schedule_time_c"`
	ScheduleLocation string   `json:"schedule_location_c"`
}

func toCourseRecord(c course.Course) courseRecord {
	name := c.Name
	if name == "" {
		name = "Untitled Course"
	}
	color := c.Color
	if color == "" {
		color = course.DefaultColor
	}
	return courseRecord{
		ID:               c.ID,
		Name:             name,
		NameC:            c.Name,
		InstructorC:      c.Instructor,
		CreditsC:         c.Credits,
		ColorC:           color,
		CurrentGradeC:    c.CurrentGrade,
		ScheduleDaysC:    strings.Join(c.Schedule.Days, ","),
		ScheduleTimeC:    c.Schedule.Time,
		ScheduleLocation: c.Schedule.Location,
	}
}

func (r courseRecord) course() course.Course {
	name := r.NameC
	if name == "" {
		name = r.Name
	}
	color := r.ColorC
	if color == "" {
		color = course.DefaultColor
	}
	return course.Course{
		ID:           r.ID,
		Name:         name,
		Instructor:   r.InstructorC,
		Credits:      r.CreditsC,
		Color:        color,
		CurrentGrade: r.CurrentGradeC,
		Schedule: course.Schedule{
			Days:     splitDays(r.ScheduleDaysC),
			Time:     r.ScheduleTimeC,
			Location: r.ScheduleLocation,
		},
	}
}

type assignmentRecord struct {
	ID           int      `json:"Id,omitempty"`
	Name         string   `json:"Name"`
	CourseIDC    lookup   `json:"course_id_c"`
	TitleC       string   `json:"title_c"`
	DescriptionC string   `json:"description_c"`
	DueDateC     string   `json:"due_date_c"`
	PriorityC    string   `json:"priority_c"`
	CompletedC   bool     `json:"completed_c"`
	MaxPointsC   *float64 `json:"max_points_c"`
	GradeC       *float64 `json:"grade_c"`
}

func toAssignmentRecord(a assignment.Assignment) assignmentRecord {
	return assignmentRecord{
		ID:           a.ID,
		Name:         a.Title,
		CourseIDC:    lookup(a.CourseID),
		TitleC:       a.Title,
		DescriptionC: a.Description,
		DueDateC:     dateString(a.DueDate),
		PriorityC:    string(a.Priority),
		CompletedC:   a.Completed,
		MaxPointsC:   a.MaxPoints,
		GradeC:       a.Grade,
	}
}

func (r assignmentRecord) assignment() assignment.Assignment {
	title := r.TitleC
	if title == "" {
		title = r.Name
	}
	priority := assignment.Priority(r.PriorityC)
	if priority == "" {
		priority = assignment.PriorityMedium
	}
	due, _ := core.ParseDate(r.DueDateC)
	return assignment.Assignment{
		ID:          r.ID,
		CourseID:    int(r.CourseIDC),
		Title:       title,
		Description: r.DescriptionC,
		DueDate:     due,
		Priority:    priority,
		Completed:   r.CompletedC,
		MaxPoints:   r.MaxPointsC,
		Grade:       r.GradeC,
	}
}

type gradeRecord struct {
	ID            int     `json:"Id,omitempty"`
	Name          string  `json:"Name"`
	CourseIDC     lookup  `json:"course_id_c"`
	AssignmentIDC lookup  `json:"assignment_id_c"`
	PointsC       float64 `json:"points_c"`
	MaxPointsC    float64 `json:"max_points_c"`
	WeightC       float64 `json:"weight_c"`
	DateC         string  `json:"date_c"`
}

func toGradeRecord(g grade.Grade) gradeRecord {
	weight := g.Weight
	if weight <= 0 {
		weight = grade.DefaultWeight
	}
	return gradeRecord{
		ID:            g.ID,
		Name:          "Grade " + strconv.Itoa(g.AssignmentID),
		CourseIDC:     lookup(g.CourseID),
		AssignmentIDC: lookup(g.AssignmentID),
		PointsC:       g.Points,
		MaxPointsC:    g.MaxPoints,
		WeightC:       weight,
		DateC:         dateString(g.Date),
	}
}

func (r gradeRecord) grade() grade.Grade {
	weight := r.WeightC
	if weight == 0 {
		weight = grade.DefaultWeight
	}
	return grade.Grade{
		ID:           r.ID,
		AssignmentID: int(r.AssignmentIDC),
		CourseID:     int(r.CourseIDC),
		Points:       r.PointsC,
		MaxPoints:    r.MaxPointsC,
		Weight:       weight,
		Date:         dateOrToday(r.DateC),
	}
}

type noteRecord struct {
	ID         int    `json:"Id,omitempty"`
	Name       string `json:"Name"`
	CourseIDC  lookup `json:"course_id_c"`
	TitleC     string `json:"title_c"`
	ContentC   string `json:"content_c"`
	CreatedAtC string `json:"created_at_c"`
	UpdatedAtC string `json:"updated_at_c"`
}

func toNoteRecord(n note.Note) noteRecord {
	return noteRecord{
		ID:         n.ID,
		Name:       n.Title,
		CourseIDC:  lookup(n.CourseID),
		TitleC:     n.Title,
		ContentC:   n.Content,
		CreatedAtC: n.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtC: n.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (r noteRecord) note() note.Note {
	title := r.TitleC
	if title == "" {
		title = r.Name
	}
	created, _ := time.Parse(time.RFC3339, r.CreatedAtC)
	updated, _ := time.Parse(time.RFC3339, r.UpdatedAtC)
	if updated.IsZero() {
		updated = created
	}
	return note.Note{
		ID:        r.ID,
		CourseID:  int(r.CourseIDC),
		Title:     title,
		Content:   r.ContentC,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}
