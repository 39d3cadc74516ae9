package course

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studysync/core"
)

const DefaultColor = "#7C3AED"

type Schedule struct {
	Days     []string `json:"days"`
	Time     string   `json:"time"`
	Location string   `json:"location"`
}

// HasDay reports whether the course meets on the given weekday name, e.g. "Monday".
func (s Schedule) HasDay(day string) bool {
	for _, d := range s.Days {
		if d == day {
			return true
		}
	}
	return false
}

type Course struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Instructor   string   `json:"instructor"`
	Credits      int      `json:"credits"`
	Color        string   `json:"color"`
	CurrentGrade *float64 `json:"current_grade"` // percentage; nil when ungraded
	Schedule     Schedule `json:"schedule"`
}

func (c Course) HasGrade() bool {
	return c.CurrentGrade != nil
}

// Names indexes course names by ID.
func Names(courses []Course) map[int]string {
	names := make(map[int]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	return names
}

// ScheduleData is the writable part of a Course's Schedule.
type ScheduleData struct {
	Days     []string `json:"days" validate:"omitempty,weekdays"`
	Time     string   `json:"time"`
	Location string   `json:"location"`
}

func (sd ScheduleData) clean() Schedule {
	days := titleDays(sd.Days)
	if days == nil {
		days = []string{}
	}
	return Schedule{
		Days:     days,
		Time:     core.CleanString(sd.Time),
		Location: core.CleanString(sd.Location),
	}
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name       string       `json:"name" validate:"required"`
	Instructor string       `json:"instructor"`
	Credits    int          `json:"credits" validate:"required,min=1"`
	Color      string       `json:"color" validate:"omitempty,hexcolor"`
	Schedule   ScheduleData `json:"schedule"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Instructor = core.CleanString(nc.Instructor)
	nc.Color = core.CleanString(nc.Color)
	nc.Schedule.Days = titleDays(nc.Schedule.Days)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Zero values keep the original value.
type UpdateCourse struct {
	Name       string        `json:"name"`
	Instructor *string       `json:"instructor"`
	Credits    int           `json:"credits" validate:"omitempty,min=1"`
	Color      string        `json:"color" validate:"omitempty,hexcolor"`
	Schedule   *ScheduleData `json:"schedule"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Color = core.CleanString(uc.Color)
	if uc.Schedule != nil {
		uc.Schedule.Days = titleDays(uc.Schedule.Days)
	}
	return validate.Struct(uc)
}

func (uc UpdateCourse) apply(c Course) Course {
	if uc.Name != "" {
		c.Name = uc.Name
	}
	if uc.Instructor != nil {
		c.Instructor = core.CleanString(*uc.Instructor)
	}
	if uc.Credits > 0 {
		c.Credits = uc.Credits
	}
	if uc.Color != "" {
		c.Color = uc.Color
	}
	if uc.Schedule != nil {
		c.Schedule = uc.Schedule.clean()
	}
	return c
}

// titleDays normalises "monday" / " MONDAY " to "Monday" so that validation and matching are exact.
func titleDays(days []string) []string {
	if days == nil {
		return nil
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		if d = core.CleanString(d, true); d != "" {
			out = append(out, strings.ToUpper(d[:1])+d[1:])
		}
	}
	return out
}
