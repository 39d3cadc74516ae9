package assignment

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studysync/core"
)

type Priority string

// Priorities
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorityRanks = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Rank orders priorities: high 3, medium 2, low 1; anything else 0.
func (p Priority) Rank() int {
	return priorityRanks[p]
}

func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

type Assignment struct {
	ID          int       `json:"id"`
	CourseID    int       `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     core.Date `json:"due_date"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	MaxPoints   *float64  `json:"max_points"`
	Grade       *float64  `json:"grade"` // points earned; meaningful once completed
}

func (a Assignment) IsGraded() bool {
	return a.Completed && a.Grade != nil
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	CourseID    int       `json:"course_id" validate:"required,min=1"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     core.Date `json:"due_date" validate:"required"`
	Priority    Priority  `json:"priority" validate:"omitempty,priority"`
	MaxPoints   *float64  `json:"max_points" validate:"omitempty,gt=0"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Priority = Priority(core.CleanString(string(na.Priority), true))
	return validate.Struct(na)
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
// nil / zero values keep the original value.
type UpdateAssignment struct {
	CourseID    int       `json:"course_id" validate:"omitempty,min=1"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     core.Date `json:"due_date"`
	Priority    Priority  `json:"priority" validate:"omitempty,priority"`
	Completed   *bool     `json:"completed"`
	MaxPoints   *float64  `json:"max_points" validate:"omitempty,gt=0"`
	Grade       *float64  `json:"grade" validate:"omitempty,gte=0"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	ua.Title = core.CleanString(ua.Title)
	ua.Priority = Priority(core.CleanString(string(ua.Priority), true))
	return validate.Struct(ua)
}

func (ua UpdateAssignment) apply(a Assignment) Assignment {
	if ua.CourseID > 0 {
		a.CourseID = ua.CourseID
	}
	if ua.Title != "" {
		a.Title = ua.Title
	}
	if ua.Description != nil {
		a.Description = core.CleanString(*ua.Description)
	}
	if !ua.DueDate.IsZero() {
		a.DueDate = ua.DueDate
	}
	if ua.Priority != "" {
		a.Priority = ua.Priority
	}
	if ua.Completed != nil {
		a.Completed = *ua.Completed
	}
	if ua.MaxPoints != nil {
		a.MaxPoints = ua.MaxPoints
	}
	if ua.Grade != nil {
		// grading implies completion
		a.Grade = ua.Grade
		a.Completed = true
	}
	return a
}
