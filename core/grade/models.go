package grade

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studysync/core"
)

// DefaultWeight is stored on every ledger entry lacking a weight. It does not affect any computed grade.
const DefaultWeight = 1.0

// Grade is a ledger entry recording the points earned on an assignment.
type Grade struct {
	ID           int       `json:"id" db:"id"`
	AssignmentID int       `json:"assignment_id" db:"assignment_id"`
	CourseID     int       `json:"course_id" db:"course_id"` // denormalized from the assignment
	Points       float64   `json:"points" db:"points"`
	MaxPoints    float64   `json:"max_points" db:"max_points"`
	Weight       float64   `json:"weight" db:"weight"`
	Date         core.Date `json:"date" db:"date"`
}

// NewGrade contains information needed to grade an assignment.
// Points above MaxPoints are accepted (extra credit).
type NewGrade struct {
	AssignmentID int       `json:"assignment_id" validate:"required,min=1"`
	Points       *float64  `json:"points" validate:"required,gte=0"`
	MaxPoints    *float64  `json:"max_points" validate:"required,gt=0"`
	Weight       float64   `json:"weight" validate:"omitempty,gt=0"`
	Date         core.Date `json:"date"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	return validate.Struct(ng)
}

// UpdateGrade defines what information may be provided to modify a ledger entry.
type UpdateGrade struct {
	Points    *float64  `json:"points" validate:"omitempty,gte=0"`
	MaxPoints *float64  `json:"max_points" validate:"omitempty,gt=0"`
	Weight    float64   `json:"weight" validate:"omitempty,gt=0"`
	Date      core.Date `json:"date"`
}

func (ug *UpdateGrade) Validate(validate *validator.Validate) error {
	return validate.Struct(ug)
}

func (ug UpdateGrade) apply(g Grade) Grade {
	if ug.Points != nil {
		g.Points = *ug.Points
	}
	if ug.MaxPoints != nil {
		g.MaxPoints = *ug.MaxPoints
	}
	if ug.Weight > 0 {
		g.Weight = ug.Weight
	}
	if !ug.Date.IsZero() {
		g.Date = ug.Date
	}
	return g
}
