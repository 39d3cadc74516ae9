package note

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studysync/core"
)

type Note struct {
	ID        int       `json:"id" db:"id"`
	CourseID  int       `json:"course_id" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"` // sanitised HTML
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type NewNote struct {
	CourseID int    `json:"course_id" validate:"required,min=1"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
}

func (nn *NewNote) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	return validate.Struct(nn)
}

type UpdateNote struct {
	CourseID *int    `json:"course_id" validate:"omitempty,min=1"`
	Title    *string `json:"title" validate:"omitempty,min=1"`
	Content  *string `json:"content"`
}

func (un *UpdateNote) Validate(validate *validator.Validate) error {
	return validate.Struct(un)
}
