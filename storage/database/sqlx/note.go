package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/note"
)

const noteColumns = "id, course_id, title, content, created_at, updated_at"

type noteRepository struct {
	db *sqlx.DB
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *sqlx.DB) note.Repository {
	return &noteRepository{db: db}
}

func (repo *noteRepository) selectMany(ctx context.Context, where string, args ...interface{}) ([]note.Note, error) {
	notes := make([]note.Note, 0)
	q := "SELECT " + noteColumns + " FROM note " + where + " ORDER BY " + byID.String()
	if err := repo.db.SelectContext(ctx, &notes, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting notes")
	}
	return notes, nil
}

func (repo *noteRepository) QueryNotes(ctx context.Context) ([]note.Note, error) {
	return repo.selectMany(ctx, "")
}

func (repo *noteRepository) QueryNotesByCourse(ctx context.Context, courseID int) ([]note.Note, error) {
	return repo.selectMany(ctx, "WHERE course_id = $1", courseID)
}

func (repo *noteRepository) GetNote(ctx context.Context, id int) (note.Note, error) {
	var n note.Note
	q := "SELECT " + noteColumns + " FROM note WHERE id = $1"
	if err := repo.db.GetContext(ctx, &n, q, id); err != nil {
		return note.Note{}, notFoundOr(err, note.ErrNotFound, "selecting note")
	}
	return n, nil
}

func (repo *noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	q := `INSERT INTO note (course_id, title, content, created_at, updated_at)
		VALUES (:course_id, :title, :content, :created_at, :updated_at)
		RETURNING ` + noteColumns
	n, err := namedGet[note.Note](ctx, repo.db, q, n)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	return n, nil
}

func (repo *noteRepository) UpdateNote(ctx context.Context, n note.Note) (note.Note, error) {
	q := `UPDATE note SET course_id = :course_id, title = :title, content = :content, updated_at = :updated_at
		WHERE id = :id RETURNING ` + noteColumns
	n, err := namedGet[note.Note](ctx, repo.db, q, n)
	if err != nil {
		return note.Note{}, notFoundOr(err, note.ErrNotFound, "updating note")
	}
	return n, nil
}

func (repo *noteRepository) DeleteNote(ctx context.Context, id int) error {
	return deleteOne(ctx, repo.db, "DELETE FROM note WHERE id = $1", id, note.ErrNotFound)
}

func (repo *noteRepository) DeleteNotesByCourse(ctx context.Context, courseID int) (int, error) {
	return deleteMany(ctx, repo.db, "DELETE FROM note WHERE course_id = $1", courseID)
}
