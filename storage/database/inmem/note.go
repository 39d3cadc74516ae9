package inmemdb

import (
	"context"

	"github.com/trezcool/studysync/core/note"
)

type noteRepository struct {
	db *DB
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *DB) note.Repository {
	return &noteRepository{db: db}
}

func (repo *noteRepository) query(keep func(n note.Note) bool) []note.Note {
	ids := sortedIDs(len(repo.db.notes), func(add func(int)) {
		for id := range repo.db.notes {
			add(id)
		}
	})
	notes := make([]note.Note, 0, len(ids))
	for _, id := range ids {
		if n := repo.db.notes[id]; keep(n) {
			notes = append(notes, n)
		}
	}
	return notes
}

func (repo *noteRepository) QueryNotes(_ context.Context) ([]note.Note, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(note.Note) bool { return true }), nil
}

func (repo *noteRepository) QueryNotesByCourse(_ context.Context, courseID int) ([]note.Note, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(n note.Note) bool { return n.CourseID == courseID }), nil
}

func (repo *noteRepository) GetNote(_ context.Context, id int) (note.Note, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if n, ok := repo.db.notes[id]; ok {
		return n, nil
	}
	return note.Note{}, note.ErrNotFound
}

func (repo *noteRepository) CreateNote(_ context.Context, n note.Note) (note.Note, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq.note++
	n.ID = repo.db.seq.note
	repo.db.notes[n.ID] = n
	return n, nil
}

func (repo *noteRepository) UpdateNote(_ context.Context, n note.Note) (note.Note, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.notes[n.ID]; !ok {
		return note.Note{}, note.ErrNotFound
	}
	repo.db.notes[n.ID] = n
	return n, nil
}

func (repo *noteRepository) DeleteNote(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.notes[id]; !ok {
		return note.ErrNotFound
	}
	delete(repo.db.notes, id)
	return nil
}

func (repo *noteRepository) DeleteNotesByCourse(_ context.Context, courseID int) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var n int
	for id, nt := range repo.db.notes {
		if nt.CourseID == courseID {
			delete(repo.db.notes, id)
			n++
		}
	}
	return n, nil
}
