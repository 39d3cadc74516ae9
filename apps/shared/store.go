// Package shared wires the store backends and domain services used by every app.
package shared

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/digest"
	"github.com/trezcool/studysync/core/grade"
	"github.com/trezcool/studysync/core/note"
	"github.com/trezcool/studysync/storage/database"
	inmemdb "github.com/trezcool/studysync/storage/database/inmem"
	sqlxrepos "github.com/trezcool/studysync/storage/database/sqlx"
	"github.com/trezcool/studysync/storage/fixtures"
	"github.com/trezcool/studysync/storage/recordstore"
)

type (
	// Store is one backend's set of repositories.
	Store struct {
		Kind        string
		DB          *sql.DB // postgres only
		Courses     course.Repository
		Assignments assignment.Repository
		Grades      grade.Repository
		Notes       note.Repository
	}

	Services struct {
		Course     *course.Service
		Assignment *assignment.Service
		Grade      *grade.Service
		Note       *note.Service
		Digest     *digest.Service
	}
)

// OpenStore opens the backend selected by conf.Store.
// The memory store starts with the demo fixtures; postgres is provisioned and migrated first.
func OpenStore(ctx context.Context, conf *core.Config) (*Store, error) {
	switch conf.Store {
	case core.StoreMemory, "":
		data, err := fixtures.Default()
		if err != nil {
			return nil, err
		}
		return NewMemoryStore(inmemdb.Open(data)), nil

	case core.StorePostgres:
		if err := database.CreateIfNotExist(ctx, conf); err != nil {
			return nil, errors.Wrap(err, "creating database")
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, errors.Wrap(err, "opening database")
		}
		if err = database.StatusCheck(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return NewPostgresStore(db), nil

	case core.StoreRemote:
		if conf.RecordStore.BaseURL == "" {
			return nil, errors.New("record store URL is not configured")
		}
		return NewRemoteStore(recordstore.NewClient(conf.RecordStore)), nil

	default:
		return nil, errors.Errorf("unknown store %q", conf.Store)
	}
}

func NewMemoryStore(db *inmemdb.DB) *Store {
	return &Store{
		Kind:        core.StoreMemory,
		Courses:     inmemdb.NewCourseRepository(db),
		Assignments: inmemdb.NewAssignmentRepository(db),
		Grades:      inmemdb.NewGradeRepository(db),
		Notes:       inmemdb.NewNoteRepository(db),
	}
}

func NewPostgresStore(db *sql.DB) *Store {
	xdb := sqlxrepos.Wrap(db)
	return &Store{
		Kind:        core.StorePostgres,
		DB:          db,
		Courses:     sqlxrepos.NewCourseRepository(xdb),
		Assignments: sqlxrepos.NewAssignmentRepository(xdb),
		Grades:      sqlxrepos.NewGradeRepository(xdb),
		Notes:       sqlxrepos.NewNoteRepository(xdb),
	}
}

func NewRemoteStore(client *recordstore.Client) *Store {
	return &Store{
		Kind:        core.StoreRemote,
		Courses:     recordstore.NewCourseRepository(client),
		Assignments: recordstore.NewAssignmentRepository(client),
		Grades:      recordstore.NewGradeRepository(client),
		Notes:       recordstore.NewNoteRepository(client),
	}
}

// Repositories returns the store as a fixtures seeding target.
func (s *Store) Repositories() fixtures.Repositories {
	return fixtures.Repositories{
		Course:     s.Courses,
		Assignment: s.Assignments,
		Grade:      s.Grades,
		Note:       s.Notes,
	}
}

func (s *Store) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// NewServices builds the domain services over store.
// Deleting a course cascades to its grades, assignments and notes; deleting an assignment to its grades.
func NewServices(store *Store, mailer core.EmailService, digestDays int) Services {
	ledger := grade.NewCascade(store.Grades)
	asgSvc := assignment.NewService(store.Assignments, ledger)
	noteSvc := note.NewService(store.Notes)
	courseSvc := course.NewService(store.Courses, ledger, asgSvc, noteSvc)
	return Services{
		Course:     courseSvc,
		Assignment: asgSvc,
		Grade:      grade.NewService(store.Grades, asgSvc, courseSvc),
		Note:       noteSvc,
		Digest:     digest.NewService(courseSvc, asgSvc, mailer, digestDays),
	}
}
