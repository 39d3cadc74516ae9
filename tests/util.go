package testutil

import (
	"context"
	"database/sql"
	"io"
	"log"
	"os"
	"testing"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	appfs "github.com/trezcool/studysync/fs"
	logsvc "github.com/trezcool/studysync/services/logger"
	"github.com/trezcool/studysync/storage/database"
	"github.com/trezcool/studysync/storage/fixtures"
)

// TestDBEnv must be set (to any value) for the postgres tests to run.
const TestDBEnv = "STUDYSYNC_TEST_DB"

func Ctx() context.Context {
	return context.Background()
}

// NewConfig returns the app config in test mode with the in-memory store and no digest recipients.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.Store = core.StoreMemory
	conf.Server.DisableReqLogs = true
	conf.Digest.Recipients = nil
	conf.Digest.Days = 7
	return conf
}

// NewLogger returns a silent logger; set `-v` friendly output with NewLogger(os.Stdout).
func NewLogger(out ...io.Writer) core.Logger {
	var w io.Writer = io.Discard
	if len(out) > 0 {
		w = out[0]
	}
	return logsvc.NewRollbarLogger(log.New(w, "TEST : ", log.LstdFlags), NewConfig())
}

func ParseTemplates(t *testing.T) {
	if err := core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, true); err != nil {
		t.Fatalf("ParseTemplates() failed: %v", err)
	}
}

// Fixtures returns the embedded demo data set.
func Fixtures(t *testing.T) fixtures.Data {
	data, err := fixtures.Default()
	if err != nil {
		t.Fatalf("Fixtures() failed: %v", err)
	}
	return data
}

// PrepareDB opens a freshly migrated test database, skipping the test unless TestDBEnv is set.
func PrepareDB(t *testing.T) *sql.DB {
	if os.Getenv(TestDBEnv) == "" {
		t.Skipf("%s not set: skipping postgres test", TestDBEnv)
	}
	conf := NewConfig()
	conf.Database.Name = "studysync_test"

	if err := database.CreateIfNotExist(Ctx(), conf); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if err = database.Reset(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func CreateCourse(t *testing.T, repo course.Repository, name string, credits int, grade *float64, days ...string) course.Course {
	crs, err := repo.CreateCourse(Ctx(), course.Course{
		Name:         name,
		Credits:      credits,
		Color:        course.DefaultColor,
		CurrentGrade: grade,
		Schedule:     course.Schedule{Days: append([]string{}, days...)},
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	courseID int,
	title string,
	due core.Date,
	priority assignment.Priority,
	completed bool,
	maxPoints, grade *float64,
) assignment.Assignment {
	asg, err := repo.CreateAssignment(Ctx(), assignment.Assignment{
		CourseID:  courseID,
		Title:     title,
		DueDate:   due,
		Priority:  priority,
		Completed: completed,
		MaxPoints: maxPoints,
		Grade:     grade,
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return asg
}

func FPtr(f float64) *float64 { return &f }
