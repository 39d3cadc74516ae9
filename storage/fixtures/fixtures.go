// Package fixtures loads the demo data set and copies it into any store.
package fixtures

import (
	"context"
	"encoding/json"
	"io/fs"

	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/grade"
	"github.com/trezcool/studysync/core/note"
	appfs "github.com/trezcool/studysync/fs"
)

type (
	Data struct {
		Courses     []course.Course         `json:"courses"`
		Assignments []assignment.Assignment `json:"assignments"`
		Grades      []grade.Grade           `json:"grades"`
		Notes       []note.Note             `json:"notes"`
	}

	// Repositories is the set of stores Seed writes into.
	Repositories struct {
		Course     course.Repository
		Assignment assignment.Repository
		Grade      grade.Repository
		Note       note.Repository
	}
)

func Load(fsys fs.FS, path string) (Data, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Data{}, errors.Wrap(err, "reading fixtures")
	}
	var data Data
	if err = json.Unmarshal(raw, &data); err != nil {
		return Data{}, errors.Wrap(err, "decoding fixtures")
	}
	return data, nil
}

// Default returns the embedded demo data set.
func Default() (Data, error) {
	return Load(appfs.FS, appfs.FixturesFile)
}

// Seed creates every record of data, remapping foreign keys onto the ids assigned by the stores.
func Seed(ctx context.Context, repos Repositories, data Data) error {
	courseIDs := make(map[int]int, len(data.Courses))
	for _, c := range data.Courses {
		created, err := repos.Course.CreateCourse(ctx, c)
		if err != nil {
			return errors.Wrapf(err, "seeding course %q", c.Name)
		}
		courseIDs[c.ID] = created.ID
	}

	asgIDs := make(map[int]int, len(data.Assignments))
	for _, a := range data.Assignments {
		courseID, ok := courseIDs[a.CourseID]
		if !ok {
			return errors.Errorf("assignment %q: unknown course %d", a.Title, a.CourseID)
		}
		a.CourseID = courseID
		created, err := repos.Assignment.CreateAssignment(ctx, a)
		if err != nil {
			return errors.Wrapf(err, "seeding assignment %q", a.Title)
		}
		asgIDs[a.ID] = created.ID
	}

	for _, g := range data.Grades {
		asgID, ok := asgIDs[g.AssignmentID]
		if !ok {
			return errors.Errorf("grade %d: unknown assignment %d", g.ID, g.AssignmentID)
		}
		g.AssignmentID = asgID
		g.CourseID = courseIDs[g.CourseID]
		if _, err := repos.Grade.CreateGrade(ctx, g); err != nil {
			return errors.Wrapf(err, "seeding grade %d", g.ID)
		}
	}

	for _, n := range data.Notes {
		courseID, ok := courseIDs[n.CourseID]
		if !ok {
			return errors.Errorf("note %q: unknown course %d", n.Title, n.CourseID)
		}
		n.CourseID = courseID
		if _, err := repos.Note.CreateNote(ctx, n); err != nil {
			return errors.Wrapf(err, "seeding note %q", n.Title)
		}
	}
	return nil
}
