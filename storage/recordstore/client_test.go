package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/grade"
	"github.com/trezcool/studysync/core/note"
)

const (
	testProject = "p1"
	testKey     = "pk"
)

// fakeStore mimics the record store API over in-memory tables.
type fakeStore struct {
	mu     sync.Mutex
	seq    int
	tables map[string]map[int]map[string]interface{}
	fail   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: make(map[string]map[int]map[string]interface{})}
}

func (s *fakeStore) reply(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Header.Get(headerProjectID) != testProject || r.Header.Get(headerPublicKey) != testKey {
		s.reply(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "bad credentials"})
		return
	}
	if s.fail {
		s.reply(w, http.StatusOK, map[string]interface{}{"success": false, "message": "quota exceeded"})
		return
	}

	// /api/v1/projects/{pid}/tables/{table}/records[/{id}|/query]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 7 {
		http.NotFound(w, r)
		return
	}
	table := parts[5]
	if s.tables[table] == nil {
		s.tables[table] = make(map[int]map[string]interface{})
	}
	rows := s.tables[table]
	tail := ""
	if len(parts) > 7 {
		tail = parts[7]
	}

	switch {
	case r.Method == http.MethodPost && tail == "query":
		var params fetchParams
		_ = json.NewDecoder(r.Body).Decode(&params)
		ids := make([]int, 0, len(rows))
		for id, row := range rows {
			if matches(row, params.Where) {
				ids = append(ids, id)
			}
		}
		sort.Ints(ids)
		data := make([]map[string]interface{}, 0, len(ids))
		for _, id := range ids {
			data = append(data, rows[id])
		}
		s.reply(w, http.StatusOK, map[string]interface{}{"success": true, "data": data})

	case r.Method == http.MethodGet && tail != "":
		id, _ := strconv.Atoi(tail)
		row, ok := rows[id]
		if !ok {
			s.reply(w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "record not found"})
			return
		}
		s.reply(w, http.StatusOK, map[string]interface{}{"success": true, "data": row})

	case r.Method == http.MethodPost || r.Method == http.MethodPut:
		var body struct {
			Records []map[string]interface{} `json:"records"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		results := make([]map[string]interface{}, 0, len(body.Records))
		for _, rec := range body.Records {
			if r.Method == http.MethodPost {
				s.seq++
				rec["Id"] = float64(s.seq)
			} else {
				id := int(rec["Id"].(float64))
				if _, ok := rows[id]; !ok {
					s.reply(w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "record not found"})
					return
				}
			}
			rows[int(rec["Id"].(float64))] = rec
			results = append(results, map[string]interface{}{"success": true, "data": rec})
		}
		s.reply(w, http.StatusOK, map[string]interface{}{"success": true, "results": results})

	case r.Method == http.MethodDelete:
		var body struct {
			RecordIds []int `json:"RecordIds"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for _, id := range body.RecordIds {
			if _, ok := rows[id]; !ok {
				s.reply(w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "record not found"})
				return
			}
		}
		for _, id := range body.RecordIds {
			delete(rows, id)
		}
		s.reply(w, http.StatusOK, map[string]interface{}{"success": true})

	default:
		http.NotFound(w, r)
	}
}

func matches(row map[string]interface{}, where []condition) bool {
	for _, c := range where {
		v, _ := row[c.FieldName].(float64)
		want, _ := c.Values[0].(float64)
		if v != want {
			return false
		}
	}
	return true
}

func setup(t *testing.T) (*Client, *fakeStore) {
	store := newFakeStore()
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)
	return NewClient(core.RecordStoreConfig{BaseURL: srv.URL, ProjectID: testProject, PublicKey: testKey, Timeout: 5 * time.Second}), store
}

func TestClient_tableURL(t *testing.T) {
	c := NewClient(core.RecordStoreConfig{BaseURL: "https://records.test", ProjectID: "p1"})
	assert.Equal(t, "https://records.test/api/v1/projects/p1/tables/course_c/records", c.tableURL(courseTable))
	assert.Equal(t, "https://records.test/api/v1/projects/p1/tables/note_c/records/7", c.tableURL(noteTable, 7))
}

func TestCourseRepository(t *testing.T) {
	client, _ := setup(t)
	repo := NewCourseRepository(client)
	ctx := context.Background()

	courses, err := repo.QueryCourses(ctx)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	crs, err := repo.CreateCourse(ctx, course.Course{
		ID:       99, // ignored
		Name:     "Calculus II",
		Credits:  4,
		Schedule: course.Schedule{Days: []string{"Monday", "Wednesday"}, Time: "9:00 AM"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, crs.ID)
	assert.Equal(t, course.DefaultColor, crs.Color)
	assert.Equal(t, []string{"Monday", "Wednesday"}, crs.Schedule.Days)

	pct := 88.5
	crs.CurrentGrade = &pct
	crs, err = repo.UpdateCourse(ctx, crs)
	require.NoError(t, err)

	got, err := repo.GetCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, crs, got)

	_, err = repo.GetCourse(ctx, 42)
	assert.Equal(t, course.ErrNotFound, err)
	_, err = repo.UpdateCourse(ctx, course.Course{ID: 42, Name: "x"})
	assert.Equal(t, course.ErrNotFound, err)

	require.NoError(t, repo.DeleteCourse(ctx, 1))
	assert.Equal(t, course.ErrNotFound, repo.DeleteCourse(ctx, 1))
}

func TestAssignmentRepository(t *testing.T) {
	client, _ := setup(t)
	repo := NewAssignmentRepository(client)
	ctx := context.Background()

	due := core.NewDate(2024, time.March, 15)
	for _, a := range []assignment.Assignment{
		{CourseID: 1, Title: "Review", DueDate: due, Priority: assignment.PriorityHigh},
		{CourseID: 2, Title: "Lab", DueDate: due},
		{CourseID: 1, Title: "Quiz", DueDate: due, MaxPoints: fptr(20)},
	} {
		_, err := repo.CreateAssignment(ctx, a)
		require.NoError(t, err)
	}

	byCourse, err := repo.QueryAssignmentsByCourse(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byCourse, 2)
	assert.Equal(t, "Review", byCourse[0].Title)
	assert.Equal(t, due, byCourse[0].DueDate)
	assert.Equal(t, assignment.PriorityMedium, byCourse[1].Priority)
	assert.Equal(t, 20.0, *byCourse[1].MaxPoints)

	n, err := repo.DeleteAssignmentsByCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.DeleteAssignmentsByCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	all, err := repo.QueryAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Lab", all[0].Title)

	_, err = repo.GetAssignment(ctx, 1)
	assert.Equal(t, assignment.ErrNotFound, err)
}

func TestGradeAndNoteRepositories(t *testing.T) {
	client, _ := setup(t)
	grades := NewGradeRepository(client)
	notes := NewNoteRepository(client)
	ctx := context.Background()

	g, err := grades.CreateGrade(ctx, grade.Grade{AssignmentID: 3, CourseID: 1, Points: 45, MaxPoints: 50, Date: core.NewDate(2024, time.March, 14)})
	require.NoError(t, err)
	assert.Equal(t, grade.DefaultWeight, g.Weight)

	byAsg, err := grades.QueryGradesByAssignment(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []grade.Grade{g}, byAsg)

	created := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	n, err := notes.CreateNote(ctx, note.Note{CourseID: 1, Title: "Safety", Content: "<p>x</p>", CreatedAt: created, UpdatedAt: created})
	require.NoError(t, err)
	assert.Equal(t, created, n.CreatedAt)

	count, err := notes.DeleteNotesByCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, grades.DeleteGrade(ctx, g.ID))
	_, err = grades.GetGrade(ctx, g.ID)
	assert.Equal(t, grade.ErrNotFound, err)

	for _, ng := range []grade.Grade{
		{AssignmentID: 3, CourseID: 1, Points: 40, MaxPoints: 50},
		{AssignmentID: 4, CourseID: 1, Points: 9, MaxPoints: 10},
		{AssignmentID: 5, CourseID: 2, Points: 18, MaxPoints: 20},
	} {
		_, err = grades.CreateGrade(ctx, ng)
		require.NoError(t, err)
	}

	count, err = grades.DeleteGradesByAssignment(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	count, err = grades.DeleteGradesByCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	count, err = grades.DeleteGradesByCourse(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	left, err := grades.QueryGrades(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, 5, left[0].AssignmentID)
}

func TestClient_errors(t *testing.T) {
	client, store := setup(t)
	ctx := context.Background()

	store.fail = true
	_, err := NewCourseRepository(client).QueryCourses(ctx)
	assert.EqualError(t, err, "fetching course_c: record store: quota exceeded")

	store.fail = false
	client.publicKey = "wrong"
	_, err = NewCourseRepository(client).GetCourse(ctx, 1)
	assert.EqualError(t, err, "record store: bad credentials")
}
