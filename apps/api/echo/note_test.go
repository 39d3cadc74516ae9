package echoapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysync/core/note"
	"github.com/trezcool/studysync/tests"
)

func Test_noteApi_query(t *testing.T) {
	srv, svcs := setup(t)
	ctx := testutil.Ctx()

	n1, _ := svcs.Note.GetByID(ctx, 1)
	n2, _ := svcs.Note.GetByID(ctx, 2)

	runTests(t, srv, []httpTest{
		{name: "all", path: "/api/notes", wantCode: http.StatusOK, wantData: marchallList(t, n1, n2)},
		{name: "by course", path: "/api/notes?course=2", wantCode: http.StatusOK, wantData: marchallList(t, n2)},
		{name: "course without notes", path: "/api/notes?course=3", wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "notes of a course", path: "/api/courses/1/notes", wantCode: http.StatusOK, wantData: marchallList(t, n1)},
		{name: "retrieve", path: "/api/notes/2", wantCode: http.StatusOK, wantData: marchallObj(t, n2)},
		{
			name: "unknown", path: "/api/notes/42",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "note not found"}),
		},
	})
}

func Test_noteApi_create(t *testing.T) {
	srv, _ := setup(t)

	runTests(t, srv, []httpTest{
		{
			name: "required", method: http.MethodPost, path: "/api/notes", body: []byte(`{"title": " "}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"course_id": "this field is required", "title": "this field is required"}),
		},
		{
			name: "unknown course", method: http.MethodPost, path: "/api/notes", body: []byte(`{"course_id": 42, "title": "x"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"course_id": "invalid value"}),
		},
	})

	var n note.Note
	do(t, srv, http.MethodPost, "/api/notes",
		[]byte(`{"course_id": 3, "title": "Gatsby themes", "content": "<p onclick=\"steal()\">Green light</p><script>alert(1)</script>"}`),
		http.StatusCreated, &n)
	assert.Equal(t, 3, n.ID)
	assert.Equal(t, 3, n.CourseID)
	assert.Equal(t, "Gatsby themes", n.Title)
	assert.Equal(t, "<p>Green light</p>", n.Content)
	assert.True(t, n.CreatedAt.Equal(now))
	assert.True(t, n.UpdatedAt.Equal(now))
}

func Test_noteApi_update(t *testing.T) {
	srv, _ := setup(t)

	var n note.Note
	do(t, srv, http.MethodPut, "/api/notes/1", []byte(`{"content": "<em>LIATE</em><iframe src=\"x\"></iframe>"}`), http.StatusOK, &n)
	assert.Equal(t, "Integration techniques", n.Title)
	assert.Equal(t, "<em>LIATE</em>", n.Content)
	assert.True(t, n.CreatedAt.Equal(time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)))
	assert.True(t, n.UpdatedAt.Equal(now))

	do(t, srv, http.MethodPut, "/api/notes/1", []byte(`{"course_id": 3}`), http.StatusOK, &n)
	assert.Equal(t, 3, n.CourseID)

	runTests(t, srv, []httpTest{
		{
			name: "unknown course", method: http.MethodPut, path: "/api/notes/1", body: []byte(`{"course_id": 42}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"course_id": "invalid value"}),
		},
		{name: "unknown", method: http.MethodPut, path: "/api/notes/42", body: []byte(`{"title": "x"}`), wantCode: http.StatusNotFound},
	})
}

func Test_noteApi_destroy(t *testing.T) {
	srv, svcs := setup(t)

	runTests(t, srv, []httpTest{
		{name: "ok", method: http.MethodDelete, path: "/api/notes/2", wantCode: http.StatusNoContent},
		{name: "twice", method: http.MethodDelete, path: "/api/notes/2", wantCode: http.StatusNotFound},
	})

	notes, err := svcs.Note.Query(testutil.Ctx())
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}
