package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/grade"
	"github.com/trezcool/studysync/tests"
)

func Test_gradeApi_query(t *testing.T) {
	srv, svcs := setup(t)
	ctx := testutil.Ctx()

	all, err := svcs.Grade.Query(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	runTests(t, srv, []httpTest{
		{name: "all", path: "/api/grades", wantCode: http.StatusOK, wantData: marchallList(t, all[0], all[1], all[2])},
		{name: "by assignment", path: "/api/grades?assignment=3", wantCode: http.StatusOK, wantData: marchallList(t, all[1])},
		{name: "ungraded assignment", path: "/api/grades?assignment=2", wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "bad assignment", path: "/api/grades?assignment=x", wantCode: http.StatusBadRequest},
		{name: "retrieve", path: "/api/grades/3", wantCode: http.StatusOK, wantData: marchallObj(t, all[2])},
		{
			name: "unknown", path: "/api/grades/42",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "grade not found"}),
		},
	})
}

func Test_gradeApi_record(t *testing.T) {
	srv, svcs := setup(t)
	ctx := testutil.Ctx()

	runTests(t, srv, []httpTest{
		{
			name: "required", method: http.MethodPost, path: "/api/grades", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"assignment_id": "this field is required",
				"points":        "this field is required",
				"max_points":    "this field is required",
			}),
		},
		{
			name: "invalid", method: http.MethodPost, path: "/api/grades",
			body:     []byte(`{"assignment_id": 2, "points": -3, "max_points": 0}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"points":     "points must be 0 or greater",
				"max_points": "max_points must be greater than 0",
			}),
		},
		{
			name: "unknown assignment", method: http.MethodPost, path: "/api/grades",
			body:     []byte(`{"assignment_id": 42, "points": 3, "max_points": 5}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"assignment_id": "invalid value"}),
		},
	})

	var g grade.Grade
	do(t, srv, http.MethodPost, "/api/grades", []byte(`{"assignment_id": 2, "points": 45, "max_points": 50}`), http.StatusCreated, &g)
	assert.Equal(t, grade.Grade{
		ID:           4,
		AssignmentID: 2,
		CourseID:     1,
		Points:       45,
		MaxPoints:    50,
		Weight:       grade.DefaultWeight,
		Date:         core.DateOf(now),
	}, g)

	a, err := svcs.Assignment.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, a.Completed)
	assert.Equal(t, testutil.FPtr(45), a.Grade)
	assert.Equal(t, testutil.FPtr(50), a.MaxPoints)

	pct := coursePercent(t, srv, 1)
	require.NotNil(t, pct)
	assert.InDelta(t, 100*137.0/150, *pct, 1e-9)

	// un-completing the assignment drops it from the course grade
	do(t, srv, http.MethodPost, "/api/assignments/2/toggle", nil, http.StatusOK, nil)
	pct = coursePercent(t, srv, 1)
	require.NotNil(t, pct)
	assert.InDelta(t, 92, *pct, 1e-9)

	t.Run("extra credit", func(t *testing.T) {
		do(t, srv, http.MethodPost, "/api/grades", []byte(`{"assignment_id": 4, "points": 30, "max_points": 25, "date": "2024-03-10"}`), http.StatusCreated, &g)
		assert.Equal(t, "2024-03-10", g.Date.String())

		pct := coursePercent(t, srv, 2)
		require.NotNil(t, pct)
		assert.InDelta(t, 100*125.0/125, *pct, 1e-9)
	})
}

func Test_gradeApi_update(t *testing.T) {
	srv, svcs := setup(t)

	var g grade.Grade
	do(t, srv, http.MethodPut, "/api/grades/1", []byte(`{"points": 80, "weight": 2}`), http.StatusOK, &g)
	assert.Equal(t, 80.0, g.Points)
	assert.Equal(t, 100.0, g.MaxPoints)
	assert.Equal(t, 2.0, g.Weight)

	a, err := svcs.Assignment.GetByID(testutil.Ctx(), 1)
	require.NoError(t, err)
	assert.Equal(t, testutil.FPtr(80), a.Grade)

	pct := coursePercent(t, srv, 1)
	require.NotNil(t, pct)
	assert.InDelta(t, 80, *pct, 1e-9)

	runTests(t, srv, []httpTest{
		{
			name: "invalid", method: http.MethodPut, path: "/api/grades/1", body: []byte(`{"max_points": -1}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"max_points": "max_points must be greater than 0"}),
		},
		{name: "unknown", method: http.MethodPut, path: "/api/grades/42", body: []byte(`{"points": 1}`), wantCode: http.StatusNotFound},
	})
}

func Test_gradeApi_destroy(t *testing.T) {
	srv, svcs := setup(t)

	runTests(t, srv, []httpTest{
		{name: "ok", method: http.MethodDelete, path: "/api/grades/1", wantCode: http.StatusNoContent},
		{name: "twice", method: http.MethodDelete, path: "/api/grades/1", wantCode: http.StatusNotFound},
	})

	// the assignment keeps its grade
	a, err := svcs.Assignment.GetByID(testutil.Ctx(), 1)
	require.NoError(t, err)
	assert.Equal(t, testutil.FPtr(92), a.Grade)
}

func Test_gradeApi_summary(t *testing.T) {
	srv, _ := setup(t)

	var summ grade.Summary
	do(t, srv, http.MethodGet, "/api/grades/summary", nil, http.StatusOK, &summ)

	// the GPA uses the recorded course grades, the per-course rows the live percentages
	assert.InDelta(t, (4*3.0+4*3.3+3*2.0)/11, summ.GPA, 1e-9)
	require.Len(t, summ.Courses, 4)

	lit := summ.Courses[2]
	assert.Equal(t, "American Literature", lit.Name)
	assert.Nil(t, lit.Percent)
	assert.Equal(t, "--", lit.Display)
	assert.Equal(t, 0, lit.Graded)
	assert.Equal(t, 1, lit.Total)

	chem := summ.Courses[1]
	require.NotNil(t, chem.Percent)
	assert.InDelta(t, 95, *chem.Percent, 1e-9)
	assert.Equal(t, "A", chem.Letter)
	assert.Equal(t, 1, chem.Graded)
	assert.Equal(t, 2, chem.Total)
}
