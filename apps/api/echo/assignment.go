package echoapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/grade"
)

const (
	defaultUpcomingDays  = 7
	defaultUpcomingLimit = 5
)

type (
	assignmentApi struct {
		svc       *assignment.Service
		courseSvc *course.Service
		gradeSvc  *grade.Service
		validate  *validator.Validate
		now       func() time.Time
	}

	// assignmentView is an Assignment decorated with its course name and due date labels.
	assignmentView struct {
		assignment.Assignment
		CourseName string                    `json:"course_name"`
		Labels     assignment.Classification `json:"labels"`
	}
)

func registerAssignmentAPI(g *echo.Group, deps ServerDeps) {
	api := assignmentApi{
		svc:       deps.AssignmentSvc,
		courseSvc: deps.CourseSvc,
		gradeSvc:  deps.GradeSvc,
		validate:  deps.Validate,
		now:       deps.Now,
	}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.GET("/stats", api.stats)
	ag.GET("/upcoming", api.upcoming)

	// detail endpoints
	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/toggle", api.toggle)
}

func newAssignmentViews(asgs []assignment.Assignment, names map[int]string, now time.Time) []assignmentView {
	views := make([]assignmentView, 0, len(asgs))
	for _, a := range asgs {
		views = append(views, assignmentView{
			Assignment: a,
			CourseName: names[a.CourseID],
			Labels:     assignment.Classify(a, now),
		})
	}
	return views
}

// loadAll fetches every assignment along with the course names they refer to.
func (api *assignmentApi) loadAll(ctx context.Context) ([]assignment.Assignment, map[int]string, error) {
	courses, err := api.courseSvc.Query(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying courses")
	}
	asgs, err := api.svc.Query(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying assignments")
	}
	return asgs, course.Names(courses), nil
}

// checkCourse turns an unknown course id into a validation error on `course_id`.
func (api *assignmentApi) checkCourse(ctx context.Context, courseID int) error {
	if _, err := api.courseSvc.GetByID(ctx, courseID); err != nil {
		if core.IsNotFound(err) {
			return core.NewValidationError(err, core.FieldError{Field: "course_id", Error: "invalid value"})
		}
		return errors.Wrap(err, "getting course")
	}
	return nil
}

// refresh recomputes the current grade of every given course.
func (api *assignmentApi) refresh(ctx context.Context, courseIDs ...int) error {
	seen := make(map[int]bool, len(courseIDs))
	for _, id := range courseIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := api.gradeSvc.RefreshCourseGrade(ctx, id); err != nil && !core.IsNotFound(err) {
			return errors.Wrap(err, "refreshing course grade")
		}
	}
	return nil
}

// Handlers

// query lists assignments; query params: search, course, priority, status (all|completed|pending),
// sort (due_date|priority|course).
func (api *assignmentApi) query(ctx echo.Context) error {
	var filter assignment.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to Filter")
	}
	filter.Clean()

	asgs, names, err := api.loadAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	key := assignment.SortKey(ctx.QueryParam("sort"))
	if key == "" {
		key = assignment.SortByDueDate
	}
	asgs = assignment.Apply(asgs, names, filter, key)
	return ctx.JSON(http.StatusOK, newAssignmentViews(asgs, names, api.now()))
}

func (api *assignmentApi) stats(ctx echo.Context) error {
	asgs, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, assignment.ComputeStats(asgs, api.now()))
}

// upcoming lists pending assignments due within `days` (default 7), at most `limit` (default 5).
func (api *assignmentApi) upcoming(ctx echo.Context) error {
	days, err := queryInt(ctx, "days", defaultUpcomingDays)
	if err != nil {
		return err
	}
	limit, err := queryInt(ctx, "limit", defaultUpcomingLimit)
	if err != nil {
		return err
	}

	asgs, names, err := api.loadAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	now := api.now()
	return ctx.JSON(http.StatusOK, newAssignmentViews(assignment.Upcoming(asgs, now, days, limit), names, now))
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	if err := api.checkCourse(reqCtx, data.CourseID); err != nil {
		return err
	}

	a, err := api.svc.Create(reqCtx, data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "assignment")
	if err != nil {
		return err
	}
	a, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "assignment")
	if err != nil {
		return err
	}
	var data assignment.UpdateAssignment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	orig, err := api.svc.GetByID(reqCtx, id)
	if err != nil {
		return errors.Wrap(err, "getting assignment")
	}
	if data.CourseID > 0 && data.CourseID != orig.CourseID {
		if err = api.checkCourse(reqCtx, data.CourseID); err != nil {
			return err
		}
	}

	a, err := api.svc.Update(reqCtx, id, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	if err = api.refresh(reqCtx, orig.CourseID, a.CourseID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) toggle(ctx echo.Context) error {
	id, err := pathID(ctx, "assignment")
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	a, err := api.svc.ToggleComplete(reqCtx, id)
	if err != nil {
		return errors.Wrap(err, "toggling assignment")
	}
	if err = api.refresh(reqCtx, a.CourseID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "assignment")
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	a, err := api.svc.GetByID(reqCtx, id)
	if err != nil {
		return errors.Wrap(err, "getting assignment")
	}
	if err = api.svc.Delete(reqCtx, id); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	if err = api.refresh(reqCtx, a.CourseID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
