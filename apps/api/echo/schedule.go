package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/schedule"
)

type (
	scheduleApi struct {
		courseSvc *course.Service
		asgSvc    *assignment.Service
		now       func() time.Time
	}

	weekView struct {
		schedule.Week
		Range    string `json:"range"`
		Previous string `json:"previous"`
		Next     string `json:"next"`
	}
)

func registerScheduleAPI(g *echo.Group, deps ServerDeps) {
	api := scheduleApi{
		courseSvc: deps.CourseSvc,
		asgSvc:    deps.AssignmentSvc,
		now:       deps.Now,
	}

	sg := g.Group("/schedule")
	sg.GET("", api.week)
	sg.GET("/today", api.today)
}

// Handlers

// week resolves the week containing `week` (a date, default today), shifted by `offset` weeks.
func (api *scheduleApi) week(ctx echo.Context) error {
	day, err := queryDate(ctx, "week")
	if err != nil {
		return err
	}
	offset, err := queryInt(ctx, "offset", 0)
	if err != nil {
		return err
	}

	start := schedule.Current(api.now())
	if !day.IsZero() {
		start = schedule.WeekStart(day.In(time.UTC))
	}
	start = schedule.Shift(start, offset)

	reqCtx := ctx.Request().Context()
	courses, err := api.courseSvc.Query(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	asgs, err := api.asgSvc.Query(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}

	w := schedule.Resolve(start, courses, asgs)
	return ctx.JSON(http.StatusOK, weekView{
		Week:     w,
		Range:    w.Range(),
		Previous: schedule.Shift(start, -1).String(),
		Next:     schedule.Shift(start, 1).String(),
	})
}

func (api *scheduleApi) today(ctx echo.Context) error {
	courses, err := api.courseSvc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, schedule.TodayClasses(api.now(), courses))
}
