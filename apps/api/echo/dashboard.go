package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/grade"
	"github.com/trezcool/studysync/core/schedule"
)

type (
	dashboardApi struct {
		courseSvc *course.Service
		asgSvc    *assignment.Service
		now       func() time.Time
	}

	dashboard struct {
		GPA          float64          `json:"gpa"`
		CourseCount  int              `json:"course_count"`
		Stats        assignment.Stats `json:"stats"`
		Upcoming     []assignmentView `json:"upcoming"`
		TodayClasses []course.Course  `json:"today_classes"`
	}
)

func registerDashboardAPI(g *echo.Group, deps ServerDeps) {
	api := dashboardApi{
		courseSvc: deps.CourseSvc,
		asgSvc:    deps.AssignmentSvc,
		now:       deps.Now,
	}
	g.GET("/dashboard", api.retrieve)
}

func (api *dashboardApi) retrieve(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	courses, err := api.courseSvc.Query(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	asgs, err := api.asgSvc.Query(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}

	now := api.now()
	upcoming := assignment.Upcoming(asgs, now, defaultUpcomingDays, defaultUpcomingLimit)
	return ctx.JSON(http.StatusOK, dashboard{
		GPA:          grade.GPA(courses, asgs),
		CourseCount:  len(courses),
		Stats:        assignment.ComputeStats(asgs, now),
		Upcoming:     newAssignmentViews(upcoming, course.Names(courses), now),
		TodayClasses: schedule.TodayClasses(now, courses),
	})
}
