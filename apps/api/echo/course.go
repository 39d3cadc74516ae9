package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/grade"
	"github.com/trezcool/studysync/core/note"
)

type courseApi struct {
	svc      *course.Service
	asgSvc   *assignment.Service
	gradeSvc *grade.Service
	noteSvc  *note.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, deps ServerDeps) {
	api := courseApi{
		svc:      deps.CourseSvc,
		asgSvc:   deps.AssignmentSvc,
		gradeSvc: deps.GradeSvc,
		noteSvc:  deps.NoteSvc,
		validate: deps.Validate,
	}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)

	// detail endpoints
	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/assignments", api.queryAssignments)
	dg.GET("/grades", api.queryGrades)
	dg.GET("/notes", api.queryNotes)
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.Search(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "course")
	if err != nil {
		return err
	}
	c, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "course")
	if err != nil {
		return err
	}
	var data course.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "course")
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) queryAssignments(ctx echo.Context) error {
	id, err := pathID(ctx, "course")
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	c, err := api.svc.GetByID(reqCtx, id)
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	asgs, err := api.asgSvc.QueryByCourse(reqCtx, c.ID)
	if err != nil {
		return errors.Wrap(err, "querying course assignments")
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *courseApi) queryGrades(ctx echo.Context) error {
	id, err := pathID(ctx, "course")
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	c, err := api.svc.GetByID(reqCtx, id)
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	grades, err := api.gradeSvc.QueryByCourse(reqCtx, c.ID)
	if err != nil {
		return errors.Wrap(err, "querying course grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *courseApi) queryNotes(ctx echo.Context) error {
	id, err := pathID(ctx, "course")
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	c, err := api.svc.GetByID(reqCtx, id)
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	notes, err := api.noteSvc.QueryByCourse(reqCtx, c.ID)
	if err != nil {
		return errors.Wrap(err, "querying course notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}
