package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/grade"
)

type gradeApi struct {
	svc      *grade.Service
	validate *validator.Validate
}

func registerGradeAPI(g *echo.Group, deps ServerDeps) {
	api := gradeApi{
		svc:      deps.GradeSvc,
		validate: deps.Validate,
	}

	gg := g.Group("/grades")
	gg.GET("", api.query)
	gg.POST("", api.record)
	gg.GET("/summary", api.summary)

	// detail endpoints
	dg := gg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

// query lists the ledger, optionally narrowed with `assignment` (an assignment id).
func (api *gradeApi) query(ctx echo.Context) error {
	asgID, err := queryInt(ctx, "assignment", 0)
	if err != nil {
		return err
	}

	var grades []grade.Grade
	if asgID > 0 {
		grades, err = api.svc.QueryByAssignment(ctx.Request().Context(), asgID)
	} else {
		grades, err = api.svc.Query(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

// record grades an assignment: a ledger entry is added, the assignment is marked graded and
// its course percentage recomputed.
func (api *gradeApi) record(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Record(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "recording grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *gradeApi) summary(ctx echo.Context) error {
	summ, err := api.svc.Summary(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing grades summary")
	}
	return ctx.JSON(http.StatusOK, summ)
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "grade")
	if err != nil {
		return err
	}
	g, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "grade")
	if err != nil {
		return err
	}
	var data grade.UpdateGrade
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "grade")
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}
