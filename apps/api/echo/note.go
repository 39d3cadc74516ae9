package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/note"
)

type noteApi struct {
	svc       *note.Service
	courseSvc *course.Service
	validate  *validator.Validate
}

func registerNoteAPI(g *echo.Group, deps ServerDeps) {
	api := noteApi{
		svc:       deps.NoteSvc,
		courseSvc: deps.CourseSvc,
		validate:  deps.Validate,
	}

	ng := g.Group("/notes")
	ng.GET("", api.query)
	ng.POST("", api.create)

	// detail endpoints
	dg := ng.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *noteApi) checkCourse(ctx context.Context, courseID int) error {
	if _, err := api.courseSvc.GetByID(ctx, courseID); err != nil {
		if core.IsNotFound(err) {
			return core.NewValidationError(err, core.FieldError{Field: "course_id", Error: "invalid value"})
		}
		return errors.Wrap(err, "getting course")
	}
	return nil
}

// Handlers

// query lists notes, optionally narrowed with `course` (a course id).
func (api *noteApi) query(ctx echo.Context) error {
	courseID, err := queryInt(ctx, "course", 0)
	if err != nil {
		return err
	}

	var notes []note.Note
	if courseID > 0 {
		notes, err = api.svc.QueryByCourse(ctx.Request().Context(), courseID)
	} else {
		notes, err = api.svc.Query(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *noteApi) create(ctx echo.Context) error {
	var data note.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	if err := api.checkCourse(reqCtx, data.CourseID); err != nil {
		return err
	}

	n, err := api.svc.Create(reqCtx, data)
	if err != nil {
		return errors.Wrap(err, "creating note")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *noteApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "note")
	if err != nil {
		return err
	}
	n, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting note")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "note")
	if err != nil {
		return err
	}
	var data note.UpdateNote
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNote")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	if data.CourseID != nil {
		if err = api.checkCourse(reqCtx, *data.CourseID); err != nil {
			return err
		}
	}

	n, err := api.svc.Update(reqCtx, id, data)
	if err != nil {
		return errors.Wrap(err, "updating note")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "note")
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting note")
	}
	return ctx.NoContent(http.StatusNoContent)
}
