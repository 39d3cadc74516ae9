package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/studysync/core"
)

// pathID reads the `:id` path param. Ids are positive ints; anything else cannot exist.
func pathID(ctx echo.Context, entity string) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, core.NewNotFoundError(entity)
	}
	return id, nil
}

// queryInt reads an optional int query param, falling back to def when absent.
func queryInt(ctx echo.Context, name string, def int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}

// queryDate reads an optional `2006-01-02` query param.
func queryDate(ctx echo.Context, name string) (core.Date, error) {
	var d core.Date
	if err := d.UnmarshalParam(ctx.QueryParam(name)); err != nil {
		return core.Date{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be a date (YYYY-MM-DD)")
	}
	return d, nil
}
