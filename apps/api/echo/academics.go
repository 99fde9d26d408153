package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/academics"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/student"
)

type academicsApi struct {
	svc      *academics.Service
	validate *validator.Validate
}

func registerAcademicsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *academics.Service, validate *validator.Validate) {
	api := academicsApi{svc: svc, validate: validate}

	pg := g.Group("/progress-cards", jwt)
	pg.POST("", api.recordCard, roleMiddleware(school.RoleAdmin, school.RoleFaculty))
	pg.GET("", api.queryCards)

	ag := g.Group("/attendance", jwt)
	ag.POST("", api.recordAttendance, roleMiddleware(school.RoleAdmin, school.RoleFaculty))
	ag.GET("", api.queryAttendance)
}

// Handlers

func (api *academicsApi) recordCard(ctx echo.Context) error {
	var data academics.NewProgressCard
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProgressCard")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	card, err := api.svc.RecordCard(data, claims.ActorKey())
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "recording progress card")
	}
	return ctx.JSON(http.StatusCreated, card)
}

// queryCards lists cards for ?class= or ?student=; exactly one filter
// is required.
func (api *academicsApi) queryCards(ctx echo.Context) error {
	class, code := ctx.QueryParam("class"), ctx.QueryParam("student")

	var cards []school.ProgressCard
	var err error
	switch {
	case code != "":
		cards, err = api.svc.CardsByStudent(code)
	case class != "":
		cards, err = api.svc.CardsByClass(class)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "either class or student query param is required")
	}
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying progress cards")
	}
	if cards == nil {
		cards = []school.ProgressCard{}
	}
	return ctx.JSON(http.StatusOK, cards)
}

func (api *academicsApi) recordAttendance(ctx echo.Context) error {
	var data academics.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	rec, err := api.svc.RecordAttendance(data, claims.ActorKey())
	if err != nil {
		return errors.Wrap(err, "recording attendance")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *academicsApi) queryAttendance(ctx echo.Context) error {
	class, code := ctx.QueryParam("class"), ctx.QueryParam("student")

	switch {
	case code != "":
		sheets, err := api.svc.AttendanceByStudent(code)
		if err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return errHttpNotFound
			}
			return errors.Wrap(err, "querying student attendance")
		}
		if sheets == nil {
			sheets = []academics.StudentAttendance{}
		}
		return ctx.JSON(http.StatusOK, sheets)
	case class != "":
		sheets, err := api.svc.AttendanceByClass(class)
		if err != nil {
			return errors.Wrap(err, "querying class attendance")
		}
		if sheets == nil {
			sheets = []school.AttendanceRecord{}
		}
		return ctx.JSON(http.StatusOK, sheets)
	}
	return echo.NewHTTPError(http.StatusBadRequest, "either class or student query param is required")
}
