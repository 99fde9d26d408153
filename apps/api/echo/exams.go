package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/exams"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/student"
)

type examsApi struct {
	svc      *exams.Service
	validate *validator.Validate
}

func registerExamsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *exams.Service, validate *validator.Validate) {
	api := examsApi{svc: svc, validate: validate}

	hg := g.Group("/hall-tickets", jwt)
	hg.POST("", api.issue, adminMiddleware())
	hg.GET("", api.query)
	hg.DELETE("/:id", api.destroy, adminMiddleware())
}

// Handlers

func (api *examsApi) issue(ctx echo.Context) error {
	var data exams.NewHallTicket
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewHallTicket")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	ticket, err := api.svc.Issue(data, claims.ActorKey())
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "issuing hall ticket")
	}
	return ctx.JSON(http.StatusCreated, ticket)
}

// query lists tickets for ?student= or ?class=; exactly one filter is
// required.
func (api *examsApi) query(ctx echo.Context) error {
	class, code := ctx.QueryParam("class"), ctx.QueryParam("student")

	var tickets []school.HallTicket
	var err error
	switch {
	case code != "":
		tickets, err = api.svc.QueryByStudent(code)
	case class != "":
		tickets, err = api.svc.QueryByClass(class)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "either class or student query param is required")
	}
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying hall tickets")
	}
	if tickets == nil {
		tickets = []school.HallTicket{}
	}
	return ctx.JSON(http.StatusOK, tickets)
}

func (api *examsApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.Delete(ctx.Param("id"), claims.ActorKey()); err != nil {
		if errors.Cause(err) == exams.ErrTicketNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting hall ticket")
	}
	return ctx.NoContent(http.StatusNoContent)
}
