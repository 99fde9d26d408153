package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/fees"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/student"
)

type studentApi struct {
	svc      *student.Service
	feeSvc   *fees.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *student.Service, feeSvc *fees.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, feeSvc: feeSvc, validate: validate}

	sg := g.Group("/students", jwt)
	sg.POST("", api.register, roleMiddleware(school.RoleAdmin, school.RoleReceptionist))
	sg.GET("", api.query)
	sg.GET("/:code", api.retrieve)
	sg.PUT("/:code", api.update, roleMiddleware(school.RoleAdmin, school.RoleReceptionist))
	sg.DELETE("/:code", api.destroy, adminMiddleware())
	sg.GET("/:code/fees", api.feeSummary)
}

// Handlers

func (api *studentApi) register(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	stu, err := api.svc.Register(data, claims.ActorKey())
	if err != nil {
		return errors.Wrap(err, "registering student")
	}
	return ctx.JSON(http.StatusCreated, stu)
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := student.QueryFilter{
		Class:  ctx.QueryParam("class"),
		Search: ctx.QueryParam("search"),
	}

	students, err := api.svc.Query(filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []school.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	stu, err := api.svc.GetByCode(ctx.Param("code"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by code")
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	stu, err := api.svc.Update(ctx.Param("code"), data, claims.ActorKey())
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.Delete(ctx.Param("code"), claims.ActorKey()); err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) feeSummary(ctx echo.Context) error {
	code := ctx.Param("code")

	sum, err := api.feeSvc.StudentSummary(code)
	if err != nil {
		if errors.Cause(err) == fees.ErrUnregistered {
			return errHttpNotFound
		}
		return errors.Wrap(err, "summarizing student fees")
	}
	certs, err := api.feeSvc.QueryByStudent(code)
	if err != nil {
		return errors.Wrap(err, "querying student certificates")
	}
	if certs == nil {
		certs = []school.FeeCertificate{}
	}

	return ctx.JSON(http.StatusOK, StudentFeesResponse{Summary: sum, Certificates: certs})
}

// Bindings

type StudentFeesResponse struct {
	Summary      fees.Summary            `json:"summary"`
	Certificates []school.FeeCertificate `json:"certificates"`
}
