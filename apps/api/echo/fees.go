package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/fees"
	"github.com/darasahq/darasa/core/school"
)

type feesApi struct {
	svc      *fees.Service
	validate *validator.Validate
}

func registerFeesAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *fees.Service, validate *validator.Validate) {
	api := feesApi{svc: svc, validate: validate}

	fg := g.Group("/fees", jwt)
	fg.POST("/certificates", api.issue, roleMiddleware(school.RoleAdmin, school.RoleReceptionist))
	fg.GET("/certificates", api.query, roleMiddleware(school.RoleAdmin, school.RoleReceptionist))
	fg.GET("/certificates/:id", api.retrieve, roleMiddleware(school.RoleAdmin, school.RoleReceptionist))
}

// Handlers

func (api *feesApi) issue(ctx echo.Context) error {
	var data fees.IssueCertificate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IssueCertificate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	cert, err := api.svc.Issue(data, claims.ActorKey())
	if err != nil {
		if errors.Cause(err) == fees.ErrUnregistered {
			return errHttpNotFound
		}
		return errors.Wrap(err, "issuing certificate")
	}
	return ctx.JSON(http.StatusCreated, cert)
}

func (api *feesApi) query(ctx echo.Context) error {
	certs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying certificates")
	}
	if certs == nil {
		certs = []school.FeeCertificate{}
	}
	return ctx.JSON(http.StatusOK, certs)
}

func (api *feesApi) retrieve(ctx echo.Context) error {
	cert, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == fees.ErrCertNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding certificate by ID")
	}
	return ctx.JSON(http.StatusOK, cert)
}
