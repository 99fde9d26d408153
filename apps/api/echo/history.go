package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/history"
)

type historyApi struct {
	svc *history.Service
}

func registerHistoryAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *history.Service) {
	api := historyApi{svc: svc}

	hg := g.Group("/history", jwt)
	hg.GET("", api.query)
	hg.GET("/actors", api.queryActors, adminMiddleware())
}

// Handlers

// query returns the caller's own trail; admins may inspect any actor's
// trail via ?actor=.
func (api *historyApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	actor := claims.ActorKey()
	if requested := ctx.QueryParam("actor"); requested != "" && requested != actor {
		if !claims.IsAdmin {
			return errHttpForbidden
		}
		actor = requested
	}

	entries, err := api.svc.Recent(actor)
	if err != nil {
		return errors.Wrap(err, "querying history")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *historyApi) queryActors(ctx echo.Context) error {
	actors, err := api.svc.Actors()
	if err != nil {
		return errors.Wrap(err, "querying actors")
	}
	if actors == nil {
		actors = []string{}
	}
	return ctx.JSON(http.StatusOK, actors)
}
