package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/board"
	"github.com/darasahq/darasa/core/school"
)

type boardApi struct {
	svc      *board.Service
	validate *validator.Validate
}

func registerBoardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *board.Service, validate *validator.Validate) {
	api := boardApi{svc: svc, validate: validate}

	// reads are public; jwt is attached per route on the writes so the
	// open GET "" keeps its unauthenticated registration
	pg := g.Group("/posts")
	pg.GET("", api.queryPosts)
	pg.POST("", api.createPost, jwt, roleMiddleware(school.RoleFaculty))
	pg.DELETE("/:id", api.destroyPost, jwt, roleMiddleware(school.RoleAdmin, school.RoleFaculty))

	ng := g.Group("/notifications")
	ng.GET("", api.queryNotifications)
	ng.POST("", api.createNotification, jwt, roleMiddleware(school.RoleAdmin, school.RoleReceptionist))
	ng.DELETE("/:id", api.destroyNotification, jwt, adminMiddleware())
}

// Handlers

func (api *boardApi) createPost(ctx echo.Context) error {
	var data board.NewPost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPost")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if claims.FacultyCode == "" {
		return errHttpForbidden
	}

	post, err := api.svc.CreatePost(data, claims.FacultyCode)
	if err != nil {
		return errors.Wrap(err, "creating post")
	}
	return ctx.JSON(http.StatusCreated, post)
}

func (api *boardApi) queryPosts(ctx echo.Context) error {
	posts, err := api.svc.QueryPosts()
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}
	if posts == nil {
		posts = []school.FacultyPost{}
	}
	return ctx.JSON(http.StatusOK, posts)
}

// destroyPost: admins delete any post, faculty only their own.
func (api *boardApi) destroyPost(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	id := ctx.Param("id")
	if !claims.IsAdmin {
		posts, err := api.svc.QueryPosts()
		if err != nil {
			return errors.Wrap(err, "querying posts")
		}
		for _, p := range posts {
			if p.ID == id && p.FacultyCode != claims.FacultyCode {
				return errHttpForbidden
			}
		}
	}

	if err := api.svc.DeletePost(id, claims.ActorKey()); err != nil {
		if errors.Cause(err) == board.ErrPostNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting post")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *boardApi) createNotification(ctx echo.Context) error {
	var data board.NewNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	source := school.RoleReceptionist
	if claims.IsAdmin {
		source = school.RoleAdmin
	}

	notif, err := api.svc.CreateNotification(data, source, claims.ActorKey())
	if err != nil {
		return errors.Wrap(err, "creating notification")
	}
	return ctx.JSON(http.StatusCreated, notif)
}

func (api *boardApi) queryNotifications(ctx echo.Context) error {
	notifs, err := api.svc.QueryNotifications()
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	if notifs == nil {
		notifs = []school.Notification{}
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *boardApi) destroyNotification(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.DeleteNotification(ctx.Param("id"), claims.ActorKey()); err != nil {
		if errors.Cause(err) == board.ErrNotificationNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting notification")
	}
	return ctx.NoContent(http.StatusNoContent)
}
