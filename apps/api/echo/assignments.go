package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/assignment"
	"github.com/darasahq/darasa/core/school"
)

type assignmentApi struct {
	svc      *assignment.Service
	validate *validator.Validate
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assignment.Service, validate *validator.Validate) {
	api := assignmentApi{svc: svc, validate: validate}

	ag := g.Group("/assignments")

	// un-authed endpoints: students take quizzes without accounts
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
	ag.POST("/:id/submissions", api.submit)

	// authed endpoints; jwt is attached per route so the open GET ""
	// above keeps its unauthenticated registration
	staff := roleMiddleware(school.RoleAdmin, school.RoleFaculty)
	ag.POST("", api.create, jwt, staff)
	ag.POST("/:id/deactivate", api.deactivate, jwt, staff)
	ag.DELETE("/:id", api.destroy, jwt, staff)
	ag.GET("/:id/results", api.results, jwt, staff)
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	asg, err := api.svc.Create(data, claims.ActorKey())
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, asg)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	asgs, err := api.svc.QueryByClass(ctx.QueryParam("class"))
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}

	res := make([]AssignmentResponse, 0, len(asgs))
	for _, asg := range asgs {
		res = append(res, newAssignmentResponse(asg))
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	asg, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding assignment by ID")
	}
	return ctx.JSON(http.StatusOK, newAssignmentResponse(asg))
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	var data assignment.Submission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Submission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	result, err := api.svc.Submit(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "submitting answers")
	}
	return ctx.JSON(http.StatusCreated, result)
}

func (api *assignmentApi) deactivate(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.Deactivate(ctx.Param("id"), claims.ActorKey()); err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deactivating assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.Delete(ctx.Param("id"), claims.ActorKey()); err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *assignmentApi) results(ctx echo.Context) error {
	results, err := api.svc.Results(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying results")
	}
	if results == nil {
		results = []school.AssignmentResult{}
	}
	return ctx.JSON(http.StatusOK, results)
}

// Bindings

type (
	// QuestionResponse strips the answer key off a question before it
	// reaches students.
	QuestionResponse struct {
		Text    string   `json:"questionText"`
		Options []string `json:"options"`
	}

	AssignmentResponse struct {
		ID        string             `json:"id"`
		ClassCode string             `json:"classCode"`
		Title     string             `json:"title"`
		Subject   string             `json:"subject,omitempty"`
		Questions []QuestionResponse `json:"questions"`
		ExpiresAt time.Time          `json:"expiryDate,omitempty"`
		CreatedBy string             `json:"createdBy"`
		CreatedAt time.Time          `json:"createdAt"`
	}
)

func newAssignmentResponse(asg school.Assignment) AssignmentResponse {
	questions := make([]QuestionResponse, 0, len(asg.Questions))
	for _, q := range asg.Questions {
		questions = append(questions, QuestionResponse{Text: q.Text, Options: q.Options})
	}
	return AssignmentResponse{
		ID:        asg.ID,
		ClassCode: asg.ClassCode,
		Title:     asg.Title,
		Subject:   asg.Subject,
		Questions: questions,
		ExpiresAt: asg.ExpiresAt,
		CreatedBy: asg.CreatedBy,
		CreatedAt: asg.CreatedAt,
	}
}
