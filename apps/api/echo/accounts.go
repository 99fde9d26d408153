package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/account"
	"github.com/darasahq/darasa/core/school"
)

type accountApi struct {
	svc      *account.Service
	validate *validator.Validate
}

func registerAccountAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *account.Service, validate *validator.Validate) {
	api := accountApi{svc: svc, validate: validate}

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("/login", api.login)

	// authed endpoints
	ag := ug.Group("", jwt)
	ag.POST("/token-refresh", api.refreshToken)
	ag.POST("/register", api.create, adminMiddleware())
	ag.GET("", api.query, adminMiddleware())
	ag.GET("/:id", api.retrieve, adminMiddleware())
}

// Handlers

func (api *accountApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(data.Username, data.Password, api.svc)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *accountApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *accountApi) create(ctx echo.Context) error {
	var data account.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, newUserResponse(usr))
}

func (api *accountApi) query(ctx echo.Context) error {
	users, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying users")
	}

	res := make([]UserResponse, 0, len(users))
	for _, usr := range users {
		res = append(res, newUserResponse(usr))
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *accountApi) retrieve(ctx echo.Context) error {
	usr, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == account.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding user by ID")
	}
	return ctx.JSON(http.StatusOK, newUserResponse(usr))
}

// Bindings

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	// UserResponse is the API shape of a user account; it never carries
	// the password hash persisted in the data file.
	UserResponse struct {
		ID          string     `json:"id"`
		Name        string     `json:"name"`
		Username    string     `json:"username"`
		Email       string     `json:"email,omitempty"`
		IsActive    bool       `json:"is_active"`
		Roles       []string   `json:"roles"`
		FacultyCode string     `json:"faculty_code,omitempty"`
		CreatedAt   time.Time  `json:"created_at"`
		UpdatedAt   time.Time  `json:"updated_at"`
		LastLogin   *time.Time `json:"last_login,omitempty"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(lr)
}

func newUserResponse(usr school.User) UserResponse {
	res := UserResponse{
		ID:          usr.ID,
		Name:        usr.Name,
		Username:    usr.Username,
		Email:       usr.Email,
		IsActive:    usr.IsActive,
		Roles:       usr.Roles,
		FacultyCode: usr.FacultyCode,
		CreatedAt:   usr.CreatedAt,
		UpdatedAt:   usr.UpdatedAt,
	}
	if !usr.LastLogin.IsZero() {
		ll := usr.LastLogin
		res.LastLogin = &ll
	}
	return res
}
