package echoapi

import (
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/homework/core/homework"
)

const (
	apiPrefix     = "/api"
	indexTemplate = "index"
)

type homeworkApi struct {
	svc      *homework.Service
	validate *validator.Validate
	appName  string
}

func registerHomeworkAPI(app *echo.Echo, svc *homework.Service, validate *validator.Validate, appName string) {
	api := homeworkApi{
		svc:      svc,
		validate: validate,
		appName:  appName,
	}

	// the form page
	app.GET("/", api.index)
	app.POST("/", api.submit)

	// read-only JSON
	g := app.Group(apiPrefix + "/subjects")
	g.GET("", api.querySubjects)
	g.GET("/:subject", api.retrieve)
}

// indexPage is the data of the index template.
type indexPage struct {
	AppName  string
	Subjects []string
	Selected string
	DueDate  string // YYYY-MM-DD, usable as an input[type=date] value
	Details  string
}

// Handlers

func (api *homeworkApi) index(ctx echo.Context) error {
	return api.dispatch(ctx, homework.DecodeQuery(ctx.QueryParam("subject")))
}

func (api *homeworkApi) submit(ctx echo.Context) error {
	// parses the body (url-encoded or multipart) into Request().PostForm
	if _, err := ctx.FormParams(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form").SetInternal(err)
	}
	return api.dispatch(ctx, homework.DecodeForm(ctx.Request().PostForm, api.validate))
}

// dispatch performs an intent. Writes redirect back to the page so that a refresh does not resubmit.
func (api *homeworkApi) dispatch(ctx echo.Context, intent homework.Intent) error {
	reqCtx := ctx.Request().Context()

	switch it := intent.(type) {
	case homework.Upsert:
		if err := api.svc.Upsert(reqCtx, it.Record); err != nil {
			return errors.Wrap(err, "saving homework")
		}
		q := url.Values{"subject": {it.Record.Subject}}
		return ctx.Redirect(http.StatusFound, "/?"+q.Encode())

	case homework.Delete:
		if err := api.svc.Delete(reqCtx, it.Subject); err != nil {
			return errors.Wrap(err, "deleting homework")
		}
		return ctx.Redirect(http.StatusFound, "/")

	case homework.Select:
		return api.render(ctx, it.Subject)

	default:
		return api.render(ctx, "")
	}
}

func (api *homeworkApi) render(ctx echo.Context, selected string) error {
	reqCtx := ctx.Request().Context()

	subjects, err := api.svc.ListSubjects(reqCtx)
	if err != nil {
		return errors.Wrap(err, "listing subjects")
	}
	page := indexPage{
		AppName:  api.appName,
		Subjects: subjects,
		Selected: selected,
	}

	if selected != "" {
		rec, err := api.svc.Read(reqCtx, selected)
		if err != nil {
			return errors.Wrap(err, "reading homework")
		}
		page.DueDate = rec.DueDateString()
		page.Details = rec.Details
	}
	return ctx.Render(http.StatusOK, indexTemplate, page)
}

func (api *homeworkApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.ListSubjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *homeworkApi) retrieve(ctx echo.Context) error {
	// echo routes on the raw path, leaving params escaped, only when the request has one
	subject := ctx.Param("subject")
	if ctx.Request().URL.RawPath != "" {
		unescaped, err := url.PathUnescape(subject)
		if err != nil {
			return errHttpNotFound
		}
		subject = unescaped
	}
	rec, err := api.svc.Get(ctx.Request().Context(), subject)
	if err != nil {
		if errors.Cause(err) == homework.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting homework")
	}
	return ctx.JSON(http.StatusOK, rec)
}
