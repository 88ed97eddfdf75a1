package echoapi

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	appfs "github.com/trezcool/homework/fs"
)

type templateRenderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*templateRenderer)(nil)

func newTemplateRenderer() (*templateRenderer, error) {
	tmpl, err := template.New("").Option("missingkey=error").ParseFS(appfs.FS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	return &templateRenderer{templates: tmpl}, nil
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
