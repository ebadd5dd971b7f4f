package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront.GO/service/media"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// NewTemplate parses the bundled page templates.
func NewTemplate() (*Template, error) {
	tmpl, err := template.New("").Funcs(TemplateFuncs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Template{Templates: tmpl}, nil
}

// TemplateFuncs returns FuncMap with display helpers.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"join":  strings.Join,
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"deref": func(v *float64) float64 {
			if v == nil {
				return 0
			}
			return *v
		},
		"imageURL": imageURL,
		"thumbURL": thumbURL,
	}
}

func imageURL(mediaURL, src string) string {
	if media.IsRemote(src) {
		return src
	}
	return strings.TrimSuffix(mediaURL, "/") + "/" + strings.TrimPrefix(src, "/")
}

// Remote images have no generated thumbnail.
func thumbURL(mediaURL, src string) string {
	if media.IsRemote(src) {
		return src
	}
	return imageURL(mediaURL, filepath.ToSlash(media.ThumbPath(src)))
}
