// Dashboard html templates
package webTemplates

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"sirherobrine23.com.br/go-bds/imagegen/modules"
)

//go:embed */*.tmpl
var TemplatesFiles embed.FS

// Pages, each file base name is the template name
const (
	PageHome     = "home.tmpl"
	PageNotFound = "404.tmpl"
	PageError    = "500.tmpl"
)

// Values to page, Title and Version are shared by base/head and base/footer
type RenderData struct {
	Title    string
	External map[string]any
}

func (data *RenderData) values() map[string]any {
	values := make(map[string]any, len(data.External)+2)
	for key, value := range data.External {
		values[key] = value
	}
	values["Title"] = data.Title
	values["Version"] = modules.AppVersion
	return values
}

type TemplateRender struct {
	Root *template.Template
}

// Templates parse all embedded pages
func Templates() (*TemplateRender, error) {
	root, err := template.New("root").ParseFS(TemplatesFiles, "*/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &TemplateRender{Root: root}, nil
}

func (t *TemplateRender) Render(page string, w io.Writer, data *RenderData) error {
	tmpl := t.Root.Lookup(page)
	if tmpl == nil {
		return fmt.Errorf("template not exists: %q", page)
	}
	if data == nil {
		data = &RenderData{}
	}
	return tmpl.Execute(w, data.values())
}

func (t *TemplateRender) Render404(w io.Writer, message string) error {
	return t.Render(PageNotFound, w, &RenderData{Title: "Page not found", External: map[string]any{"Message": message}})
}

func (t *TemplateRender) Render5xx(w io.Writer, err error) error {
	return t.Render(PageError, w, &RenderData{Title: "Internal error", External: map[string]any{"ErrorMessage": err.Error()}})
}
