package routers

import (
	"net/http"

	webTemplates "sirherobrine23.com.br/go-bds/imagegen/templates"
)

// HomePage render dashboard with upload defaults from config
func HomePage(config *RouteConfig, templates *webTemplates.TemplateRender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gh := config.Settings.Github
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := templates.Render(webTemplates.PageHome, w, &webTemplates.RenderData{
			Title: "Generator",
			External: map[string]any{
				"Repository": gh.Repository,
				"Branch":     gh.Branch,
				"Folder":     gh.Folder,
				"Message":    gh.Message,
				"Strategy":   config.Settings.Strategy(),
				"Status":     config.Controller.Status(),
			},
		})
		if err != nil {
			config.log().Error("cannot render home", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			templates.Render5xx(w, err)
		}
	}
}
