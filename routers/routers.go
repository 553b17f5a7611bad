package routers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sirherobrine23.com.br/go-bds/imagegen/modules/config"
	"sirherobrine23.com.br/go-bds/imagegen/modules/controller"
	"sirherobrine23.com.br/go-bds/imagegen/modules/history"
	"sirherobrine23.com.br/go-bds/imagegen/routers/utils"
	webTemplates "sirherobrine23.com.br/go-bds/imagegen/templates"
	web "sirherobrine23.com.br/go-bds/imagegen/web_src"
)

// HistoryReader list last uploads
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Record, error)
}

type RouteConfig struct {
	Settings   *config.Settings
	Controller *controller.Controller
	History    HistoryReader // Optional
	Logger     *slog.Logger
}

func (config *RouteConfig) log() *slog.Logger {
	if config.Logger == nil {
		return slog.Default()
	}
	return config.Logger
}

// MountRouter with dashboard, static files and /api/v1
func MountRouter(config *RouteConfig) (http.Handler, error) {
	templates, err := webTemplates.Templates()
	if err != nil {
		return nil, err
	}

	router := chi.NewMux()
	router.Mount("/api/v1", MountAPI(config))

	staticFiles := http.FileServerFS(web.StaticFiles)
	router.Handle("/js/*", staticFiles)
	router.Handle("/css/*", staticFiles)

	router.Get("/", HomePage(config, templates))
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		templates.Render404(w, "")
	})

	return recoverHandler(config.log(), router), nil
}

// Catch panic and reply 500
func recoverHandler(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic in handler", "path", r.URL.Path, "error", err)
				utils.JsonResponse(w, http.StatusInternalServerError, utils.ErrorResponse{
					From:    "Internal Server Error",
					Message: fmt.Sprintf("error: %v", err),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
