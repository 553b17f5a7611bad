package routers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"sirherobrine23.com.br/go-bds/imagegen/modules"
	"sirherobrine23.com.br/go-bds/imagegen/modules/artifact"
	"sirherobrine23.com.br/go-bds/imagegen/modules/controller"
	"sirherobrine23.com.br/go-bds/imagegen/modules/github"
	"sirherobrine23.com.br/go-bds/imagegen/modules/history"
	"sirherobrine23.com.br/go-bds/imagegen/routers/utils"
)

type AppVersion struct {
	Version string        `json:"version"`
	Uptime  time.Duration `json:"uptime"`
}

type UploadDefaults struct {
	Repository string          `json:"repository"`
	Branch     string          `json:"branch"`
	Folder     string          `json:"folder"`
	Strategy   github.Strategy `json:"strategy"`
}

type StatusResponse struct {
	controller.Snapshot
	Defaults UploadDefaults `json:"defaults"`
}

// Upload body, token never comes from client
type UploadRequest struct {
	Filename      string `json:"filename"`
	ContentBase64 string `json:"content_base64"`
	Repository    string `json:"repository"`
	Branch        string `json:"branch"`
	Folder        string `json:"folder"`
	Message       string `json:"message"`
}

type UploadResponse struct {
	Repository string          `json:"repository"`
	Branch     string          `json:"branch"`
	Path       string          `json:"path"`
	Strategy   github.Strategy `json:"strategy"`
	HTMLURL    string          `json:"html_url,omitempty"`
}

// Max upload body, base64 of a 512x512 RGBA PNG fits with room
const maxUploadBody = 8 << 20

// MountAPI to /api/v1
func MountAPI(config *RouteConfig) http.Handler {
	api := chi.NewMux()
	api.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.JsonResponse(w, http.StatusOK, AppVersion{
			Version: modules.AppVersion,
			Uptime:  time.Since(modules.StartTime),
		})
	})

	api.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		gh := config.Settings.Github
		utils.JsonResponse(w, http.StatusOK, StatusResponse{
			Snapshot: config.Controller.Snapshot(),
			Defaults: UploadDefaults{
				Repository: gh.Repository,
				Branch:     gh.Branch,
				Folder:     gh.Folder,
				Strategy:   config.Settings.Strategy(),
			},
		})
	})

	api.Post("/generate", GenerateJSON(config))
	api.Get("/generate.png", GeneratePNG(config))
	api.Post("/upload", Upload(config))
	api.Get("/history", History(config))

	api.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.JsonResponse(w, http.StatusNotFound, utils.ErrorResponse{From: "api path not found"})
	})
	api.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.JsonResponse(w, http.StatusMethodNotAllowed, utils.ErrorResponse{From: "method not allowed"})
	})
	return api
}

// Upload artifact sent back by dashboard
func Upload(config *RouteConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body UploadRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBody)).Decode(&body); err != nil {
			utils.JsonResponse(w, http.StatusBadRequest, utils.ErrorResponse{From: "body", Message: err.Error()})
			return
		}

		target, err := config.Settings.Target(body.Repository, body.Branch, body.Folder, body.Message)
		if err != nil {
			utils.JsonError(w, err)
			return
		}

		var art *artifact.Artifact
		if body.Filename != "" || body.ContentBase64 != "" {
			if art, err = artifact.FromBase64(body.Filename, body.ContentBase64); err != nil {
				utils.JsonError(w, err)
				return
			}
		}

		if target.Token, err = config.Settings.Token(); err != nil {
			config.log().Error("cannot load GitHub token", "error", err)
			utils.JsonResponse(w, http.StatusInternalServerError, utils.ErrorResponse{From: "token", Message: err.Error()})
			return
		}

		res, err := config.Controller.Upload(r.Context(), art, target)
		if err != nil {
			utils.JsonError(w, err)
			return
		}
		utils.JsonResponse(w, http.StatusOK, UploadResponse{
			Repository: res.Owner + "/" + res.Repository,
			Branch:     res.Branch,
			Path:       res.Path,
			Strategy:   res.Strategy,
			HTMLURL:    res.HTMLURL,
		})
	}
}

// History list last uploads, empty list when store is disabled
func History(config *RouteConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := history.DefaultLimit
		if value := r.URL.Query().Get("limit"); value != "" {
			var err error
			if limit, err = strconv.Atoi(value); err != nil || limit <= 0 {
				utils.JsonResponse(w, http.StatusBadRequest, utils.ErrorResponse{From: "limit", Message: "limit must be a positive number"})
				return
			}
		}

		records := []history.Record{}
		if config.History != nil {
			var err error
			if records, err = config.History.Recent(r.Context(), limit); err != nil {
				utils.JsonError(w, err)
				return
			}
		}
		utils.JsonResponse(w, http.StatusOK, records)
	}
}
