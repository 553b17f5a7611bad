package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"sirherobrine23.com.br/go-bds/imagegen/modules/artifact"
	"sirherobrine23.com.br/go-bds/imagegen/modules/controller"
	"sirherobrine23.com.br/go-bds/imagegen/modules/github"
)

// JSON message to return
type ErrorResponse struct {
	From    string `json:"error"`
	Message string `json:"message,omitempty"`
}

func JsonResponse(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	js := json.NewEncoder(w)
	js.SetIndent("", "  ")
	js.Encode(data)
}

// ErrorStatus map error to http status and error kind
func ErrorStatus(err error) (int, string) {
	var statusErr *github.StatusError
	var urlErr *url.Error
	switch {
	case errors.Is(err, github.ErrInvalidRepository):
		return http.StatusBadRequest, "repository"
	case errors.Is(err, artifact.ErrInvalid), errors.Is(err, controller.ErrNoArtifact):
		return http.StatusBadRequest, "artifact"
	case errors.Is(err, github.ErrFileExists):
		return http.StatusConflict, "exists"
	case errors.Is(err, controller.ErrBusy):
		return http.StatusConflict, "busy"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, github.ErrTriggerFailed), errors.As(err, &statusErr):
		return http.StatusBadGateway, "github"
	case errors.As(err, &urlErr):
		return http.StatusBadGateway, "network"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// JsonError write error with status from [ErrorStatus]
func JsonError(w http.ResponseWriter, err error) {
	code, from := ErrorStatus(err)
	JsonResponse(w, code, ErrorResponse{From: from, Message: err.Error()})
}
