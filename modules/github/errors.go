package github

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v61/github"
)

var (
	ErrInvalidRepository = errors.New("repository must be in owner/repo format")
	ErrFileExists        = errors.New("file already exists, generate a new image to get a new file name")
	ErrTriggerFailed     = errors.New("cannot trigger upload workflow")
	ErrNoArtifact        = errors.New("no generated image to upload")
)

// Max response body kept in [StatusError]
const maxErrorBody = 64 << 10

// StatusError is a non-success response from GitHub
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string // Raw response body text
}

func (err *StatusError) Error() string {
	if err.Body == "" {
		return fmt.Sprintf("%s %s: %d %s", err.Method, err.URL, err.StatusCode, http.StatusText(err.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s", err.Method, err.URL, err.StatusCode, err.Body)
}

// convert go-github error to [*StatusError], transport errors are returned as is
func statusError(resp *gh.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return err
	}

	statusErr := &StatusError{StatusCode: resp.StatusCode}
	if resp.Request != nil {
		statusErr.Method, statusErr.URL = resp.Request.Method, resp.Request.URL.String()
	}

	// go-github put body back after CheckResponse
	if resp.Body != nil {
		if body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); readErr == nil {
			statusErr.Body = strings.TrimSpace(string(body))
		}
	}

	if statusErr.Body == "" {
		var ghErr *gh.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Message != "" {
			statusErr.Body = ghErr.Message
		}
	}
	return statusErr
}
