package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sirherobrine23.com.br/go-bds/imagegen/modules/artifact"
)

var testArtifact = &artifact.Artifact{
	Filename:  "gen_20240115_093045_123.png",
	Payload:   []byte("\x89PNG\r\n\x1a\nfake image payload"),
	CreatedAt: time.Date(2024, time.January, 15, 9, 30, 45, 123*int(time.Millisecond), time.UTC),
}

type recorded struct {
	Method, Path, Query string
	Header              http.Header
	Body                []byte
}

// fakeGitHub record every request and answer with handler
type fakeGitHub struct {
	sync.Mutex
	*httptest.Server
	requests []recorded
}

func newFakeGitHub(t *testing.T, handler http.HandlerFunc) *fakeGitHub {
	t.Helper()
	fake := &fakeGitHub{}
	fake.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fake.Lock()
		fake.requests = append(fake.requests, recorded{r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Clone(), body})
		fake.Unlock()
		handler(w, r)
	}))
	t.Cleanup(fake.Close)
	return fake
}

func (fake *fakeGitHub) Requests() []recorded {
	fake.Lock()
	defer fake.Unlock()
	return append([]recorded(nil), fake.requests...)
}

func (fake *fakeGitHub) Options() Options { return Options{BaseURL: fake.URL} }

func testTarget(t *testing.T) Target {
	target, err := NewTarget("owner/repo", "main", "images", "")
	require.NoError(t, err)
	target.Token = "ghp_test"
	return target
}

func TestContentsUploadCreatesFile(t *testing.T) {
	fake := newFakeGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found"}`))
		case http.MethodPut:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"content":{"name":"gen_20240115_093045_123.png","path":"images/gen_20240115_093045_123.png","sha":"4b825dc6","html_url":"https://github.com/owner/repo/blob/main/images/gen_20240115_093045_123.png"}}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	uploader := &ContentsUploader{Options: fake.Options()}
	result, err := uploader.Upload(context.Background(), testArtifact, testTarget(t))
	require.NoError(t, err)
	assert.Equal(t, "owner/repo/images/gen_20240115_093045_123.png", result.String())
	assert.Equal(t, "images/gen_20240115_093045_123.png", result.Path)
	assert.Equal(t, "4b825dc6", result.SHA)
	assert.Equal(t, Contents, result.Strategy)

	requests := fake.Requests()
	require.Len(t, requests, 2)

	get := requests[0]
	assert.Equal(t, http.MethodGet, get.Method)
	assert.Equal(t, "/repos/owner/repo/contents/images/gen_20240115_093045_123.png", get.Path)
	assert.Equal(t, "ref=main", get.Query)

	put := requests[1]
	assert.Equal(t, http.MethodPut, put.Method)
	assert.Equal(t, get.Path, put.Path)
	for _, req := range requests {
		assert.Equal(t, "Bearer ghp_test", req.Header.Get("Authorization"))
		assert.Equal(t, AcceptHeader, req.Header.Get("Accept"))
		assert.Equal(t, APIVersion, req.Header.Get("X-GitHub-Api-Version"))
	}

	var body map[string]any
	require.NoError(t, json.Unmarshal(put.Body, &body))
	assert.Equal(t, "Add generated image gen_20240115_093045_123.png", body["message"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(testArtifact.Payload), body["content"])
	assert.Equal(t, "main", body["branch"])
	assert.NotContains(t, body, "sha", "create only upload must not send sha")
}

func TestContentsUploadNoClobber(t *testing.T) {
	fake := newFakeGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected %s request", r.Method)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"type":"file","name":"gen_20240115_093045_123.png","path":"images/gen_20240115_093045_123.png","sha":"95b966ae1c166bd92f8ae7d1c313e738c731dfc3"}`))
	})

	uploader := &ContentsUploader{Options: fake.Options()}
	_, err := uploader.Upload(context.Background(), testArtifact, testTarget(t))
	require.ErrorIs(t, err, ErrFileExists)
	assert.Contains(t, err.Error(), "generate a new image")
	assert.Len(t, fake.Requests(), 1, "write request must not be sent")
}

func TestContentsUploadCheckFails(t *testing.T) {
	fake := newFakeGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
	})

	uploader := &ContentsUploader{Options: fake.Options()}
	_, err := uploader.Upload(context.Background(), testArtifact, testTarget(t))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "Resource not accessible by integration")
	assert.Len(t, fake.Requests(), 1)
}

func TestContentsUploadWriteFails(t *testing.T) {
	fake := newFakeGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Invalid request.\n\n\"sha\" wasn't supplied."}`))
	})

	uploader := &ContentsUploader{Options: fake.Options()}
	_, err := uploader.Upload(context.Background(), testArtifact, testTarget(t))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Equal(t, http.MethodPut, statusErr.Method)
	assert.Contains(t, statusErr.Body, "wasn't supplied")
	assert.Len(t, fake.Requests(), 2)
}

func TestContentsUploadWritePlainTextError(t *testing.T) {
	fake := newFakeGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream proxy exploded"))
	})

	uploader := &ContentsUploader{Options: fake.Options()}
	_, err := uploader.Upload(context.Background(), testArtifact, testTarget(t))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream proxy exploded", statusErr.Body)
	assert.Contains(t, err.Error(), "502 upstream proxy exploded")
}

func TestContentsUploadWriteValidationDetail(t *testing.T) {
	fake := newFakeGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Validation Failed","errors":[{"resource":"Commit","field":"branch","code":"invalid"}]}`))
	})

	uploader := &ContentsUploader{Options: fake.Options()}
	_, err := uploader.Upload(context.Background(), testArtifact, testTarget(t))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Contains(t, statusErr.Body, "Validation Failed")
	assert.Contains(t, statusErr.Body, `"field":"branch"`)
}

func TestContentsUploadWithoutToken(t *testing.T) {
	fake := newFakeGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	})

	target := testTarget(t)
	target.Token = ""
	target.Folder = "/"
	uploader := &ContentsUploader{Options: fake.Options()}
	result, err := uploader.Upload(context.Background(), testArtifact, target)
	require.NoError(t, err)
	assert.Equal(t, "gen_20240115_093045_123.png", result.Path)

	for _, req := range fake.Requests() {
		assert.Empty(t, req.Header.Get("Authorization"))
	}
}

func TestContentsUploadNilArtifact(t *testing.T) {
	uploader := &ContentsUploader{}
	_, err := uploader.Upload(context.Background(), nil, testTarget(t))
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestDispatchUpload(t *testing.T) {
	fake := newFakeGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	uploader, err := NewUploader(Dispatch, fake.Options(), "")
	require.NoError(t, err)

	target := testTarget(t)
	target.Token = ""
	result, err := uploader.Upload(context.Background(), testArtifact, target)
	require.NoError(t, err)
	assert.Equal(t, "owner/repo/images/gen_20240115_093045_123.png", result.String())
	assert.Equal(t, Dispatch, result.Strategy)

	requests := fake.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, "/repos/owner/repo/actions/workflows/upload-from-generator.yml/dispatches", requests[0].Path)
	assert.Equal(t, AcceptHeader, requests[0].Header.Get("Accept"))
	assert.Contains(t, requests[0].Header.Get("Content-Type"), "application/json")

	var body struct {
		Ref    string            `json:"ref"`
		Inputs map[string]string `json:"inputs"`
	}
	require.NoError(t, json.Unmarshal(requests[0].Body, &body))
	assert.Equal(t, "main", body.Ref)
	assert.Equal(t, testArtifact.Filename, body.Inputs["filename"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(testArtifact.Payload), body.Inputs["content_base64"])
}

func TestDispatchUploadFails(t *testing.T) {
	fake := newFakeGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Requires authentication"}`))
	})

	uploader := &DispatchUploader{Options: fake.Options(), Workflow: "custom.yml"}
	_, err := uploader.Upload(context.Background(), testArtifact, testTarget(t))
	require.ErrorIs(t, err, ErrTriggerFailed)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "/repos/owner/repo/actions/workflows/custom.yml/dispatches", fake.Requests()[0].Path)
}

func TestNewUploader(t *testing.T) {
	uploader, err := NewUploader("", Options{}, "")
	require.NoError(t, err)
	assert.IsType(t, &ContentsUploader{}, uploader)
	assert.Equal(t, Contents, uploader.Strategy())

	uploader, err = NewUploader(Dispatch, Options{}, "")
	require.NoError(t, err)
	assert.Equal(t, Dispatch, uploader.Strategy())

	_, err = NewUploader("ftp", Options{}, "")
	assert.Error(t, err)
}
