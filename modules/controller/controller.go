// Generate and upload flow shared by web dashboard and cli
package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"sirherobrine23.com.br/go-bds/imagegen/modules/artifact"
	"sirherobrine23.com.br/go-bds/imagegen/modules/generator"
	"sirherobrine23.com.br/go-bds/imagegen/modules/github"
	"sirherobrine23.com.br/go-bds/imagegen/modules/history"
)

var (
	ErrBusy       = errors.New("another generate or upload is running")
	ErrNoArtifact = github.ErrNoArtifact
)

type State int

const (
	Idle State = iota
	Generated
	Uploading
	UploadSucceeded
	UploadFailed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Generated:
		return "generated"
	case Uploading:
		return "uploading"
	case UploadSucceeded:
		return "upload_succeeded"
	case UploadFailed:
		return "upload_failed"
	}
	return "unknown"
}

// Recorder save upload outcome
type Recorder interface {
	Add(ctx context.Context, rec *history.Record) error
}

type Controller struct {
	Uploader  github.Uploader
	History   Recorder                    // Optional
	Generator func() *generator.Generator // Default generator.New()
	Timeout   time.Duration               // Upload timeout, zero to no limit
	Logger    *slog.Logger

	busy atomic.Bool

	mtx      sync.RWMutex
	state    State
	filename string
	result   *github.Result
	err      error
}

// Snapshot of controller to show
type Snapshot struct {
	State    string         `json:"state"`
	Status   string         `json:"status"`
	Busy     bool           `json:"busy"`
	Filename string         `json:"filename,omitempty"`
	Result   *github.Result `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func New(uploader github.Uploader, recorder Recorder, timeout time.Duration, logger *slog.Logger) *Controller {
	return &Controller{Uploader: uploader, History: recorder, Timeout: timeout, Logger: logger}
}

func (c *Controller) log() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Controller) acquire() error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (c *Controller) release() { c.busy.Store(false) }

func (c *Controller) setState(state State, filename string, result *github.Result, err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.state, c.result, c.err = state, result, err
	if filename != "" {
		c.filename = filename
	}
}

// Generate new image, allowed from any state while not busy
func (c *Controller) Generate(ctx context.Context) (*artifact.Artifact, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.release()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	newGen := c.Generator
	if newGen == nil {
		newGen = func() *generator.Generator { return generator.New() }
	}

	art, err := artifact.Generate(newGen())
	if err != nil {
		c.log().Error("cannot generate image", "error", err)
		return nil, err
	}
	c.setState(Generated, art.Filename, nil, nil)
	c.log().Info("image generated", "filename", art.Filename, "size", art.Size())
	return art, nil
}

// Upload artifact to target, artifact is required
func (c *Controller) Upload(ctx context.Context, art *artifact.Artifact, target github.Target) (*github.Result, error) {
	if art == nil {
		return nil, ErrNoArtifact
	}
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.release()

	c.setState(Uploading, art.Filename, nil, nil)
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	res, err := c.Uploader.Upload(ctx, art, target)
	c.record(ctx, art, target, res, err)
	if err != nil {
		c.setState(UploadFailed, "", nil, err)
		c.log().Error("upload failed", "filename", art.Filename, "repository", target.FullName(), "error", err)
		return nil, err
	}

	c.setState(UploadSucceeded, "", res, nil)
	c.log().Info("upload done", "path", res.String(), "strategy", res.Strategy)
	return res, nil
}

// Failure to write history is only logged
func (c *Controller) record(ctx context.Context, art *artifact.Artifact, target github.Target, res *github.Result, uploadErr error) {
	if c.History == nil {
		return
	}

	rec := &history.Record{
		Filename:   art.Filename,
		Repository: target.FullName(),
		Branch:     target.Branch,
		Path:       target.Path(art.Filename),
		Size:       int64(len(art.Payload)),
		Strategy:   string(c.Uploader.Strategy()),
		Status:     history.Succeeded,
	}
	if res != nil {
		rec.Path = res.Path
	}
	if uploadErr != nil {
		rec.Status, rec.Error = history.Failed, uploadErr.Error()
	}

	// Upload context may be already expired
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := c.History.Add(ctx, rec); err != nil {
		c.log().Warn("cannot save upload history", "filename", art.Filename, "error", err)
	}
}

func (c *Controller) State() State {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.state
}

func (c *Controller) Busy() bool { return c.busy.Load() }

// Status short text to show to user
func (c *Controller) Status() string {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	switch c.state {
	case Generated:
		return "generated, ready to upload"
	case Uploading:
		return "uploading"
	case UploadSucceeded:
		return "uploaded to " + c.result.String()
	case UploadFailed:
		return "upload failed"
	default:
		return "not generated"
	}
}

func (c *Controller) Snapshot() Snapshot {
	status := c.Status()
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	snap := Snapshot{
		State:    c.state.String(),
		Status:   status,
		Busy:     c.busy.Load(),
		Filename: c.filename,
		Result:   c.result,
	}
	if c.err != nil {
		snap.Error = c.err.Error()
	}
	return snap
}
