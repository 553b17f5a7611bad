package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v61/github"

	"sirherobrine23.com.br/go-bds/imagegen/modules/artifact"
)

// Workflow file in target repository
const DefaultWorkflow = "upload-from-generator.yml"

// DispatchUploader trigger workflow_dispatch, workflow commit the file.
// The workflow is expected to write file in target folder.
type DispatchUploader struct {
	Options  Options
	Workflow string
}

var _ Uploader = &DispatchUploader{}

func (u *DispatchUploader) Strategy() Strategy { return Dispatch }

func (u *DispatchUploader) Upload(ctx context.Context, art *artifact.Artifact, target Target) (*Result, error) {
	if art == nil {
		return nil, ErrNoArtifact
	}

	client, err := NewClient(u.Options, target.Token)
	if err != nil {
		return nil, err
	}

	workflow := u.Workflow
	if workflow == "" {
		workflow = DefaultWorkflow
	}

	resp, err := client.Actions.CreateWorkflowDispatchEventByFileName(ctx, target.Owner, target.Repository, workflow, gh.CreateWorkflowDispatchEventRequest{
		Ref: target.Branch,
		Inputs: map[string]any{
			"filename":       art.Filename,
			"content_base64": art.Base64(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTriggerFailed, statusError(resp, err))
	}

	return &Result{
		Strategy:   Dispatch,
		Owner:      target.Owner,
		Repository: target.Repository,
		Branch:     target.Branch,
		Path:       target.Path(art.Filename),
	}, nil
}
