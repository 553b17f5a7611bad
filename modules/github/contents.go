package github

import (
	"context"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v61/github"

	"sirherobrine23.com.br/go-bds/imagegen/modules/artifact"
)

// ContentsUploader create file with Contents API and never overwrite existing file
type ContentsUploader struct {
	Options Options
}

var _ Uploader = &ContentsUploader{}

func (u *ContentsUploader) Strategy() Strategy { return Contents }

// Existing return sha of file in path, 404 is reported as not exists
func (u *ContentsUploader) Existing(ctx context.Context, client *gh.Client, target Target, path string) (exists bool, sha string, err error) {
	file, dir, resp, err := client.Repositories.GetContents(ctx, target.Owner, target.Repository, path, &gh.RepositoryContentGetOptions{Ref: target.Branch})
	switch {
	case err != nil && resp != nil && resp.StatusCode == http.StatusNotFound:
		return false, "", nil
	case err != nil:
		return false, "", fmt.Errorf("cannot check %s: %w", path, statusError(resp, err))
	case file != nil:
		return true, file.GetSHA(), nil
	default:
		// Directory with same name
		return dir != nil, "", nil
	}
}

func (u *ContentsUploader) Upload(ctx context.Context, art *artifact.Artifact, target Target) (*Result, error) {
	if art == nil {
		return nil, ErrNoArtifact
	}

	client, err := NewClient(u.Options, target.Token)
	if err != nil {
		return nil, err
	}

	filePath := target.Path(art.Filename)
	exists, _, err := u.Existing(ctx, client, target, filePath)
	if err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: %s/%s", ErrFileExists, target.FullName(), filePath)
	}

	// Create only, sha is not sent
	created, resp, err := client.Repositories.CreateFile(ctx, target.Owner, target.Repository, filePath, &gh.RepositoryContentFileOptions{
		Message: gh.String(target.CommitMessage(art.Filename)),
		Content: art.Payload,
		Branch:  gh.String(target.Branch),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot upload %s: %w", filePath, statusError(resp, err))
	}

	result := &Result{
		Strategy:   Contents,
		Owner:      target.Owner,
		Repository: target.Repository,
		Branch:     target.Branch,
		Path:       filePath,
	}
	if created != nil && created.Content != nil {
		result.SHA = created.Content.GetSHA()
		result.HTMLURL = created.Content.GetHTMLURL()
	}
	return result, nil
}
