package github

import (
	"fmt"
	"path"
	"strings"
)

const (
	DefaultBranch = "main"
	DefaultFolder = "images"
)

// Where generated image is committed
type Target struct {
	Owner      string `json:"owner"`
	Repository string `json:"repository"`
	Branch     string `json:"branch"`
	Folder     string `json:"folder"`
	Message    string `json:"message,omitempty"`
	Token      string `json:"-"` // Bearer token, empty send request without Authorization
}

// ParseRepository split owner/repo
func ParseRepository(value string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(value), "/")
	owner, repo = strings.TrimSpace(owner), strings.TrimSpace(repo)
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, value)
	}
	return owner, repo, nil
}

// NewTarget from user input, empty branch and folder use defaults.
// Folder "/" uploads to repository root.
func NewTarget(repository, branch, folder, message string) (Target, error) {
	owner, repo, err := ParseRepository(repository)
	if err != nil {
		return Target{}, err
	}
	if branch = strings.TrimSpace(branch); branch == "" {
		branch = DefaultBranch
	}
	if folder = strings.TrimSpace(folder); folder == "" {
		folder = DefaultFolder
	}
	folder = cleanFolder(folder)
	return Target{
		Owner:      owner,
		Repository: repo,
		Branch:     branch,
		Folder:     folder,
		Message:    strings.TrimSpace(message),
	}, nil
}

func cleanFolder(folder string) string { return strings.Trim(strings.TrimSpace(folder), "/") }

// Path of file in repository
func (target Target) Path(filename string) string {
	if folder := cleanFolder(target.Folder); folder != "" {
		return path.Join(folder, filename)
	}
	return filename
}

// CommitMessage return message or default message to file
func (target Target) CommitMessage(filename string) string {
	if target.Message != "" {
		return target.Message
	}
	return fmt.Sprintf("Add generated image %s", filename)
}

func (target Target) FullName() string { return target.Owner + "/" + target.Repository }
