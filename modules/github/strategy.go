package github

import (
	"fmt"
	"strings"
)

type Strategy string

// Upload strategies, only one is used per upload
const (
	Contents Strategy = "contents" // Create file with Contents API
	Dispatch Strategy = "dispatch" // Trigger workflow_dispatch with file inputs
)

func ParseStrategy(value string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(value))); s {
	case Contents, Dispatch:
		return s, nil
	case "":
		return Contents, nil
	default:
		return "", fmt.Errorf("unknown upload strategy %q, use %q or %q", value, Contents, Dispatch)
	}
}
