// Package with static files
package web

import "embed"

var (
	//go:embed css/* js/*
	StaticFiles embed.FS
)
