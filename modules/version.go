package modules

import "time"

var (
	AppVersion string    = "v0.1.0"         // App version, replaced on build with -ldflags
	StartTime  time.Time = time.Now().UTC() // Process start time
)
