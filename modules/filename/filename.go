// Generated image file names
package filename

import (
	"fmt"
	"regexp"
	"time"
)

// Clock used by [New], replace in tests
var Now func() time.Time = time.Now

var nameMatch = regexp.MustCompile(`^gen_\d{8}_\d{6}_\d{3}\.png$`)

// Format returns gen_YYYYMMDD_HHMMSS_mmm.png from UTC fields of t.
//
// Two names made in same millisecond are equal.
func Format(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("gen_%04d%02d%02d_%02d%02d%02d_%03d.png",
		t.Year(), int(t.Month()), t.Day(),
		t.Hour(), t.Minute(), t.Second(),
		t.Nanosecond()/int(time.Millisecond),
	)
}

// New file name from current time
func New() string { return Format(Now()) }

// Valid reports whether name was made by [Format]
func Valid(name string) bool { return nameMatch.MatchString(name) }
