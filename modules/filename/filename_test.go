package filename

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	at := time.Date(2024, time.January, 15, 9, 30, 45, 123*int(time.Millisecond), time.UTC)
	assert.Equal(t, "gen_20240115_093045_123.png", Format(at))

	// Local time must be converted to UTC
	local := at.In(time.FixedZone("UTC+8", 8*60*60))
	assert.Equal(t, "gen_20240115_093045_123.png", Format(local))

	assert.Equal(t, "gen_20241231_235959_007.png", Format(time.Date(2024, time.December, 31, 23, 59, 59, 7999999, time.UTC)))
}

func TestNewUsesClock(t *testing.T) {
	defer func(old func() time.Time) { Now = old }(Now)
	Now = func() time.Time { return time.Date(2025, time.March, 2, 1, 2, 3, 4*int(time.Millisecond), time.UTC) }
	assert.Equal(t, "gen_20250302_010203_004.png", New())
}

func TestUniqueness(t *testing.T) {
	base := time.Date(2024, time.January, 15, 9, 30, 45, 0, time.UTC)
	seen := map[string]bool{}
	for i := range 2000 {
		name := Format(base.Add(time.Duration(i) * time.Millisecond))
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}

	// Same millisecond collide, accepted
	assert.Equal(t, Format(base.Add(100*time.Microsecond)), Format(base.Add(900*time.Microsecond)))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("gen_20240115_093045_123.png"))
	assert.True(t, Valid(New()))
	for _, name := range []string{"", "gen_2024_093045_123.png", "../gen_20240115_093045_123.png", "gen_20240115_093045_123.jpg", "image.png"} {
		assert.False(t, Valid(name), name)
	}
}
