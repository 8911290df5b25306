package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseImageSize(t *testing.T) {

	// Fail
	for _, input := range []string{"", "a lot", "MB117", "-5MB"} {
		size, ok := ParseImageSize(input)
		assert.False(t, ok, input)
		assert.Equal(t, uint64(0), size, input)
	}

	// OK, decimal units as printed by crictl
	cases := map[string]uint64{
		"117MB":   117_000_000,
		"117 MB":  117_000_000,
		"28.5MB":  28_500_000,
		"1.24GB":  1_240_000_000,
		"745kB":   745_000,
		"55.4MiB": 58_091_110,
		"0B":      0,
	}
	for input, want := range cases {
		size, ok := ParseImageSize(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, size, input)
	}
}

func TestFormatImageSize(t *testing.T) {

	assert.Equal(t, "117MB", FormatImageSize(117_000_000))
	assert.Equal(t, "1.2GB", FormatImageSize(1_240_000_000))
	assert.Equal(t, "745kB", FormatImageSize(745_000))
	assert.Equal(t, "0B", FormatImageSize(0))

	// round trip preserves the order of magnitude
	size, ok := ParseImageSize("117MB")
	assert.True(t, ok)
	assert.Equal(t, "117MB", FormatImageSize(size))
}

func TestDurationOr(t *testing.T) {

	assert.Equal(t, 30*time.Second, DurationOr("", 30*time.Second))
	assert.Equal(t, 30*time.Second, DurationOr("later", 30*time.Second))
	assert.Equal(t, 5*time.Minute, DurationOr("5m", time.Second))

	assert.Equal(t, 10, IntOr("10", 4))
	assert.Equal(t, 4, IntOr("many", 4))
}
