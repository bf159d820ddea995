package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocator(t *testing.T) {
	u, err := ParseLocator("  https://example.com/art/cover.jpg ")
	require.NoError(t, err)
	assert.Equal(t, "example.com", u.Host)
	assert.Equal(t, "/art/cover.jpg", u.Path)

	for _, raw := range []string{"", "cover.jpg", "/art/cover.jpg", "ftp://example.com/a.png", "https:///a.png", "http://[::1"} {
		_, err := ParseLocator(raw)
		assert.Error(t, err, raw)
	}
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512B", HumanSize(512))
	assert.Equal(t, "2.0KB", HumanSize(2048))
	assert.Equal(t, "1.5MB", HumanSize(1024*1024*3/2))
}
