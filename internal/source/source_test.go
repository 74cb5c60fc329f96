package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptedShapes(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://youtube.com/embed/abc-123_XYZ",
	}

	for _, url := range valid {
		assert.NoError(t, Validate(url), "expected %s to be accepted", url)
	}
}

func TestValidate_RejectedShapes(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"not-a-url",
		"https://example.com",
		"https://youtube.com",
		"https://www.youtube.com/watch",
		"http://www.youtube.com/watch?v=dQw4w9WgXcQ", // https only
		"https://vimeo.com/12345",
	}

	for _, url := range invalid {
		assert.Error(t, Validate(url), "expected %s to be rejected", url)
	}
}

func TestVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://youtu.be/abc-123":                    "abc-123",
		"https://www.youtube.com/embed/xyz_789":       "xyz_789",
	}

	for url, want := range cases {
		id, ok := VideoID(url)
		require.True(t, ok, "expected id from %s", url)
		assert.Equal(t, want, id)
	}

	_, ok := VideoID("https://example.com")
	assert.False(t, ok)
}
