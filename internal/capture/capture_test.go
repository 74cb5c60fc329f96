package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTitle(t *testing.T) {
	html := `<html><head><title>Why Go Is Fast - YouTube</title></head><body></body></html>`
	assert.Equal(t, "Why Go Is Fast", parseTitle(html))
}

func TestParseTitle_NoTitle(t *testing.T) {
	assert.Equal(t, "", parseTitle(`<html><body><p>nothing here</p></body></html>`))
	assert.Equal(t, "", parseTitle(""))
}

func TestParseTitle_WhitespaceTrimmed(t *testing.T) {
	html := `<html><head><title>
		  Spaced Out Title
	</title></head></html>`
	assert.Equal(t, "Spaced Out Title", parseTitle(html))
}
