package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	in := `<p onclick="steal()">Hello <strong>world</strong><script>alert(1)</script></p>`
	out := Sanitize(in)

	assert.Contains(t, out, "<strong>world</strong>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
	assert.Equal(t, "", Sanitize("   "))
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("Hi **there**\n\n<img src=x onerror=alert(1)>")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>there</strong>")
	assert.NotContains(t, out, "onerror")

	out, err = RenderMarkdown("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
