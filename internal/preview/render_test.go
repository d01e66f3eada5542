package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_HTML(t *testing.T) {
	t.Run("highlights known file types", func(t *testing.T) {
		r := NewRenderer("github", true)
		out := r.HTML("main.py", "def f():\n    return 1\n")

		assert.Contains(t, out, "<html")
		assert.Contains(t, out, "return")
	})

	t.Run("unknown extension still renders", func(t *testing.T) {
		r := NewRenderer("github", false)
		out := r.HTML("weird.zzz", "some opaque text\n")

		assert.Contains(t, out, "some opaque text")
	})

	t.Run("unknown style falls back", func(t *testing.T) {
		r := NewRenderer("no-such-style", false)
		out := r.HTML("main.go", "package main\n")

		assert.Contains(t, out, "package")
	})

	t.Run("output equals input text stripped of markup", func(t *testing.T) {
		// The compiled text must always survive into the page, even when
		// the source has characters that need escaping.
		r := NewRenderer("github", false)
		out := r.HTML("x.txt", "a < b && c > d\n")

		assert.True(t, strings.Contains(out, "&lt;") || strings.Contains(out, "a < b"))
	})
}

func TestPlainHTML(t *testing.T) {
	out := plainHTML("t.py", "x < y")
	assert.Contains(t, out, "<pre>")
	assert.Contains(t, out, "x &lt; y")
	assert.NotContains(t, out, "x < y")
}
