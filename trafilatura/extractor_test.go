package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/mock"
	"github.com/fwojciec/cannibal/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content without boilerplate", func(t *testing.T) {
		t.Parallel()

		paragraph := strings.Repeat("Running shoes need cushioning and support for long distance training. ", 8)
		html := `<!DOCTYPE html>
<html>
<head><title>Running Shoes</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About navigation</a></nav>
<main>
<article>
<h1>Choosing Running Shoes</h1>
<p>` + paragraph + `</p>
<p>` + paragraph + `</p>
</article>
</main>
<footer>Copyright footer boilerplate</footer>
</body>
</html>`

		text, err := trafilatura.NewTextExtractor(nil).ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "Running shoes need cushioning")
		assert.NotContains(t, text, "Copyright footer boilerplate")
		assert.NotContains(t, text, "\n")
	})

	t.Run("empty document yields empty text", func(t *testing.T) {
		t.Parallel()

		text, err := trafilatura.NewTextExtractor(nil).ExtractText("  ")

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("uses fallback when no main content is found", func(t *testing.T) {
		t.Parallel()

		var called bool
		fallback := &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				called = true
				return "fallback text", nil
			},
		}

		text, err := trafilatura.NewTextExtractor(fallback).ExtractText("<html><body></body></html>")

		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "fallback text", text)
	})

	t.Run("returns parse error without fallback", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewTextExtractor(nil).ExtractText("<html><body></body></html>")

		assert.Equal(t, cannibal.EPARSE, cannibal.ErrorCode(err))
	})
}
