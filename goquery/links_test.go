package goquery_test

import (
	"testing"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkSelector_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links and keeps same origin only", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<a href="/b">B</a>
<a href="c#section">C</a>
<a href="https://other.com/x">Other</a>
<a href="HTTPS://Example.com:443/d">D</a>
</body>
</html>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/a/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/a/c",
			"https://example.com/b",
			"https://example.com/d",
		}, links)
	})

	t.Run("deduplicates links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/b">one</a><a href="/b#top">two</a><a href="https://example.com/b">three</a>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/b"}, links)
	})

	t.Run("skips non-http links and keeps nofollow links", func(t *testing.T) {
		t.Parallel()

		html := `
<a href="javascript:void(0)">js</a>
<a href="mailto:a@example.com">mail</a>
<a href="tel:+123">tel</a>
<a href="/private" rel="Nofollow noopener">private</a>
<a href="/public">public</a>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/private", "https://example.com/public"}, links)
	})

	t.Run("honors base element", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><base href="/docs/"></head><body><a href="intro">Intro</a></body></html>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/index.html")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/docs/intro"}, links)
	})

	t.Run("skips malformed hrefs", func(t *testing.T) {
		t.Parallel()

		html := `<a href="http://[::1">bad</a><a href="/ok">ok</a>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/ok"}, links)
	})

	t.Run("returns empty for page without links", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewLinkSelector().ExtractLinks("<p>nothing</p>", "https://example.com/")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewLinkSelector().ExtractLinks("<a href='/x'>x</a>", "not a url")

		assert.Equal(t, cannibal.EINVALID, cannibal.ErrorCode(err))
	})
}
