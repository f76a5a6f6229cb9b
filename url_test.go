package cannibal_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/cannibal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	t.Parallel()

	t.Run("accepts absolute http URL", func(t *testing.T) {
		t.Parallel()

		u, err := cannibal.ParseSeed(" HTTPS://Example.com:443/docs#intro ")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/docs", u.String())
	})

	for _, raw := range []string{"", "example.com/page", "/relative", "ftp://example.com/file", "http://"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			t.Parallel()

			_, err := cannibal.ParseSeed(raw)

			require.Error(t, err)
			assert.Equal(t, cannibal.EINVALID, cannibal.ErrorCode(err))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.com/blog/post")
	require.NoError(t, err)

	tests := []struct {
		href string
		want string
	}{
		{href: "other", want: "https://example.com/blog/other"},
		{href: "/about#team", want: "https://example.com/about"},
		{href: "https://EXAMPLE.com", want: "https://example.com/"},
		{href: "//cdn.example.com/x", want: "https://cdn.example.com/x"},
		{href: "mailto:hi@example.com", want: ""},
		{href: "javascript:void(0)", want: ""},
		{href: "", want: ""},
		{href: "http://[::1", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cannibal.NormalizeURL(base, tt.href), tt.href)
	}
}

func TestSameOrigin(t *testing.T) {
	t.Parallel()

	assert.True(t, cannibal.SameOrigin("https://example.com/a", "https://EXAMPLE.com:443/b"))
	assert.False(t, cannibal.SameOrigin("https://example.com/a", "http://example.com/a"))
	assert.False(t, cannibal.SameOrigin("https://example.com/a", "https://example.com:8443/a"))
	assert.False(t, cannibal.SameOrigin("https://example.com/a", "https://sub.example.com/a"))
	assert.False(t, cannibal.SameOrigin("not a url", "not a url"))
}

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter matches everything", func(t *testing.T) {
		t.Parallel()

		var f *cannibal.URLFilter
		assert.True(t, f.Match("https://example.com/anything"))
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		t.Parallel()

		f, err := cannibal.NewURLFilter([]string{`/blog/`}, []string{`/blog/tag/`})
		require.NoError(t, err)

		assert.True(t, f.Match("https://example.com/blog/post"))
		assert.False(t, f.Match("https://example.com/blog/tag/seo"))
		assert.False(t, f.Match("https://example.com/shop"))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := cannibal.NewURLFilter([]string{"("}, nil)

		assert.Equal(t, cannibal.EINVALID, cannibal.ErrorCode(err))
	})

	t.Run("no patterns returns nil filter", func(t *testing.T) {
		t.Parallel()

		f, err := cannibal.NewURLFilter(nil, nil)

		require.NoError(t, err)
		assert.Nil(t, f)
	})
}
