package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashURL_Deterministic(t *testing.T) {
	a := HashURL("https://scontent.fbcdn.net/a.jpg")
	b := HashURL("https://scontent.fbcdn.net/a.jpg")
	c := HashURL("https://scontent.fbcdn.net/b.jpg")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t,
		"https://scontent.fbcdn.net/Photo.jpg?x=1",
		NormalizeURL("  HTTPS://SContent.FBCDN.net/Photo.jpg?x=1#frag "),
	)
}

func TestToAbsoluteURL(t *testing.T) {
	base, err := url.Parse("https://www.facebook.com/terrastationvn/photos_albums")
	require.NoError(t, err)

	abs, err := ToAbsoluteURL(base, "/terrastationvn/photos/a.123/")
	require.NoError(t, err)
	assert.Equal(t, "https://www.facebook.com/terrastationvn/photos/a.123/", abs)

	abs, err = ToAbsoluteURL(base, "https://cdn.example.com/x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/x.jpg", abs)
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "1234567", DigitsOnly("/terrastationvn/photos/a.1234/567/"))
	assert.Equal(t, "", DigitsOnly("/photos/a.x/"))
}
