package extractor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPhotoStrategy() CDNPhotoStrategy {
	return CDNPhotoStrategy{Pattern: "fbcdn", Exclude: []string{"profile", "icon"}}
}

func TestCDNPhotoStrategy_SkipsChrome(t *testing.T) {
	doc, err := ParseDocument([]byte(`<html><body>
<img src="https://xyz.fbcdn/profile_icon.png" alt="Terra Station">
<img src="https://xyz.fbcdn/photo1.jpg" alt="Birthday">
</body></html>`))
	require.NoError(t, err)

	photos := defaultPhotoStrategy().Photos(doc, nil, RandomIDs{})

	require.Len(t, photos, 1)
	assert.Contains(t, photos[0].Src, "photo1.jpg")
	assert.Equal(t, "https://xyz.fbcdn/photo1.jpg", photos[0].Src)
	assert.Equal(t, "Birthday", photos[0].Caption)
	assert.NotEmpty(t, photos[0].ID)
}

func TestCDNPhotoStrategy_FiltersNonCDNAndExcluded(t *testing.T) {
	doc, err := ParseDocument([]byte(`<html><body>
<img src="https://static.example.com/logo.png">
<img src="https://scontent.fbcdn.net/icons/like.png">
<img src="">
<img alt="no source">
<img src="https://scontent.fbcdn.net/p1.jpg">
<img src="https://scontent.fbcdn.net/p2.jpg" alt="  Page two  ">
</body></html>`))
	require.NoError(t, err)

	photos := defaultPhotoStrategy().Photos(doc, nil, RandomIDs{})

	require.Len(t, photos, 2)
	assert.Empty(t, photos[0].Caption)
	assert.Equal(t, "Page two", photos[1].Caption)
}

func TestCDNPhotoStrategy_RandomIDsAreDistinctUUIDs(t *testing.T) {
	doc, err := ParseDocument([]byte(`<html><body>
<img src="https://scontent.fbcdn.net/p1.jpg">
<img src="https://scontent.fbcdn.net/p1.jpg">
<img src="https://scontent.fbcdn.net/p3.jpg">
</body></html>`))
	require.NoError(t, err)

	photos := PhotoChain{defaultPhotoStrategy()}.Photos(doc, nil, RandomIDs{})
	require.Len(t, photos, 3)

	seen := map[string]bool{}
	for _, p := range photos {
		_, err := uuid.Parse(p.ID)
		assert.NoError(t, err, "id %q should be a UUID", p.ID)
		assert.False(t, seen[p.ID], "duplicate id %q", p.ID)
		seen[p.ID] = true
	}
}

func TestPhotoChain_NoMatches(t *testing.T) {
	doc, err := ParseDocument([]byte(`<html><body><img src="/spinner.gif"></body></html>`))
	require.NoError(t, err)

	assert.Empty(t, PhotoChain{defaultPhotoStrategy()}.Photos(doc, nil, RandomIDs{}))
}
