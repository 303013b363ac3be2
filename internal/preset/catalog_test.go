package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogEntriesAreWellFormed(t *testing.T) {
	require.NotEmpty(t, All())

	for key, p := range All() {
		assert.NotEmpty(t, p.Name, "preset %s has no name", key)
		assert.Positive(t, p.Width, "preset %s width", key)
		assert.Positive(t, p.Height, "preset %s height", key)
		assert.NotEmpty(t, p.Platform, "preset %s platform", key)
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("instagram_feed_square")
	require.True(t, ok)
	assert.Equal(t, 1080, p.Width)
	assert.Equal(t, 1080, p.Height)
	assert.Equal(t, "Instagram", p.Platform)

	_, ok = Lookup("no_such_preset")
	assert.False(t, ok)
}

func TestPlatformsDeduplicated(t *testing.T) {
	platforms := Platforms()

	seen := make(map[string]int)
	for _, name := range platforms {
		seen[name]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "platform %s listed more than once", name)
	}

	for _, expected := range []string{"Instagram", "YouTube", "Twitter", "Facebook", "LinkedIn"} {
		assert.Contains(t, platforms, expected)
	}
}

func TestByPlatform(t *testing.T) {
	youtube := ByPlatform("YouTube")
	require.Len(t, youtube, 2)
	for key, p := range youtube {
		assert.Equal(t, "YouTube", p.Platform, "preset %s", key)
	}

	assert.Empty(t, ByPlatform("NoSuchPlatform"))
}
