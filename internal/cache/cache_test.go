package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirescope/hirescope/internal/model"
)

func TestSetThenGetRoundtrip(t *testing.T) {
	c := New(DefaultTTL)
	criteria := model.SearchCriteria{Keywords: "engineer", Location: "Austin, TX", Distance: "25"}
	result := model.SearchResult{TotalFound: 3}

	c.Set("jobs", criteria, result)

	got, ok := c.Get("jobs", criteria)
	require.True(t, ok)
	assert.Equal(t, result, got.(model.SearchResult))
}

func TestExpiredEntryIsEvictedOnRead(t *testing.T) {
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	c := New(15 * time.Minute)
	c.now = func() time.Time { return clock }

	c.Set("jobs", "params", "payload")
	require.Equal(t, 1, c.Len())

	clock = clock.Add(15*time.Minute + time.Second)
	_, ok := c.Get("jobs", "params")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "stale entry should be deleted by the read that found it")
}

func TestEntryVisibleJustInsideTTL(t *testing.T) {
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	c := New(15 * time.Minute)
	c.now = func() time.Time { return clock }

	c.Set("jobs", "params", "payload")
	clock = clock.Add(15 * time.Minute)
	_, ok := c.Get("jobs", "params")
	assert.True(t, ok)
}

func TestKeyIsCanonicalAcrossFieldOrder(t *testing.T) {
	a := map[string]any{"keywords": "engineer", "location": "Austin", "distance": "25"}
	b := map[string]any{"distance": "25", "location": "Austin", "keywords": "engineer"}

	assert.Equal(t, Key("jobs", a), Key("jobs", b))

	c := New(DefaultTTL)
	c.Set("jobs", a, "payload")
	got, ok := c.Get("jobs", b)
	require.True(t, ok)
	assert.Equal(t, "payload", got)
}

func TestNamespacesDoNotCollide(t *testing.T) {
	c := New(DefaultTTL)
	c.Set("jobs", "k", "search payload")
	c.Set("matches", "k", "match payload")

	got, ok := c.Get("jobs", "k")
	require.True(t, ok)
	assert.Equal(t, "search payload", got)

	got, ok = c.Get("matches", "k")
	require.True(t, ok)
	assert.Equal(t, "match payload", got)
}

func TestClear(t *testing.T) {
	c := New(DefaultTTL)
	c.Set("jobs", "a", 1)
	c.Set("jobs", "b", 2)
	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("jobs", "a")
	assert.False(t, ok)
}
