package forum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rei-collective/community/backend/internal/models"
)

func TestHotScoreDecay(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh := models.Post{Upvotes: 10, CreatedAt: now.Add(-1 * time.Hour)}
	old := models.Post{Upvotes: 10, CreatedAt: now.Add(-10 * time.Hour)}

	assert.Greater(t, HotScore(fresh, now), HotScore(old, now))
	assert.InDelta(t, 1.0, HotScore(old, now), 0.001)
}

func TestHotScoreClampsYoungPosts(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Anything younger than an hour divides by 1, not by a tiny fraction
	justPosted := models.Post{Upvotes: 4, Downvotes: 1, CreatedAt: now.Add(-5 * time.Minute)}
	assert.InDelta(t, 3.0, HotScore(justPosted, now), 0.001)
}

func TestSortFeedPinnedFirst(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Pinned post with a negative score still beats a hot unpinned one
	a := models.Post{ID: 1, Pinned: true, Downvotes: 5, CreatedAt: now.Add(-2 * time.Hour)}
	b := models.Post{ID: 2, Upvotes: 100, CreatedAt: now.Add(-2 * time.Hour)}

	posts := []models.Post{b, a}
	SortFeed(posts, now)

	assert.Equal(t, 1, posts[0].ID)
	assert.Equal(t, 2, posts[1].ID)
}

func TestSortFeedByScoreWithinPartition(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	low := models.Post{ID: 1, Upvotes: 1, CreatedAt: now.Add(-2 * time.Hour)}
	high := models.Post{ID: 2, Upvotes: 50, CreatedAt: now.Add(-2 * time.Hour)}
	pinnedLow := models.Post{ID: 3, Pinned: true, Upvotes: 1, CreatedAt: now.Add(-2 * time.Hour)}
	pinnedHigh := models.Post{ID: 4, Pinned: true, Upvotes: 9, CreatedAt: now.Add(-2 * time.Hour)}

	posts := []models.Post{low, pinnedLow, high, pinnedHigh}
	SortFeed(posts, now)

	ids := []int{posts[0].ID, posts[1].ID, posts[2].ID, posts[3].ID}
	assert.Equal(t, []int{4, 3, 2, 1}, ids)
}
