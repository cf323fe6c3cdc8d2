package forum

import (
	"sort"
	"time"

	"github.com/rei-collective/community/backend/internal/models"
)

// HotScore is the time-decayed net-vote ranking used for the main feed:
// (upvotes - downvotes) / max(hoursSinceCreated, 1).
func HotScore(p models.Post, now time.Time) float64 {
	hours := now.Sub(p.CreatedAt).Hours()
	if hours < 1 {
		hours = 1
	}
	return float64(p.Upvotes-p.Downvotes) / hours
}

// SortFeed orders posts in place: pinned posts first regardless of score, then
// descending hot score within each partition.
func SortFeed(posts []models.Post, now time.Time) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Pinned != posts[j].Pinned {
			return posts[i].Pinned
		}
		return HotScore(posts[i], now) > HotScore(posts[j], now)
	})
}
