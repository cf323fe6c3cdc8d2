package forum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rei-collective/community/backend/internal/models"
)

func commentAt(id int, parent *int, t time.Time) models.Comment {
	return models.Comment{ID: id, PostID: 1, Body: "c", ParentCommentID: parent, CreatedAt: t}
}

func TestBuildCommentTreeNesting(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c2 := 2

	// C1 top-level, C2 replies to C1, C3 replies to C2
	flat := []models.Comment{
		commentAt(3, &c2, base.Add(2*time.Minute)),
		commentAt(1, nil, base),
		commentAt(2, intPtr(1), base.Add(time.Minute)),
	}

	tree := BuildCommentTree(flat)
	assert.Len(t, tree, 1)
	assert.Equal(t, 1, tree[0].ID)
	assert.Len(t, tree[0].Replies, 1)
	assert.Equal(t, 2, tree[0].Replies[0].ID)
	assert.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, 3, tree[0].Replies[0].Replies[0].ID)
}

func TestBuildCommentTreeOrdering(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	flat := []models.Comment{
		commentAt(30, nil, base.Add(2*time.Hour)),
		commentAt(10, nil, base),
		commentAt(20, nil, base.Add(time.Hour)),
		commentAt(41, intPtr(10), base.Add(3*time.Hour)),
		commentAt(40, intPtr(10), base.Add(30*time.Minute)),
	}

	tree := BuildCommentTree(flat)
	assert.Len(t, tree, 3)

	// Top-level oldest first
	assert.Equal(t, []int{10, 20, 30}, []int{tree[0].ID, tree[1].ID, tree[2].ID})

	// Replies under a parent oldest first too
	assert.Len(t, tree[0].Replies, 2)
	assert.Equal(t, 40, tree[0].Replies[0].ID)
	assert.Equal(t, 41, tree[0].Replies[1].ID)

	for i := 1; i < len(tree); i++ {
		assert.False(t, tree[i].CreatedAt.Before(tree[i-1].CreatedAt))
	}
}

func TestBuildCommentTreeRoundTrip(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	flat := []models.Comment{
		commentAt(1, nil, base),
		commentAt(2, intPtr(1), base.Add(time.Minute)),
		commentAt(3, intPtr(2), base.Add(2*time.Minute)),
		commentAt(4, nil, base.Add(3*time.Minute)),
		commentAt(5, intPtr(1), base.Add(4*time.Minute)),
	}

	first := BuildCommentTree(flat)
	second := BuildCommentTree(Flatten(first))
	assert.Equal(t, first, second)
}

func TestBuildCommentTreeIsPure(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	flat := []models.Comment{
		commentAt(2, nil, base.Add(time.Minute)),
		commentAt(1, nil, base),
	}

	BuildCommentTree(flat)

	// Input order untouched
	assert.Equal(t, 2, flat[0].ID)
	assert.Equal(t, 1, flat[1].ID)
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	tree := BuildCommentTree(nil)
	assert.NotNil(t, tree)
	assert.Len(t, tree, 0)
}

func TestBuildCommentTreeDanglingParent(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	missing := 99

	tree := BuildCommentTree([]models.Comment{commentAt(1, &missing, base)})
	assert.Len(t, tree, 1)
	assert.Equal(t, 1, tree[0].ID)
}

func intPtr(v int) *int { return &v }
