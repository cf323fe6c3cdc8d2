package forum

import (
	"sort"

	"github.com/rei-collective/community/backend/internal/models"
)

// CommentNode is a comment with its direct replies attached. Depth is
// unbounded; the client indents as deep as the data goes.
type CommentNode struct {
	models.Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree partitions a flat comment list into a thread: top-level
// comments (nil parent) in ascending creation order, each with its replies
// attached recursively, replies also oldest-first. The function is pure — the
// input slice is never mutated — and idempotent for a given input.
//
// Nodes are held in an arena indexed by comment ID so attaching replies is a
// single pass instead of a rescan per level.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	ordered := make([]models.Comment, len(comments))
	copy(ordered, comments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	arena := make(map[int]*CommentNode, len(ordered))
	for i := range ordered {
		arena[ordered[i].ID] = &CommentNode{Comment: ordered[i], Replies: []*CommentNode{}}
	}

	var roots []*CommentNode
	for i := range ordered {
		node := arena[ordered[i].ID]
		if ordered[i].ParentCommentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := arena[*ordered[i].ParentCommentID]
		if !ok {
			// Dangling parent reference — surface the comment at top level
			// rather than dropping it.
			roots = append(roots, node)
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	if roots == nil {
		roots = []*CommentNode{}
	}
	return roots
}

// Flatten walks a tree back into a flat, depth-first list. Mostly useful for
// round-trip checks and for clients that render indentation themselves.
func Flatten(nodes []*CommentNode) []models.Comment {
	var out []models.Comment
	var walk func([]*CommentNode)
	walk = func(ns []*CommentNode) {
		for _, n := range ns {
			out = append(out, n.Comment)
			walk(n.Replies)
		}
	}
	walk(nodes)
	return out
}
