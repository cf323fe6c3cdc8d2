package models

import "time"

// Vote direction values. A vote row stores +1 or -1; "none" only exists as a
// response state after a toggle-off.
const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote tracks a single user's vote on a post or a comment. Exactly one of
// PostID/CommentID is non-zero, and at most one row exists per (subject, user):
// the toggle transaction maintains that, and the partial unique indexes below
// enforce it at the store.
type Vote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"index;uniqueIndex:idx_post_voter;uniqueIndex:idx_comment_voter" json:"user_id"`
	PostID    int       `gorm:"index;uniqueIndex:idx_post_voter,where:post_id <> 0" json:"post_id"`          // non-zero for post votes
	CommentID int       `gorm:"index;uniqueIndex:idx_comment_voter,where:comment_id <> 0" json:"comment_id"` // non-zero for comment votes
	VoteType  int       `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
