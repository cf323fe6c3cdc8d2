package forum

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rei-collective/community/backend/internal/models"
	"github.com/rei-collective/community/backend/internal/utils"
)

// Vote states returned to the caller after a toggle.
const (
	StateNone     = "none"
	StateUpvote   = "upvote"
	StateDownvote = "downvote"
)

// VoteResult is the subject's counters after the toggle, plus the caller's
// resulting vote state.
type VoteResult struct {
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
	Score     int    `json:"score"`
	State     string `json:"vote_state"`
}

func stateName(voteType int) string {
	if voteType == models.VoteUp {
		return StateUpvote
	}
	return StateDownvote
}

// CastPostVote applies the toggle contract for a post vote in a single
// transaction: no existing vote inserts one, the same type retracts it, the
// opposite type switches it in place. The post's denormalized counters are
// updated in the same transaction, under a row lock, so two rapid toggles from
// the same user cannot produce an inconsistent counter.
func CastPostVote(db *gorm.DB, postID, userID, voteType int) (*VoteResult, error) {
	if voteType != models.VoteUp && voteType != models.VoteDown {
		return nil, utils.NewValidationError("Vote type must be -1 or 1")
	}

	var result VoteResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("Post")
			}
			return utils.NewStoreError("Failed to load post", err)
		}

		var existing models.Vote
		findErr := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error

		switch {
		case findErr == nil && existing.VoteType == voteType:
			// Same arrow clicked twice — retract
			if err := tx.Delete(&existing).Error; err != nil {
				return utils.NewStoreError("Failed to remove vote", err)
			}
			applyDelta(&post.Upvotes, &post.Downvotes, voteType, -1)
			result.State = StateNone

		case findErr == nil:
			// Opposite arrow — switch in place
			existing.VoteType = voteType
			if err := tx.Save(&existing).Error; err != nil {
				return utils.NewStoreError("Failed to update vote", err)
			}
			applyDelta(&post.Upvotes, &post.Downvotes, -voteType, -1)
			applyDelta(&post.Upvotes, &post.Downvotes, voteType, +1)
			result.State = stateName(voteType)

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			vote := models.Vote{UserID: userID, PostID: postID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return utils.NewStoreError("Failed to record vote", err)
			}
			applyDelta(&post.Upvotes, &post.Downvotes, voteType, +1)
			result.State = stateName(voteType)

		default:
			return utils.NewStoreError("Failed to look up vote", findErr)
		}

		if err := tx.Model(&post).Select("upvotes", "downvotes").
			Updates(map[string]interface{}{"upvotes": post.Upvotes, "downvotes": post.Downvotes}).Error; err != nil {
			return utils.NewStoreError("Failed to update counters", err)
		}

		result.Upvotes = post.Upvotes
		result.Downvotes = post.Downvotes
		result.Score = post.Upvotes - post.Downvotes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CastCommentVote is the comment-scoped twin of CastPostVote.
func CastCommentVote(db *gorm.DB, commentID, userID, voteType int) (*VoteResult, error) {
	if voteType != models.VoteUp && voteType != models.VoteDown {
		return nil, utils.NewValidationError("Vote type must be -1 or 1")
	}

	var result VoteResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("Comment")
			}
			return utils.NewStoreError("Failed to load comment", err)
		}

		var existing models.Vote
		findErr := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error

		switch {
		case findErr == nil && existing.VoteType == voteType:
			if err := tx.Delete(&existing).Error; err != nil {
				return utils.NewStoreError("Failed to remove vote", err)
			}
			applyDelta(&comment.Upvotes, &comment.Downvotes, voteType, -1)
			result.State = StateNone

		case findErr == nil:
			existing.VoteType = voteType
			if err := tx.Save(&existing).Error; err != nil {
				return utils.NewStoreError("Failed to update vote", err)
			}
			applyDelta(&comment.Upvotes, &comment.Downvotes, -voteType, -1)
			applyDelta(&comment.Upvotes, &comment.Downvotes, voteType, +1)
			result.State = stateName(voteType)

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			vote := models.Vote{UserID: userID, CommentID: commentID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return utils.NewStoreError("Failed to record vote", err)
			}
			applyDelta(&comment.Upvotes, &comment.Downvotes, voteType, +1)
			result.State = stateName(voteType)

		default:
			return utils.NewStoreError("Failed to look up vote", findErr)
		}

		if err := tx.Model(&comment).Select("upvotes", "downvotes").
			Updates(map[string]interface{}{"upvotes": comment.Upvotes, "downvotes": comment.Downvotes}).Error; err != nil {
			return utils.NewStoreError("Failed to update counters", err)
		}

		result.Upvotes = comment.Upvotes
		result.Downvotes = comment.Downvotes
		result.Score = comment.Upvotes - comment.Downvotes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// applyDelta shifts the counter matching voteType by delta, clamping at zero
// so a reconciliation bug can never render negative counts.
func applyDelta(upvotes, downvotes *int, voteType, delta int) {
	target := upvotes
	if voteType == models.VoteDown {
		target = downvotes
	}
	*target += delta
	if *target < 0 {
		*target = 0
	}
}
