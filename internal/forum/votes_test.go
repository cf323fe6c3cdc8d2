package forum

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rei-collective/community/backend/internal/models"
	"github.com/rei-collective/community/backend/internal/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("community_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	assert.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Vote{})
	assert.NoError(t, err)

	return db
}

func seedPost(t *testing.T, db *gorm.DB) (models.User, models.Post) {
	t.Helper()
	user := models.User{Username: "gator", Email: "gator@example.com", Password: "x"}
	assert.NoError(t, db.Create(&user).Error)

	post := models.Post{Title: "First flip in Tampa", Body: "numbers inside", AuthorID: user.ID}
	assert.NoError(t, db.Create(&post).Error)
	return user, post
}

func TestCastPostVoteToggleOff(t *testing.T) {
	db := setupTestDB(t)
	user, post := seedPost(t, db)

	res, err := CastPostVote(db, post.ID, user.ID, models.VoteUp)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Upvotes)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, StateUpvote, res.State)

	// Same arrow again retracts the vote and restores the counter
	res, err = CastPostVote(db, post.ID, user.ID, models.VoteUp)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.Upvotes)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, StateNone, res.State)

	var count int64
	db.Model(&models.Vote{}).Where("user_id = ? AND post_id = ?", user.ID, post.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCastPostVoteSwitch(t *testing.T) {
	db := setupTestDB(t)
	user, post := seedPost(t, db)

	res, err := CastPostVote(db, post.ID, user.ID, models.VoteUp)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Score)

	// Switching direction moves both counters atomically: net change of -2
	res, err = CastPostVote(db, post.ID, user.ID, models.VoteDown)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.Upvotes)
	assert.Equal(t, 1, res.Downvotes)
	assert.Equal(t, -1, res.Score)
	assert.Equal(t, StateDownvote, res.State)

	var votes []models.Vote
	db.Where("user_id = ? AND post_id = ?", user.ID, post.ID).Find(&votes)
	assert.Len(t, votes, 1)
	assert.Equal(t, models.VoteDown, votes[0].VoteType)
}

func TestCastPostVoteMissingPost(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedPost(t, db)

	_, err := CastPostVote(db, 9999, user.ID, models.VoteUp)
	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestCastPostVoteRejectsBadType(t *testing.T) {
	db := setupTestDB(t)
	user, post := seedPost(t, db)

	_, err := CastPostVote(db, post.ID, user.ID, 0)
	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))

	// No row written, counters unchanged
	var count int64
	db.Model(&models.Vote{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCastCommentVoteToggle(t *testing.T) {
	db := setupTestDB(t)
	user, post := seedPost(t, db)

	comment := models.Comment{Body: "what were your holding costs?", PostID: post.ID, AuthorID: user.ID}
	assert.NoError(t, db.Create(&comment).Error)

	res, err := CastCommentVote(db, comment.ID, user.ID, models.VoteDown)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Downvotes)
	assert.Equal(t, -1, res.Score)
	assert.Equal(t, StateDownvote, res.State)

	res, err = CastCommentVote(db, comment.ID, user.ID, models.VoteDown)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.Downvotes)
	assert.Equal(t, StateNone, res.State)
}

func TestVoteRowUniquePerSubject(t *testing.T) {
	db := setupTestDB(t)
	user, post := seedPost(t, db)

	// One user voting on two different comments is two legitimate rows even
	// though both carry post_id = 0
	c1 := models.Comment{Body: "comps?", PostID: post.ID, AuthorID: user.ID}
	c2 := models.Comment{Body: "rehab budget?", PostID: post.ID, AuthorID: user.ID}
	assert.NoError(t, db.Create(&c1).Error)
	assert.NoError(t, db.Create(&c2).Error)
	assert.NoError(t, db.Create(&models.Vote{UserID: user.ID, CommentID: c1.ID, VoteType: models.VoteUp}).Error)
	assert.NoError(t, db.Create(&models.Vote{UserID: user.ID, CommentID: c2.ID, VoteType: models.VoteUp}).Error)

	// A second row for the same (user, post) pair is rejected by the index
	assert.NoError(t, db.Create(&models.Vote{UserID: user.ID, PostID: post.ID, VoteType: models.VoteUp}).Error)
	err := db.Create(&models.Vote{UserID: user.ID, PostID: post.ID, VoteType: models.VoteDown}).Error
	assert.Error(t, err)
}

func TestVotesFromTwoUsersAccumulate(t *testing.T) {
	db := setupTestDB(t)
	user, post := seedPost(t, db)

	other := models.User{Username: "flipper", Email: "flipper@example.com", Password: "x"}
	assert.NoError(t, db.Create(&other).Error)

	_, err := CastPostVote(db, post.ID, user.ID, models.VoteUp)
	assert.NoError(t, err)
	res, err := CastPostVote(db, post.ID, other.ID, models.VoteUp)
	assert.NoError(t, err)

	assert.Equal(t, 2, res.Upvotes)
	assert.Equal(t, 2, res.Score)
}
