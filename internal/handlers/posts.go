package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rei-collective/community/backend/internal/cache"
	"github.com/rei-collective/community/backend/internal/forum"
	"github.com/rei-collective/community/backend/internal/models"
)

type PostHandler struct {
	db *gorm.DB
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{db: db}
}

func postResponse(post models.Post) gin.H {
	return gin.H{
		"id":            post.ID,
		"title":         post.Title,
		"body":          post.Body,
		"topic":         post.Topic,
		"images":        decodeImages(post.Images),
		"author_id":     post.AuthorID,
		"user":          post.User,
		"upvotes":       post.Upvotes,
		"downvotes":     post.Downvotes,
		"score":         post.Upvotes - post.Downvotes,
		"comment_count": post.CommentCount,
		"pinned":        post.Pinned,
		"created_at":    post.CreatedAt,
		"updated_at":    post.UpdatedAt,
	}
}

// GetFeed returns the forum feed: pinned posts first, then hot-ranked. The
// unfiltered feed is cached briefly in Redis; topic-filtered reads go straight
// to the database.
func (h *PostHandler) GetFeed(c *gin.Context) {
	topic := c.Query("topic")

	if topic == "" && cache.Enabled() {
		if cached, err := cache.GetFeed(c.Request.Context()); err == nil && cached != "" {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	query := h.db.Preload("User")
	if topic != "" {
		query = query.Where("topic = ?", topic)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	forum.SortFeed(posts, time.Now())

	responses := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, postResponse(post))
	}

	if topic == "" && cache.Enabled() {
		if payload, err := json.Marshal(responses); err == nil {
			if err := cache.SetFeed(c.Request.Context(), string(payload)); err != nil {
				log.Printf("⚠️ Failed to cache feed: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, responses)
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")
	var post models.Post

	if err := h.db.Preload("User").First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	resp := postResponse(post)

	// Caller's current vote state, if authenticated
	if userID, exists := extractUserID(c); exists {
		var vote models.Vote
		if err := h.db.Where("user_id = ? AND post_id = ?", userID, post.ID).First(&vote).Error; err == nil {
			if vote.VoteType == models.VoteUp {
				resp["vote_state"] = forum.StateUpvote
			} else {
				resp["vote_state"] = forum.StateDownvote
			}
		} else {
			resp["vote_state"] = forum.StateNone
		}

		var saved models.SavedPost
		resp["saved"] = h.db.Where("user_id = ? AND post_id = ?", userID, post.ID).First(&saved).Error == nil
	}

	c.JSON(http.StatusOK, resp)
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	authorID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	post := models.Post{
		Title:    input.Title,
		Body:     input.Body,
		Topic:    input.Topic,
		Images:   encodeImages(input.Images),
		AuthorID: authorID,
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	h.invalidateFeed(c)

	// Reload with user information
	h.db.Preload("User").First(&post, post.ID)

	c.JSON(http.StatusCreated, postResponse(post))
}

// UpdatePost updates an existing post (PROTECTED - requires ownership)
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("id")

	currentUserID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title  string   `json:"title"`
		Body   string   `json:"body"`
		Topic  string   `json:"topic"`
		Images []string `json:"images"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// Check ownership
	if post.AuthorID != currentUserID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Body != "" {
		post.Body = input.Body
	}
	if input.Topic != "" {
		post.Topic = input.Topic
	}
	if input.Images != nil {
		post.Images = encodeImages(input.Images)
	}

	h.db.Save(&post)
	h.invalidateFeed(c)
	h.db.Preload("User").First(&post, post.ID)

	c.JSON(http.StatusOK, postResponse(post))
}

// DeletePost deletes a post and its votes, comments and bookmarks
// (PROTECTED - owner or admin)
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")

	currentUserID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != currentUserID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		var commentIDs []int
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", post.ID).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	h.invalidateFeed(c)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// VotePost handles upvoting/downvoting a post with toggle semantics
// (PROTECTED - requires authentication)
func (h *PostHandler) VotePost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	voterID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		VoteType int `json:"vote_type" binding:"required,oneof=-1 1"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote type must be -1 or 1"})
		return
	}

	result, err := forum.CastPostVote(h.db, postID, voterID, input.VoteType)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateFeed(c)
	c.JSON(http.StatusOK, result)
}

// SavePost toggles a bookmark on a post (PROTECTED)
func (h *PostHandler) SavePost(c *gin.Context) {
	postID := c.Param("id")

	userID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing models.SavedPost
	err := h.db.Where("user_id = ? AND post_id = ?", userID, post.ID).First(&existing).Error

	if err == nil {
		// Already saved — toggle off
		h.db.Delete(&existing)
		c.JSON(http.StatusOK, gin.H{"saved": false})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up bookmark"})
		return
	}

	saved := models.SavedPost{UserID: userID, PostID: post.ID}
	if err := h.db.Create(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// GetSavedPosts lists the caller's bookmarks, newest first
func (h *PostHandler) GetSavedPosts(c *gin.Context) {
	userID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var saved []models.SavedPost
	if err := h.db.Where("user_id = ?", userID).Preload("Post").Preload("Post.User").
		Order("created_at desc").Find(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch saved posts"})
		return
	}

	responses := make([]gin.H, 0, len(saved))
	for _, s := range saved {
		responses = append(responses, postResponse(s.Post))
	}

	c.JSON(http.StatusOK, responses)
}

// GetUserPosts returns all posts by a specific user
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	userID := c.Param("id")
	var posts []models.Post

	if err := h.db.Preload("User").Where("author_id = ?", userID).Order("created_at desc").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user posts"})
		return
	}

	responses := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, postResponse(post))
	}

	c.JSON(http.StatusOK, responses)
}

func (h *PostHandler) invalidateFeed(c *gin.Context) {
	if !cache.Enabled() {
		return
	}
	if err := cache.InvalidateFeed(c.Request.Context()); err != nil {
		log.Printf("⚠️ Failed to invalidate feed cache: %v", err)
	}
}
