package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rei-collective/community/backend/internal/models"
)

type BlogHandler struct {
	db *gorm.DB
}

func NewBlogHandler(db *gorm.DB) *BlogHandler {
	return &BlogHandler{db: db}
}

// ListPosts returns published articles, newest first
func (h *BlogHandler) ListPosts(c *gin.Context) {
	var posts []models.BlogPost

	if err := h.db.Where("published = ?", true).Preload("User").Order("created_at desc").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	if posts == nil {
		posts = []models.BlogPost{}
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost returns a single published article by slug
func (h *BlogHandler) GetPost(c *gin.Context) {
	slug := c.Param("slug")
	var post models.BlogPost

	if err := h.db.Where("slug = ? AND published = ?", slug, true).Preload("User").First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// --- Admin surface ---

// ListAllPosts includes unpublished drafts (ADMIN)
func (h *BlogHandler) ListAllPosts(c *gin.Context) {
	var posts []models.BlogPost
	if err := h.db.Preload("User").Order("created_at desc").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost creates an article (ADMIN)
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var input struct {
		Title      string `json:"title" binding:"required"`
		Slug       string `json:"slug"`
		Body       string `json:"body" binding:"required"`
		CoverImage string `json:"cover_image"`
		Published  bool   `json:"published"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, _ := extractUserID(c)

	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Title)
	}

	post := models.BlogPost{
		Title:      input.Title,
		Slug:       slug,
		Body:       input.Body,
		CoverImage: input.CoverImage,
		AuthorID:   authorID,
		Published:  input.Published,
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug already in use"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost edits an article (ADMIN)
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("id")

	var input models.BlogPostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.BlogPost
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Slug != "" {
		post.Slug = input.Slug
	}
	if input.Body != "" {
		post.Body = input.Body
	}
	if input.CoverImage != "" {
		post.CoverImage = input.CoverImage
	}
	if input.Published != nil {
		post.Published = *input.Published
	}

	if err := h.db.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes an article (ADMIN)
func (h *BlogHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")

	if err := h.db.Delete(&models.BlogPost{}, postID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

// slugify lowercases a title and collapses non-alphanumerics to hyphens.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
