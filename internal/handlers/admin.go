package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rei-collective/community/backend/internal/cache"
	"github.com/rei-collective/community/backend/internal/models"
)

// AdminHandler covers the dashboard: member management and forum moderation.
// All routes behind it are gated by RequireRole("admin").
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// ListUsers returns all members, newest first
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("created_at desc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUserRole promotes or demotes a member
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID := c.Param("id")

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil ||
		(input.Role != models.RoleMember && input.Role != models.RoleAdmin) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be member or admin"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	currentUserID, _ := extractUserID(c)
	if user.ID == currentUserID && input.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot demote yourself"})
		return
	}

	user.Role = input.Role
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// PinPost toggles a post's pinned flag; pinned posts lead the feed
func (h *AdminHandler) PinPost(c *gin.Context) {
	postID := c.Param("id")

	var input struct {
		Pinned *bool `json:"pinned" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pinned flag is required"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	post.Pinned = *input.Pinned
	if err := h.db.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	if cache.Enabled() {
		if err := cache.InvalidateFeed(c.Request.Context()); err != nil {
			log.Printf("⚠️ Failed to invalidate feed cache: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": post.ID, "pinned": post.Pinned})
}

// ListAllInquiries shows the full deal pipeline across owners
func (h *AdminHandler) ListAllInquiries(c *gin.Context) {
	var inquiries []models.DealInquiry
	query := h.db.Preload("User").Preload("Deal").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&inquiries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries"})
		return
	}

	if inquiries == nil {
		inquiries = []models.DealInquiry{}
	}
	c.JSON(http.StatusOK, inquiries)
}
