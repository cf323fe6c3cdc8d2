package handlers

import (
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rei-collective/community/backend/internal/models"
	"github.com/rei-collective/community/backend/internal/storage"
)

const maxVideoBytes = 500 << 20 // 500 MB

type VideoHandler struct {
	db    *gorm.DB
	store storage.Store
}

func NewVideoHandler(db *gorm.DB, store storage.Store) *VideoHandler {
	return &VideoHandler{db: db, store: store}
}

// ListVideos returns the education catalog, optionally filtered by category,
// in curated order.
func (h *VideoHandler) ListVideos(c *gin.Context) {
	query := h.db.Order("position asc, created_at asc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var videos []models.Video
	if err := query.Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}

	if videos == nil {
		videos = []models.Video{}
	}
	c.JSON(http.StatusOK, videos)
}

// GetVideo returns a single catalog entry
func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID := c.Param("id")
	var video models.Video

	if err := h.db.First(&video, videoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	c.JSON(http.StatusOK, video)
}

// CreateVideo ingests a multipart upload: metadata fields, the video file, and
// an optional thumbnail. A failed thumbnail upload logs a warning and the
// video is created without one; a failed video upload aborts. (ADMIN)
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	videoFile, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video file is required"})
		return
	}
	if videoFile.Size > maxVideoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video must be under 500MB"})
		return
	}

	videoURL, err := h.uploadFile(storage.BucketVideos, videoFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store video"})
		return
	}

	thumbnail := ""
	if thumbFile, err := c.FormFile("thumbnail"); err == nil {
		thumbnail, err = h.uploadFile(storage.BucketVideos, thumbFile)
		if err != nil {
			// Best-effort: the catalog entry still goes in without a thumbnail
			log.Printf("⚠️ Thumbnail upload failed for %q: %v", title, err)
			thumbnail = ""
		}
	}

	duration, _ := strconv.Atoi(c.PostForm("duration"))
	position, _ := strconv.Atoi(c.PostForm("position"))

	video := models.Video{
		Title:       title,
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		VideoURL:    videoURL,
		Thumbnail:   thumbnail,
		Duration:    duration,
		Position:    position,
	}

	if err := h.db.Create(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create video"})
		return
	}

	c.JSON(http.StatusCreated, video)
}

// UpdateVideo edits catalog metadata (ADMIN)
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	videoID := c.Param("id")

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Duration    *int   `json:"duration"`
		Position    *int   `json:"position"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var video models.Video
	if err := h.db.First(&video, videoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	if input.Title != "" {
		video.Title = input.Title
	}
	if input.Description != "" {
		video.Description = input.Description
	}
	if input.Category != "" {
		video.Category = input.Category
	}
	if input.Duration != nil {
		video.Duration = *input.Duration
	}
	if input.Position != nil {
		video.Position = *input.Position
	}

	if err := h.db.Save(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update video"})
		return
	}

	c.JSON(http.StatusOK, video)
}

// DeleteVideo removes a catalog entry (ADMIN)
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID := c.Param("id")

	if err := h.db.Delete(&models.Video{}, videoID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete video"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}

func (h *VideoHandler) uploadFile(bucket string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	path := storage.UniqueName(header.Filename)
	if _, err := h.store.Upload(bucket, path, data, header.Header.Get("Content-Type")); err != nil {
		return "", err
	}
	return h.store.PublicURL(bucket, path), nil
}
