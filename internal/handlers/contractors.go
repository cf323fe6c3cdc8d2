package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rei-collective/community/backend/internal/models"
)

type ContractorHandler struct {
	db *gorm.DB
}

func NewContractorHandler(db *gorm.DB) *ContractorHandler {
	return &ContractorHandler{db: db}
}

// ListContractors returns marketplace listings, optionally filtered by trade.
// Verified listings sort first.
func (h *ContractorHandler) ListContractors(c *gin.Context) {
	query := h.db.Preload("User").Order("verified desc, created_at desc")
	if trade := c.Query("trade"); trade != "" {
		query = query.Where("trade = ?", trade)
	}

	var contractors []models.Contractor
	if err := query.Find(&contractors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contractors"})
		return
	}

	if contractors == nil {
		contractors = []models.Contractor{}
	}
	c.JSON(http.StatusOK, contractors)
}

// GetContractor returns a single listing
func (h *ContractorHandler) GetContractor(c *gin.Context) {
	contractorID := c.Param("id")
	var contractor models.Contractor

	if err := h.db.Preload("User").First(&contractor, contractorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contractor not found"})
		return
	}

	c.JSON(http.StatusOK, contractor)
}

// CreateContractor adds a listing owned by the caller (PROTECTED)
func (h *ContractorHandler) CreateContractor(c *gin.Context) {
	var input struct {
		Company     string `json:"company" binding:"required"`
		Trade       string `json:"trade" binding:"required"`
		ServiceArea string `json:"service_area"`
		Phone       string `json:"phone"`
		Website     string `json:"website"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contractor := models.Contractor{
		OwnerID:     ownerID,
		Company:     input.Company,
		Trade:       input.Trade,
		ServiceArea: input.ServiceArea,
		Phone:       input.Phone,
		Website:     input.Website,
		Description: input.Description,
	}

	if err := h.db.Create(&contractor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	h.db.Preload("User").First(&contractor, contractor.ID)
	c.JSON(http.StatusCreated, contractor)
}

// UpdateContractor edits a listing (owner or admin). Verification status is
// untouched here; it only changes through the admin route.
func (h *ContractorHandler) UpdateContractor(c *gin.Context) {
	contractorID := c.Param("id")

	currentUserID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.ContractorRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var contractor models.Contractor
	if err := h.db.First(&contractor, contractorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contractor not found"})
		return
	}

	if contractor.OwnerID != currentUserID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own listing"})
		return
	}

	if input.Company != "" {
		contractor.Company = input.Company
	}
	if input.Trade != "" {
		contractor.Trade = input.Trade
	}
	if input.ServiceArea != "" {
		contractor.ServiceArea = input.ServiceArea
	}
	if input.Phone != "" {
		contractor.Phone = input.Phone
	}
	if input.Website != "" {
		contractor.Website = input.Website
	}
	if input.Description != "" {
		contractor.Description = input.Description
	}

	if err := h.db.Save(&contractor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	c.JSON(http.StatusOK, contractor)
}

// DeleteContractor removes a listing (owner or admin)
func (h *ContractorHandler) DeleteContractor(c *gin.Context) {
	contractorID := c.Param("id")

	currentUserID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var contractor models.Contractor
	if err := h.db.First(&contractor, contractorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contractor not found"})
		return
	}

	if contractor.OwnerID != currentUserID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own listing"})
		return
	}

	if err := h.db.Delete(&contractor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
}

// VerifyContractor toggles the verified badge (ADMIN)
func (h *ContractorHandler) VerifyContractor(c *gin.Context) {
	contractorID := c.Param("id")

	var input struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verified flag is required"})
		return
	}

	var contractor models.Contractor
	if err := h.db.First(&contractor, contractorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contractor not found"})
		return
	}

	contractor.Verified = *input.Verified
	if err := h.db.Save(&contractor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update verification"})
		return
	}

	c.JSON(http.StatusOK, contractor)
}
