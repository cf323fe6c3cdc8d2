package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rei-collective/community/backend/internal/models"
	"github.com/rei-collective/community/backend/internal/notify"
)

type DealHandler struct {
	db  *gorm.DB
	sms *notify.SMSNotifier
}

func NewDealHandler(db *gorm.DB, sms *notify.SMSNotifier) *DealHandler {
	return &DealHandler{db: db, sms: sms}
}

func dealResponse(deal models.Deal) gin.H {
	return gin.H{
		"id":          deal.ID,
		"owner_id":    deal.OwnerID,
		"user":        deal.User,
		"title":       deal.Title,
		"address":     deal.Address,
		"price":       deal.Price,
		"description": deal.Description,
		"images":      decodeImages(deal.Images),
		"status":      deal.Status,
		"created_at":  deal.CreatedAt,
		"updated_at":  deal.UpdatedAt,
	}
}

func validDealStatus(s string) bool {
	return s == models.DealActive || s == models.DealPending || s == models.DealClosed
}

func validInquiryStatus(s string) bool {
	return s == models.InquiryNew || s == models.InquiryContacted || s == models.InquiryClosed
}

// ListDeals returns deals, newest first; ?status= filters, default active only
func (h *DealHandler) ListDeals(c *gin.Context) {
	status := c.DefaultQuery("status", models.DealActive)
	if !validDealStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown deal status"})
		return
	}

	var deals []models.Deal
	if err := h.db.Where("status = ?", status).Preload("User").Order("created_at desc").Find(&deals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	responses := make([]gin.H, 0, len(deals))
	for _, deal := range deals {
		responses = append(responses, dealResponse(deal))
	}
	c.JSON(http.StatusOK, responses)
}

// GetDeal returns a single deal
func (h *DealHandler) GetDeal(c *gin.Context) {
	dealID := c.Param("id")
	var deal models.Deal

	if err := h.db.Preload("User").First(&deal, dealID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	c.JSON(http.StatusOK, dealResponse(deal))
}

// CreateDeal posts a new deal owned by the caller (PROTECTED)
func (h *DealHandler) CreateDeal(c *gin.Context) {
	var input struct {
		Title       string   `json:"title" binding:"required"`
		Address     string   `json:"address"`
		Price       int64    `json:"price"`
		Description string   `json:"description"`
		Images      []string `json:"images"`
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

	deal := models.Deal{
		OwnerID:     ownerID,
		Title:       input.Title,
		Address:     input.Address,
		Price:       input.Price,
		Description: input.Description,
		Images:      encodeImages(input.Images),
		Status:      models.DealActive,
	}

	if err := h.db.Create(&deal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deal"})
		return
	}

	h.db.Preload("User").First(&deal, deal.ID)
	c.JSON(http.StatusCreated, dealResponse(deal))
}

// UpdateDeal edits a deal (owner or admin)
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	dealID := c.Param("id")

	currentUserID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.DealRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var deal models.Deal
	if err := h.db.First(&deal, dealID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	if deal.OwnerID != currentUserID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own deals"})
		return
	}

	if input.Title != "" {
		deal.Title = input.Title
	}
	if input.Address != "" {
		deal.Address = input.Address
	}
	if input.Price != 0 {
		deal.Price = input.Price
	}
	if input.Description != "" {
		deal.Description = input.Description
	}
	if input.Images != nil {
		deal.Images = encodeImages(input.Images)
	}
	if input.Status != "" {
		if !validDealStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown deal status"})
			return
		}
		deal.Status = input.Status
	}

	if err := h.db.Save(&deal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deal"})
		return
	}

	c.JSON(http.StatusOK, dealResponse(deal))
}

// DeleteDeal removes a deal and its inquiries (owner or admin)
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	dealID := c.Param("id")

	currentUserID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var deal models.Deal
	if err := h.db.First(&deal, dealID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	if deal.OwnerID != currentUserID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own deals"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deal_id = ?", deal.ID).Delete(&models.DealInquiry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&deal).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deal deleted successfully"})
}

// CreateInquiry registers interest in a deal, one per member per deal, and
// texts the owner. The SMS is best-effort.
func (h *DealHandler) CreateInquiry(c *gin.Context) {
	dealID := c.Param("id")

	userID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var deal models.Deal
	if err := h.db.Preload("User").First(&deal, dealID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	if deal.OwnerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot inquire on your own deal"})
		return
	}

	var existing models.DealInquiry
	if err := h.db.Where("deal_id = ? AND user_id = ?", deal.ID, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already inquired on this deal"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up inquiry"})
		return
	}

	inquiry := models.DealInquiry{
		DealID:  deal.ID,
		UserID:  userID,
		Message: input.Message,
		Status:  models.InquiryNew,
	}

	if err := h.db.Create(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inquiry"})
		return
	}

	var inquirer models.User
	h.db.First(&inquirer, userID)
	if err := h.sms.DealInquiry(deal.User.Phone, deal.Title, inquirer.Username); err != nil {
		log.Printf("⚠️ Failed to send inquiry SMS for deal %d: %v", deal.ID, err)
	}

	h.db.Preload("User").First(&inquiry, inquiry.ID)
	c.JSON(http.StatusCreated, inquiry)
}

// ListInquiries shows a deal's pipeline (deal owner or admin)
func (h *DealHandler) ListInquiries(c *gin.Context) {
	dealID := c.Param("id")

	currentUserID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var deal models.Deal
	if err := h.db.First(&deal, dealID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	if deal.OwnerID != currentUserID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the deal owner can view inquiries"})
		return
	}

	var inquiries []models.DealInquiry
	if err := h.db.Where("deal_id = ?", deal.ID).Preload("User").Order("created_at asc").Find(&inquiries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries"})
		return
	}

	if inquiries == nil {
		inquiries = []models.DealInquiry{}
	}
	c.JSON(http.StatusOK, inquiries)
}

// UpdateInquiryStatus moves an inquiry through the pipeline (deal owner or admin)
func (h *DealHandler) UpdateInquiryStatus(c *gin.Context) {
	inquiryID := c.Param("inquiryId")

	currentUserID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !validInquiryStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be new, contacted or closed"})
		return
	}

	var inquiry models.DealInquiry
	if err := h.db.Preload("Deal").First(&inquiry, inquiryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		return
	}

	if inquiry.Deal.OwnerID != currentUserID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the deal owner can update inquiries"})
		return
	}

	inquiry.Status = input.Status
	if err := h.db.Save(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inquiry"})
		return
	}

	c.JSON(http.StatusOK, inquiry)
}
