package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rei-collective/community/backend/internal/models"
	"github.com/rei-collective/community/backend/internal/storage"
)

const maxMessageMediaBytes = 20 << 20 // 20 MB

type MessageHandler struct {
	db    *gorm.DB
	store storage.Store
}

func NewMessageHandler(db *gorm.DB, store storage.Store) *MessageHandler {
	return &MessageHandler{db: db, store: store}
}

// conversationFor loads a conversation and checks the caller is one of the two
// parties.
func (h *MessageHandler) conversationFor(c *gin.Context, userID int) (*models.Conversation, bool) {
	conversationID := c.Param("conversationId")

	var conv models.Conversation
	if err := h.db.Preload("UserA").Preload("UserB").First(&conv, conversationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return nil, false
	}

	if conv.UserAID != userID && conv.UserBID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this conversation"})
		return nil, false
	}

	return &conv, true
}

// ListConversations returns the caller's inbox, most recent activity first,
// with unread counts.
func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var conversations []models.Conversation
	if err := h.db.Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Preload("UserA").Preload("UserB").
		Order("last_message_at desc").Find(&conversations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	responses := make([]gin.H, 0, len(conversations))
	for _, conv := range conversations {
		var unread int64
		h.db.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conv.ID, userID).
			Count(&unread)

		responses = append(responses, gin.H{
			"id":              conv.ID,
			"user_a":          conv.UserA,
			"user_b":          conv.UserB,
			"last_message_at": conv.LastMessageAt,
			"unread_count":    unread,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// GetMessages returns a conversation's messages, oldest first, with reactions.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conv, authorized := h.conversationFor(c, userID)
	if !authorized {
		return
	}

	var messages []models.Message
	if err := h.db.Where("conversation_id = ?", conv.ID).Preload("Sender").
		Order("created_at asc").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	messageIDs := make([]int, 0, len(messages))
	for _, m := range messages {
		messageIDs = append(messageIDs, m.ID)
	}

	reactionsByMessage := map[int][]models.MessageReaction{}
	if len(messageIDs) > 0 {
		var reactions []models.MessageReaction
		h.db.Where("message_id IN ?", messageIDs).Find(&reactions)
		for _, r := range reactions {
			reactionsByMessage[r.MessageID] = append(reactionsByMessage[r.MessageID], r)
		}
	}

	responses := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		reactions := reactionsByMessage[m.ID]
		if reactions == nil {
			reactions = []models.MessageReaction{}
		}
		responses = append(responses, gin.H{
			"id":              m.ID,
			"conversation_id": m.ConversationID,
			"sender":          m.Sender,
			"sender_id":       m.SenderID,
			"body":            m.Body,
			"media_url":       m.MediaURL,
			"read_at":         m.ReadAt,
			"reactions":       reactions,
			"created_at":      m.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// SendMessage appends a message to a conversation, creating the conversation
// on first contact with a recipient.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	senderID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.SendMessageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Body == "" && input.MediaURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message body or media is required"})
		return
	}

	var conv models.Conversation
	if input.ConversationID != 0 {
		if err := h.db.First(&conv, input.ConversationID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		if conv.UserAID != senderID && conv.UserBID != senderID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this conversation"})
			return
		}
	} else {
		if input.RecipientID == 0 || input.RecipientID == senderID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A recipient is required"})
			return
		}
		var recipient models.User
		if err := h.db.First(&recipient, input.RecipientID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
			return
		}

		// Conversations store the pair low-id-first so the same two users
		// always resolve to one row.
		a, b := senderID, input.RecipientID
		if a > b {
			a, b = b, a
		}

		err := h.db.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&conv).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			conv = models.Conversation{UserAID: a, UserBID: b, LastMessageAt: time.Now()}
			if err := h.db.Create(&conv).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start conversation"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up conversation"})
			return
		}
	}

	message := models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Body:           input.Body,
		MediaURL:       input.MediaURL,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).Where("id = ?", conv.ID).
			Update("last_message_at", time.Now()).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.db.Preload("Sender").First(&message, message.ID)
	c.JSON(http.StatusCreated, message)
}

// MarkRead stamps every message the other party sent as read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conv, authorized := h.conversationFor(c, userID)
	if !authorized {
		return
	}

	now := time.Now()
	if err := h.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conv.ID, userID).
		Update("read_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation marked read"})
}

// UploadMedia stores an attachment and returns its URL for a follow-up send.
func (h *MessageHandler) UploadMedia(c *gin.Context) {
	userID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	if fileHeader.Size > maxMessageMediaBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attachment must be under 20MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
		return
	}

	path := strconv.Itoa(userID) + "/" + storage.UniqueName(fileHeader.Filename)
	if _, err := h.store.Upload(storage.BucketDM, path, data, fileHeader.Header.Get("Content-Type")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"media_url": h.store.PublicURL(storage.BucketDM, path)})
}

// React toggles an emoji reaction on a message: same emoji again removes it,
// a different emoji replaces it.
func (h *MessageHandler) React(c *gin.Context) {
	userID, exists := extractUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		MessageID int    `json:"message_id" binding:"required"`
		Emoji     string `json:"emoji" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var message models.Message
	if err := h.db.First(&message, input.MessageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	var conv models.Conversation
	if err := h.db.First(&conv, message.ConversationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	if conv.UserAID != userID && conv.UserBID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this conversation"})
		return
	}

	var existing models.MessageReaction
	err := h.db.Where("message_id = ? AND user_id = ?", message.ID, userID).First(&existing).Error

	if err == nil {
		if existing.Emoji == input.Emoji {
			// Same emoji — remove the reaction
			h.db.Delete(&existing)
			c.JSON(http.StatusOK, gin.H{"message": "Reaction removed"})
			return
		}
		existing.Emoji = input.Emoji
		h.db.Save(&existing)
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up reaction"})
		return
	}

	reaction := models.MessageReaction{MessageID: message.ID, UserID: userID, Emoji: input.Emoji}
	if err := h.db.Create(&reaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add reaction"})
		return
	}

	c.JSON(http.StatusCreated, reaction)
}
