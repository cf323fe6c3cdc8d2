package models

import "time"

// Conversation is a two-party direct-message thread. UserAID < UserBID so the
// pair is unique regardless of who started it.
type Conversation struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	UserAID       int       `gorm:"index;uniqueIndex:idx_conv_pair" json:"user_a_id"`
	UserBID       int       `gorm:"index;uniqueIndex:idx_conv_pair" json:"user_b_id"`
	UserA         User      `gorm:"foreignKey:UserAID" json:"user_a"`
	UserB         User      `gorm:"foreignKey:UserBID" json:"user_b"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type Message struct {
	ID             int        `gorm:"primaryKey" json:"id"`
	ConversationID int        `gorm:"index" json:"conversation_id"`
	SenderID       int        `json:"sender_id"`
	Sender         User       `gorm:"foreignKey:SenderID" json:"sender"`
	Body           string     `json:"body"`
	MediaURL       string     `json:"media_url"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MessageReaction is a single emoji reaction; one per (message, user).
type MessageReaction struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	MessageID int       `gorm:"index;uniqueIndex:idx_msg_reactor" json:"message_id"`
	UserID    int       `gorm:"uniqueIndex:idx_msg_reactor" json:"user_id"`
	Emoji     string    `gorm:"not null" json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	ConversationID int    `json:"conversation_id"`
	RecipientID    int    `json:"recipient_id"` // used when no conversation exists yet
	Body           string `json:"body"`
	MediaURL       string `json:"media_url"`
}
