package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rei-collective/community/backend/internal/mailer"
	"github.com/rei-collective/community/backend/internal/notify"
	"github.com/rei-collective/community/backend/internal/storage"
	"github.com/rei-collective/community/backend/internal/utils"
)

// Handler combines all handler types
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Post       *PostHandler
	Comment    *CommentHandler
	Blog       *BlogHandler
	Video      *VideoHandler
	Contractor *ContractorHandler
	Deal       *DealHandler
	Message    *MessageHandler
	Admin      *AdminHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, store storage.Store, mail mailer.SMTPConfig, sms *notify.SMSNotifier) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(db, mail),
		User:       NewUserHandler(db, store),
		Post:       NewPostHandler(db),
		Comment:    NewCommentHandler(db),
		Blog:       NewBlogHandler(db),
		Video:      NewVideoHandler(db, store),
		Contractor: NewContractorHandler(db),
		Deal:       NewDealHandler(db, sms),
		Message:    NewMessageHandler(db, store),
		Admin:      NewAdminHandler(db),
	}
}

// extractUserID reads the user id the auth middleware injected.
func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// isAdmin reads the role the auth middleware injected.
func isAdmin(c *gin.Context) bool {
	raw, exists := c.Get("role")
	if !exists {
		return false
	}
	role, ok := raw.(string)
	return ok && role == "admin"
}

// respondError maps an AppError to its HTTP status and a plain-language
// banner; no stack traces ever reach the client.
func respondError(c *gin.Context, err error) {
	c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
}

func encodeImages(urls []string) string {
	if len(urls) == 0 {
		return "[]"
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeImages(raw string) []string {
	var urls []string
	if raw == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte(raw), &urls); err != nil || urls == nil {
		return []string{}
	}
	return urls
}
