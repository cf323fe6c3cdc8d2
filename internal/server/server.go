package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rei-collective/community/backend/internal/database"
	"github.com/rei-collective/community/backend/internal/handlers"
	"github.com/rei-collective/community/backend/internal/mailer"
	"github.com/rei-collective/community/backend/internal/middleware"
	"github.com/rei-collective/community/backend/internal/models"
	"github.com/rei-collective/community/backend/internal/notify"
	"github.com/rei-collective/community/backend/internal/storage"
)

type Server struct {
	db      database.Service
	store   *storage.LocalStore
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	// Initialize database
	db := database.New()

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	store, err := storage.NewLocalStore(uploadDir, baseURL+"/uploads")
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Create unified handler
	handler := handlers.NewHandler(db.GetDB(), store, mailer.FromEnv(), notify.NewSMSNotifier())

	newServer := &Server{
		db:      db,
		store:   store,
		handler: handler,
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Uploaded media (avatars, forum images, videos, attachments)
	r.Static("/uploads", s.store.Root())

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/register/code", s.handler.Auth.RequestVerificationCode)
		api.POST("/login", s.handler.Auth.Login)

		// Forum routes (public reads)
		api.GET("/posts", s.handler.Post.GetFeed)
		api.GET("/posts/:id", s.handler.Post.GetPost)
		api.GET("/posts/:id/comments", s.handler.Comment.GetComments)

		// Blog routes (public reads)
		api.GET("/blog", s.handler.Blog.ListPosts)
		api.GET("/blog/:slug", s.handler.Blog.GetPost)

		// Education catalog (public reads)
		api.GET("/videos", s.handler.Video.ListVideos)
		api.GET("/videos/:id", s.handler.Video.GetVideo)

		// Contractor marketplace (public reads)
		api.GET("/contractors", s.handler.Contractor.ListContractors)
		api.GET("/contractors/:id", s.handler.Contractor.GetContractor)

		// Deal listings (public reads)
		api.GET("/deals", s.handler.Deal.ListDeals)
		api.GET("/deals/:id", s.handler.Deal.GetDeal)

		// User routes (public reads)
		api.GET("/users/:id", s.handler.User.GetUserProfile)
		api.GET("/users/:id/posts", s.handler.Post.GetUserPosts)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Account
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.PUT("/me", s.handler.Auth.UpdateAccount)
			protected.PUT("/users/:id", s.handler.User.UpdateUserProfile)
			protected.POST("/users/avatar", s.handler.User.UploadAvatar)

			// Forum
			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.PUT("/posts/:id", s.handler.Post.UpdatePost)
			protected.DELETE("/posts/:id", s.handler.Post.DeletePost)
			protected.POST("/posts/:id/vote", s.handler.Post.VotePost)
			protected.POST("/posts/:id/save", s.handler.Post.SavePost)
			protected.GET("/saved", s.handler.Post.GetSavedPosts)

			protected.POST("/posts/:id/comments", s.handler.Comment.CreateComment)
			protected.PUT("/comments/:commentId", s.handler.Comment.UpdateComment)
			protected.DELETE("/comments/:commentId", s.handler.Comment.DeleteComment)
			protected.POST("/comments/:commentId/vote", s.handler.Comment.VoteComment)

			// Marketplace
			protected.POST("/contractors", s.handler.Contractor.CreateContractor)
			protected.PUT("/contractors/:id", s.handler.Contractor.UpdateContractor)
			protected.DELETE("/contractors/:id", s.handler.Contractor.DeleteContractor)

			// Deals
			protected.POST("/deals", s.handler.Deal.CreateDeal)
			protected.PUT("/deals/:id", s.handler.Deal.UpdateDeal)
			protected.DELETE("/deals/:id", s.handler.Deal.DeleteDeal)
			protected.POST("/deals/:id/inquiries", s.handler.Deal.CreateInquiry)
			protected.GET("/deals/:id/inquiries", s.handler.Deal.ListInquiries)
			protected.PUT("/inquiries/:inquiryId", s.handler.Deal.UpdateInquiryStatus)

			// Messaging
			protected.GET("/messages", s.handler.Message.ListConversations)
			protected.GET("/messages/:conversationId", s.handler.Message.GetMessages)
			protected.POST("/messages/send", s.handler.Message.SendMessage)
			protected.POST("/messages/:conversationId/read", s.handler.Message.MarkRead)
			protected.POST("/messages/upload", s.handler.Message.UploadMedia)
			protected.POST("/messages/react", s.handler.Message.React)

			// Admin dashboard
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", s.handler.Admin.ListUsers)
				admin.PUT("/users/:id/role", s.handler.Admin.UpdateUserRole)
				admin.PUT("/posts/:id/pin", s.handler.Admin.PinPost)
				admin.GET("/inquiries", s.handler.Admin.ListAllInquiries)

				admin.GET("/blog", s.handler.Blog.ListAllPosts)
				admin.POST("/blog", s.handler.Blog.CreatePost)
				admin.PUT("/blog/:id", s.handler.Blog.UpdatePost)
				admin.DELETE("/blog/:id", s.handler.Blog.DeletePost)

				admin.POST("/videos", s.handler.Video.CreateVideo)
				admin.PUT("/videos/:id", s.handler.Video.UpdateVideo)
				admin.DELETE("/videos/:id", s.handler.Video.DeleteVideo)

				admin.PUT("/contractors/:id/verify", s.handler.Contractor.VerifyContractor)
			}
		}
	}

	return r
}
