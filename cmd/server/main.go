package main

import (
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/rei-collective/community/backend/internal/cache"
	"github.com/rei-collective/community/backend/internal/server"
)

func main() {
	// Redis is optional: without it the feed is uncached and email
	// verification is skipped.
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		if err := cache.Init(addr, os.Getenv("REDIS_PASSWORD"), 0); err != nil {
			log.Printf("⚠️ Redis unavailable, continuing without cache: %v", err)
		} else {
			defer cache.Close()
			log.Println("✅ Redis connected successfully")
		}
	}

	srv := server.NewServer()
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
