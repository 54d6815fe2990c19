package main

import (
	"log"

	"influencer-chatbot-be/internal/bootstrap"
	"influencer-chatbot-be/internal/config"
	"influencer-chatbot-be/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
