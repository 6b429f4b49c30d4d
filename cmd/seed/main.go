// Command seed fills the configured storage backend with development data.
package main

import (
	"context"
	"flag"
	"log"

	"agora/internal/bootstrap"
	"agora/internal/config"
	"agora/internal/seed"
	"agora/internal/service"
)

func main() {
	users := flag.Int("users", 10, "number of accounts to create")
	postsPerUser := flag.Int("posts", 3, "number of posts per account")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	storage, err := bootstrap.OpenStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	seeder := seed.New(
		service.NewAuthService(storage.Users),
		service.NewPostService(storage.Posts, storage.Comments, storage.Users),
		service.NewCommentService(storage.Comments, storage.Posts, storage.Users),
	)
	if err := seeder.Run(context.Background(), *users, *postsPerUser); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
