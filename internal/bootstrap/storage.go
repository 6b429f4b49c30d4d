// Package bootstrap opens the storage backend named by the configuration.
// It is shared by the API server and the seeder so both read STORAGE_DRIVER
// the same way.
package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/repository"
	"agora/internal/repository/filestore"
)

// Storage bundles the opened repositories. DB is nil on the file backend.
type Storage struct {
	DB       *gorm.DB
	Users    repository.UserRepository
	Posts    repository.PostRepository
	Comments repository.CommentRepository
}

// OpenStorage opens the backend selected by STORAGE_DRIVER: "file" for the
// JSON file store, "postgres" for the relational store.
func OpenStorage(cfg *config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case "file":
		store, err := filestore.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening file store: %w", err)
		}
		return &Storage{
			Users:    store.Users(),
			Posts:    store.Posts(),
			Comments: store.Comments(),
		}, nil
	case "postgres":
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		return &Storage{
			DB:       db,
			Users:    repository.NewUserRepository(db),
			Posts:    repository.NewPostRepository(db),
			Comments: repository.NewCommentRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
