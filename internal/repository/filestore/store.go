// Package filestore implements the repository interfaces over flat JSON
// files, preserving the board's historical on-disk layout: a users array,
// a posts array with the likes embedded as a user-id list, and a comments
// array. Every operation is a whole-collection read-modify-write.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"agora/internal/repository"
)

const (
	usersFile    = "users.json"
	postsFile    = "posts.json"
	commentsFile = "comments.json"
)

// Store owns the data directory and the mutex that serializes writers
// within this process. There is no cross-process locking: two server
// processes on the same directory can lose updates. That weakness is part
// of the format; the relational backend is the answer to it.
type Store struct {
	dataDir string
	mu      sync.Mutex
}

func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dataDir: dataDir}, nil
}

// Users returns the file-backed UserRepository.
func (s *Store) Users() repository.UserRepository {
	return &userStore{s}
}

// Posts returns the file-backed PostRepository.
func (s *Store) Posts() repository.PostRepository {
	return &postStore{s}
}

// Comments returns the file-backed CommentRepository.
func (s *Store) Comments() repository.CommentRepository {
	return &commentStore{s}
}

// The record types mirror the historical wire layout rather than reusing
// the domain structs, so the files stay stable however the models evolve.

type userRecord struct {
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Nickname  string    `json:"nickname"`
	Profile   string    `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type postRecord struct {
	PostID        uint      `json:"postId"`
	Author        *uint     `json:"author"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	PostImage     string    `json:"postImage,omitempty"`
	PostDate      time.Time `json:"postDate"`
	Likes         []uint    `json:"likes"`
	LikeCount     int       `json:"likeCount"`
	View          int       `json:"view"`
	CommentsCount int       `json:"commentsCount"`
}

type commentRecord struct {
	CommentID     uint      `json:"commentId"`
	PostID        uint      `json:"postId"`
	CommentAuthor *uint     `json:"commentAuthor"`
	Content       string    `json:"content"`
	CommentDate   time.Time `json:"commentDate"`
}

func readJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func writeJSON[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) usersPath() string    { return filepath.Join(s.dataDir, usersFile) }
func (s *Store) postsPath() string    { return filepath.Join(s.dataDir, postsFile) }
func (s *Store) commentsPath() string { return filepath.Join(s.dataDir, commentsFile) }

func (s *Store) loadUsers() ([]userRecord, error) {
	return readJSON[userRecord](s.usersPath())
}

func (s *Store) saveUsers(records []userRecord) error {
	return writeJSON(s.usersPath(), records)
}

func (s *Store) loadPosts() ([]postRecord, error) {
	return readJSON[postRecord](s.postsPath())
}

func (s *Store) savePosts(records []postRecord) error {
	return writeJSON(s.postsPath(), records)
}

func (s *Store) loadComments() ([]commentRecord, error) {
	return readJSON[commentRecord](s.commentsPath())
}

func (s *Store) saveComments(records []commentRecord) error {
	return writeJSON(s.commentsPath(), records)
}

// nextID is the file backend's id strategy: max(existing)+1, so ids are
// never reused while records remain, but a deleted maximum can be handed
// out again. Ids stay unique within one file's lifetime of live records.
func nextID[T any](records []T, id func(T) uint) uint {
	var max uint
	for _, rec := range records {
		if v := id(rec); v > max {
			max = v
		}
	}
	return max + 1
}
