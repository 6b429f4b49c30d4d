// Package seed populates a development environment with fake accounts,
// posts, comments and likes. Everything goes through the services so the
// counters are correct by construction.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"agora/internal/models"
	"agora/internal/service"
)

type Seeder struct {
	auth     *service.AuthService
	posts    *service.PostService
	comments *service.CommentService
	faker    *gofakeit.Faker
}

func New(auth *service.AuthService, posts *service.PostService, comments *service.CommentService) *Seeder {
	// Fixed seed so repeated runs produce the same board.
	return &Seeder{
		auth:     auth,
		posts:    posts,
		comments: comments,
		faker:    gofakeit.New(42),
	}
}

// Run creates userCount accounts with postsPerUser posts each, then a
// round of comments and likes. Accounts that already exist are skipped so
// the seeder can be re-run against a populated store.
func (s *Seeder) Run(ctx context.Context, userCount, postsPerUser int) error {
	users := make([]*models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user, err := s.auth.Signup(ctx, service.SignupInput{
			Email:    s.faker.Email(),
			Password: fmt.Sprintf("Aa1!%s", s.faker.Password(true, true, true, false, false, 8)),
			Nickname: s.nickname(),
		})
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Status == 409 {
				continue
			}
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < postsPerUser; i++ {
			post, err := s.posts.CreatePost(ctx, service.CreatePostInput{
				AuthorID: user.ID,
				Title:    strings.TrimSuffix(s.faker.Sentence(6), "."),
				Content:  s.faker.Paragraph(2, 4, 12, " "),
			})
			if err != nil {
				return fmt.Errorf("seeding post for user %d: %w", user.ID, err)
			}
			posts = append(posts, post)
		}
	}
	log.Printf("seeded %d posts", len(posts))

	commented := 0
	liked := 0
	for _, user := range users {
		for _, post := range posts {
			if s.faker.Bool() {
				continue
			}
			if _, err := s.comments.AddComment(ctx, service.CreateCommentInput{
				PostID:   post.ID,
				AuthorID: user.ID,
				Content:  s.faker.Sentence(10),
			}); err != nil {
				return fmt.Errorf("seeding comment on post %d: %w", post.ID, err)
			}
			commented++

			if _, err := s.posts.AddLike(ctx, post.ID, user.ID); err != nil {
				var appErr *models.AppError
				if errors.As(err, &appErr) && appErr.Code == "like_already_exists" {
					continue
				}
				return fmt.Errorf("seeding like on post %d: %w", post.ID, err)
			}
			liked++
		}
	}
	log.Printf("seeded %d comments and %d likes", commented, liked)
	return nil
}

// nickname derives a policy-conforming nickname: at most 10 characters, no
// whitespace.
func (s *Seeder) nickname() string {
	name := strings.ReplaceAll(s.faker.Username(), " ", "")
	if len(name) > 7 {
		name = name[:7]
	}
	return fmt.Sprintf("%s%03d", name, s.faker.Number(0, 999))
}
