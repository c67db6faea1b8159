// Package seed fills a database with demo users, follows, posts, comments
// and likes. Everything goes through the domain services, so seeded data
// obeys the same rules (and produces the same notifications) as live traffic.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/brianvoe/gofakeit/v6"
)

// Options sizes the generated graph
type Options struct {
	Users           int
	FollowsPerUser  int
	PostsPerUser    int
	CommentsPerPost int
	LikesPerPost    int
	Seed            int64 // zero picks a random seed
}

// DefaultOptions is a small but fully connected demo network
func DefaultOptions() Options {
	return Options{
		Users:           12,
		FollowsPerUser:  4,
		PostsPerUser:    3,
		CommentsPerPost: 2,
		LikesPerPost:    3,
	}
}

// Summary counts what a run created
type Summary struct {
	Users    int
	Follows  int
	Posts    int
	Comments int
	Likes    int
}

// Seeder drives the services with fake data
type Seeder struct {
	svc    *services.Services
	faker  *gofakeit.Faker
	opts   Options
	logger *slog.Logger
}

func NewSeeder(svc *services.Services, opts Options, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{svc: svc, faker: gofakeit.New(opts.Seed), opts: opts, logger: logger}
}

// Run seeds the whole graph
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	users, err := s.seedUsers(ctx)
	if err != nil {
		return nil, err
	}
	sum.Users = len(users)

	if sum.Follows, err = s.seedFollows(ctx, users); err != nil {
		return nil, err
	}

	posts, err := s.seedPosts(ctx, users)
	if err != nil {
		return nil, err
	}
	sum.Posts = len(posts)

	for _, post := range posts {
		comments, likes, err := s.seedReactions(ctx, users, post)
		if err != nil {
			return nil, err
		}
		sum.Comments += comments
		sum.Likes += likes
	}

	s.logger.InfoContext(ctx, "seed complete",
		slog.Int("users", sum.Users),
		slog.Int("follows", sum.Follows),
		slog.Int("posts", sum.Posts),
		slog.Int("comments", sum.Comments),
		slog.Int("likes", sum.Likes),
	)
	return sum, nil
}

func (s *Seeder) seedUsers(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; len(users) < s.opts.Users; i++ {
		bio := s.faker.HackerPhrase()
		if len(bio) > 255 {
			bio = bio[:255]
		}
		user, err := s.svc.Users.Register(ctx, models.CreateUserRequest{
			Handle: fmt.Sprintf("%s_%d", s.faker.Username(), i),
			Email:  s.faker.Email(),
			Bio:    bio,
		})
		if models.IsKind(err, models.KindAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedFollows(ctx context.Context, users []*models.User) (int, error) {
	follows := 0
	for _, follower := range users {
		for _, target := range s.pickOthers(users, follower.ID, s.opts.FollowsPerUser) {
			_, err := s.svc.Relationships.Follow(ctx, follower.ID, target.ID)
			if models.IsKind(err, models.KindAlreadyFollowing) {
				continue
			}
			if err != nil {
				return 0, fmt.Errorf("seed follow: %w", err)
			}
			follows++
		}
	}
	return follows, nil
}

func (s *Seeder) seedPosts(ctx context.Context, users []*models.User) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, len(users)*s.opts.PostsPerUser)
	for _, author := range users {
		for i := 0; i < s.opts.PostsPerUser; i++ {
			title := s.faker.Sentence(s.faker.IntRange(3, 8))
			if len(title) > 200 {
				title = title[:200]
			}
			post, err := s.svc.Content.CreatePost(ctx, author.ID, models.CreatePostRequest{
				Title:   title,
				Content: s.faker.Paragraph(1, 3, 12, "\n"),
			})
			if err != nil {
				return nil, fmt.Errorf("seed post: %w", err)
			}
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (s *Seeder) seedReactions(ctx context.Context, users []*models.User, post *models.Post) (comments, likes int, err error) {
	for _, author := range s.pickOthers(users, post.AuthorID, s.opts.CommentsPerPost) {
		_, err := s.svc.Content.CreateComment(ctx, author.ID, post.ID, models.CreateCommentRequest{
			Content: s.faker.Sentence(s.faker.IntRange(4, 16)),
		})
		if err != nil {
			return 0, 0, fmt.Errorf("seed comment: %w", err)
		}
		comments++
	}
	for _, liker := range s.pickOthers(users, post.AuthorID, s.opts.LikesPerPost) {
		_, err := s.svc.Content.Like(ctx, liker.ID, post.ID)
		if models.IsKind(err, models.KindAlreadyLiked) {
			continue
		}
		if err != nil {
			return 0, 0, fmt.Errorf("seed like: %w", err)
		}
		likes++
	}
	return comments, likes, nil
}

// pickOthers returns up to n distinct users other than excludeID
func (s *Seeder) pickOthers(users []*models.User, excludeID uint, n int) []*models.User {
	candidates := make([]*models.User, 0, len(users))
	for _, u := range users {
		if u.ID != excludeID {
			candidates = append(candidates, u)
		}
	}
	s.faker.Rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates
}
