// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pulse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the plaintext password assigned to every seeded user.
const DefaultPassword = "Password123!aa"

// Seeder populates the database with fake but realistic data.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Order matters: likes and comments
// reference posts, posts reference users.
func (s *Seeder) ClearAll() error {
	log.Println("Cleaning database...")
	for _, table := range []string{"likes", "comments", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// SeedUsers creates n users with the default password.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Email:    fmt.Sprintf("%s.%d@%s", gofakeit.Username(), i, gofakeit.DomainName()),
			Password: string(hash),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))
	return users, nil
}

// SeedPosts creates n posts spread across the given users, each with a
// realistic created_at in the past 90 days.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post := &models.Post{
			Title:       truncate(gofakeit.Sentence(3), 40),
			Body:        truncate(gofakeit.Sentence(8), 100),
			AuthorID:    author.ID,
			AuthorEmail: author.Email,
		}
		post.CreatedAt = s.pastTime(90)
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("creating post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	log.Printf("Created %d posts", len(posts))
	return posts, nil
}

// SeedEngagement adds comments and likes to the given posts. Roughly
// commentsPerPost comments land on each post, and each user likes a random
// subset of posts. Like counters are maintained alongside the like rows.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post, commentsPerPost int) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}

	var comments, likes int
	for _, post := range posts {
		n := s.rng.Intn(commentsPerPost*2 + 1)
		for i := 0; i < n; i++ {
			author := users[s.rng.Intn(len(users))]
			comment := &models.Comment{
				PostID:      post.ID,
				Text:        truncate(gofakeit.Sentence(10), 255),
				AuthorID:    author.ID,
				AuthorEmail: author.Email,
			}
			comment.CreatedAt = s.pastTime(30)
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("creating comment on post %d: %w", post.ID, err)
			}
			comments++
		}
	}

	for _, user := range users {
		for _, post := range posts {
			if s.rng.Float64() > 0.2 {
				continue
			}
			res := s.db.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Like{PostID: post.ID, UserID: user.ID})
			if res.Error != nil {
				return fmt.Errorf("liking post %d: %w", post.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				continue
			}
			if err := s.db.Model(&models.Post{}).Where("id = ?", post.ID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
				return fmt.Errorf("counting like on post %d: %w", post.ID, err)
			}
			likes++
		}
	}

	log.Printf("Created %d comments and %d likes", comments, likes)
	return nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rng.Intn(maxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
