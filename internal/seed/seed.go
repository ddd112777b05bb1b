package seed

import (
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	Users int
	Posts int
	Clean bool
}

// Seeder populates the database with demo content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Order matters because of foreign keys.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"view_stats", "likes", "comments", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	log.Println("cleared existing data")
	return nil
}

// Seed generates users, posts in a realistic status mix, and engagement
// (likes, comments, views) on the approved ones. One admin account
// (admin@inkwell.dev) is always created.
func (s *Seeder) Seed(opts Options) error {
	admin, err := s.factory.CreateUser(func(u *models.User) {
		u.Username = "admin"
		u.Email = "admin@inkwell.dev"
		u.Role = models.RoleAdmin
	})
	if err != nil {
		return err
	}
	log.Printf("created admin user %d", admin.ID)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	var approved []*models.Post
	for i := 0; i < opts.Posts; i++ {
		author := users[s.factory.rnd.Intn(len(users))]
		post, err := s.factory.CreatePost(author, func(p *models.Post) {
			p.Status = s.factory.randomStatus()
		})
		if err != nil {
			return err
		}
		if post.Status == models.PostStatusApproved {
			approved = append(approved, post)
		}
	}
	log.Printf("created %d posts (%d approved)", opts.Posts, len(approved))

	for _, post := range approved {
		for i := 0; i < s.factory.rnd.Intn(6); i++ {
			liker := users[s.factory.rnd.Intn(len(users))]
			if err := s.factory.CreateLike(liker, post); err != nil {
				return err
			}
		}
		for i := 0; i < s.factory.rnd.Intn(4); i++ {
			commenter := users[s.factory.rnd.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return err
			}
		}
		if err := s.factory.CreateViewStat(post); err != nil {
			return err
		}
	}
	log.Println("seeded engagement on approved posts")

	return nil
}
