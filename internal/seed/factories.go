// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var tagPool = []string{
	"go", "writing", "travel", "food", "music",
	"photography", "books", "science", "history", "art",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password1234"), bcrypt.MinCost)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
		Role:     models.RoleMember,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAdmin persists a user with the admin role.
func (f *Factory) CreateAdmin() (*models.User, error) {
	return f.CreateUser(func(u *models.User) {
		u.Role = models.RoleAdmin
	})
}

// CreatePost constructs and persists a post for the given author with a
// realistic created_at spread over the last 90 days.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:   gofakeit.Sentence(5),
		Content: gofakeit.Paragraph(2, 4, 8, "\n"),
		UserID:  user.ID,
		Status:  models.PostStatusPending,
		Tags:    f.randomTags(),
	}

	daysBack := f.rnd.Intn(90)
	hoursBack := f.rnd.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on the given post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: gofakeit.Sentence(12),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like, ignoring duplicates.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		user.ID, post.ID,
	).Error
}

// CreateViewStat persists a view stat row with a random counter.
func (f *Factory) CreateViewStat(post *models.Post) error {
	stat := &models.ViewStat{
		PostID:     post.ID,
		UserID:     post.UserID,
		Views:      int64(f.rnd.Intn(500)),
		LastViewed: time.Now().Add(-time.Duration(f.rnd.Intn(72)) * time.Hour),
	}
	return f.db.Create(stat).Error
}

func (f *Factory) randomTags() []string {
	n := f.rnd.Intn(4)
	if n == 0 {
		return nil
	}
	picked := make(map[string]bool, n)
	var tags []string
	for len(tags) < n {
		tag := tagPool[f.rnd.Intn(len(tagPool))]
		if picked[tag] {
			continue
		}
		picked[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// randomStatus returns a weighted post status: most seeded posts are
// approved so the public feed has content.
func (f *Factory) randomStatus() models.PostStatus {
	switch n := f.rnd.Intn(10); {
	case n < 6:
		return models.PostStatusApproved
	case n < 8:
		return models.PostStatusPending
	case n < 9:
		return models.PostStatusRejected
	default:
		return models.PostStatusHidden
	}
}
