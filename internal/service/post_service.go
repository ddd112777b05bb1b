// Package service contains the application's business logic.
package service

import (
	"context"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000
	maxCommentLen = 2000
	maxTags       = 10
	maxTagLen     = 50

	// publicPageSize is the only page size served from cache. The cache key
	// does not encode the limit, so any other size must hit the database.
	publicPageSize = 20
)

// PostService implements the post lifecycle: creation, author edits,
// moderation transitions, likes and comments.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
	Tags    []string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   string
	Content string
	// Tags replaces the tag list when non-nil; nil leaves it untouched.
	Tags *[]string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

type ListPublicInput struct {
	Tag           string
	Search        string
	Limit         int
	Offset        int
	CurrentUserID uint
}

type AddCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		Tags:    tags,
		UserID:  in.UserID,
		Status:  models.PostStatusPending,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// UpdatePost applies only the provided fields. Posts are editable by their
// author and only while still pending review.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}
	if post.Status != models.PostStatusPending {
		return nil, models.NewInvalidStateError("Only pending posts can be edited")
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = in.Content
	}
	if in.Tags != nil {
		tags, err := normalizeTags(*in.Tags)
		if err != nil {
			return nil, err
		}
		post.Tags = tags
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Comments and view stats are left behind on
// purpose; see AnalyticsService for how orphaned stats are treated.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

// ApprovePost publishes a post. The transition is applied regardless of the
// current status; moderators may re-approve a hidden post to restore it.
func (s *PostService) ApprovePost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.setStatus(ctx, postID, models.PostStatusApproved)
}

// RejectPost marks a post rejected. Like ApprovePost, no precondition on the
// current status is enforced.
func (s *PostService) RejectPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.setStatus(ctx, postID, models.PostStatusRejected)
}

// HidePost retracts an approved post from public view.
func (s *PostService) HidePost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusApproved {
		return nil, models.NewInvalidStateError("Only approved posts can be hidden")
	}
	if err := s.postRepo.UpdateStatus(ctx, postID, models.PostStatusHidden); err != nil {
		return nil, err
	}
	post.Status = models.PostStatusHidden
	return post, nil
}

func (s *PostService) setStatus(ctx context.Context, postID uint, status models.PostStatus) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.UpdateStatus(ctx, postID, status); err != nil {
		return nil, err
	}
	post.Status = status
	return post, nil
}

// ToggleLike flips the caller's like on an approved post and returns the
// resulting liked state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	if post.Status != models.PostStatusApproved {
		return false, models.NewInvalidStateError("Only approved posts can be liked")
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusApproved {
		return nil, models.NewInvalidStateError("Only approved posts can be commented on")
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments serves the public comment listing. Like GetPublicPost, posts
// that are not approved read as missing so their existence does not leak.
func (s *PostService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusApproved {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

// ListPublic returns approved posts, newest first. The unfiltered and
// tag-filtered first pages are served cache-aside for anonymous readers;
// logged-in readers bypass the cache so their liked flags stay accurate.
func (s *PostService) ListPublic(ctx context.Context, in ListPublicInput) ([]*models.Post, error) {
	filter := repository.PublicFilter{Tag: in.Tag, Search: in.Search}

	cacheable := in.CurrentUserID == 0 && in.Search == "" && in.Offset == 0 && in.Limit == publicPageSize
	if cacheable {
		key := cache.PublicPostsKey
		if in.Tag != "" {
			key = cache.PublicPostsTag(in.Tag)
		}
		var posts []*models.Post
		err := cache.Aside(ctx, key, &posts, cache.PublicListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.ListPublic(ctx, filter, in.Limit, in.Offset, 0)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}
		return posts, nil
	}

	return s.postRepo.ListPublic(ctx, filter, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *PostService) ListPending(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListByStatus(ctx, models.PostStatusPending, limit, offset)
}

func (s *PostService) ListMine(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListByAuthor(ctx, userID, limit, offset, userID)
}

// GetPublicPost returns a post for the public single-post page. Posts that
// are not approved are reported as missing rather than forbidden, so their
// existence does not leak.
func (s *PostService) GetPublicPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusApproved {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

func normalizeTags(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(raw))
	var tags []string
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if len(t) > maxTagLen {
			return nil, models.NewValidationError("Tag too long (max 50 characters)")
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	if len(tags) > maxTags {
		return nil, models.NewValidationError("Too many tags (max 10)")
	}
	return tags, nil
}
