package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Test Post", Content: "Content", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		postID        uint
		currentUserID uint
		mockBehavior  func()
		expectedTitle string
		expectedCode  string
		expectedError bool
	}{
		{
			name:          "Success with Details",
			postID:        1,
			currentUserID: 2,
			mockBehavior: func() {
				// single query carries the count subqueries and liked flag
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*`)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id", "status", "comments_count", "likes_count", "liked"}).
						AddRow(1, "Post 1", 10, "approved", 5, 10, true))

				// preload author
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL`)).
					WithArgs(10).
					WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "user10"))
			},
			expectedTitle: "Post 1",
		},
		{
			name:          "Not Found",
			postID:        99,
			currentUserID: 0,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*`)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedCode:  models.CodeNotFound,
			expectedError: true,
		},
		{
			name:          "DB Error",
			postID:        1,
			currentUserID: 0,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*`)).
					WillReturnError(errors.New("connection refused"))
			},
			expectedCode:  models.CodeStoreUnavailable,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			post, err := repo.GetByID(ctx, tt.postID, tt.currentUserID)

			if tt.expectedError {
				assert.Error(t, err)
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.expectedCode, appErr.Code)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTitle, post.Title)
				assert.Equal(t, 5, post.CommentsCount)
				assert.Equal(t, 10, post.LikesCount)
				assert.True(t, post.Liked)
				assert.Equal(t, models.PostStatusApproved, post.Status)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_ListPublic_TagFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`tags @> \$\d`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id", "status"}).
			AddRow(1, "Tagged", 10, "approved"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "author"))

	posts, err := repo.ListPublic(context.Background(), PublicFilter{Tag: "golang"}, 20, 0, 0)
	assert.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Tagged", posts[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListPublic_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`title ILIKE .+ OR content ILIKE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id", "status"}).
			AddRow(2, "Matching", 11, "approved"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(11, "writer"))

	posts, err := repo.ListPublic(context.Background(), PublicFilter{Search: "match"}, 20, 0, 0)
	assert.NoError(t, err)
	require.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), 1, models.PostStatusApproved)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "deleted_at"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Like_IsIdempotent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	// conflict swallowed by DO NOTHING, zero rows affected
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Like(context.Background(), 2, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_IsLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	liked, err := repo.IsLiked(context.Background(), 2, 1)
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Unlike(context.Background(), 2, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Like_DropsCachedListings(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	ctx := context.Background()
	require.NoError(t, cache.SetJSON(ctx, cache.PublicPostsKey, []string{"stale"}, cache.PublicListTTL))
	require.NoError(t, cache.SetJSON(ctx, cache.PublicPostsTag("go"), []string{"stale"}, cache.PublicListTTL))

	mock.ExpectExec(`INSERT INTO likes`).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// A new like changes likes_count in the cached listings.
	require.NoError(t, repo.Like(ctx, 2, 1))
	assert.False(t, mr.Exists(cache.PublicPostsKey))
	assert.False(t, mr.Exists(cache.PublicPostsTag("go")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
