package service

import (
	"context"
	"testing"

	"pulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) UpdateTitle(ctx context.Context, id uint, title string) (*models.Post, error) {
	args := m.Called(ctx, id, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) UpdateBody(ctx context.Context, id uint, body string) (*models.Post, error) {
	args := m.Called(ctx, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) (int64, int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Like(ctx context.Context, userID, postID uint) (*models.Like, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockPostRepository) Unlike(ctx context.Context, userID, postID uint) (*models.Like, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockPostRepository) ListLikedByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreatePostValidation(t *testing.T) {
	longTitle := make([]byte, 41)
	longBody := make([]byte, 101)
	for i := range longTitle {
		longTitle[i] = 'a'
	}
	for i := range longBody {
		longBody[i] = 'b'
	}

	tests := []struct {
		name  string
		title string
		body  string
	}{
		{"empty title", "", "body"},
		{"title too long", string(longTitle), "body"},
		{"empty body", "title", ""},
		{"body too long", "title", string(longBody)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPostService(new(MockPostRepository), new(MockCommentRepository))
			_, err := svc.CreatePost(context.Background(), CreatePostInput{
				AuthorID:    1,
				AuthorEmail: "a@b.com",
				Title:       tt.title,
				Body:        tt.body,
			})
			assertAppErrorCode(t, err, models.CodeValidation)
		})
	}
}

func TestCreatePostSuccess(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockCommentRepository))

	postRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID:    7,
		AuthorEmail: "author@example.com",
		Title:       "hello",
		Body:        "world",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), post.AuthorID)
	assert.Equal(t, "author@example.com", post.AuthorEmail)
	assert.Equal(t, 0, post.LikeCount)
	postRepo.AssertExpectations(t)
}

func TestGetPostWithComments(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	svc := NewPostService(postRepo, commentRepo)

	postRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, Title: "hello"}, nil)
	commentRepo.On("ListByPost", mock.Anything, uint(1)).Return([]*models.Comment{{ID: 5, PostID: 1}}, nil)

	got, err := svc.GetPostWithComments(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.Post.ID)
	assert.Len(t, got.Comments, 1)
}

func TestGetPostWithCommentsNotFound(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockCommentRepository))

	postRepo.On("GetByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetPostWithComments(context.Background(), 42)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestListUserPostsEmptyIsNotFound(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockCommentRepository))

	postRepo.On("ListByAuthor", mock.Anything, uint(3)).Return([]*models.Post{}, nil)

	_, err := svc.ListUserPosts(context.Background(), 3)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestListUserPostsDegradesOnCommentFailure(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	svc := NewPostService(postRepo, commentRepo)

	postRepo.On("ListByAuthor", mock.Anything, uint(3)).
		Return([]*models.Post{{ID: 1, AuthorID: 3}, {ID: 2, AuthorID: 3}}, nil)
	commentRepo.On("ListByPost", mock.Anything, uint(1)).Return([]*models.Comment{{ID: 9, PostID: 1}}, nil)
	commentRepo.On("ListByPost", mock.Anything, uint(2)).Return(nil, assert.AnError)

	got, err := svc.ListUserPosts(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Comments, 1)
	assert.Empty(t, got[1].Comments)
}

func TestUpdateTitleOwnership(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockCommentRepository))

	postRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, AuthorID: 10}, nil)

	_, err := svc.UpdateTitle(context.Background(), UpdatePostInput{
		RequesterID: 99,
		PostID:      1,
		Value:       "stolen",
	})
	assertAppErrorCode(t, err, models.CodeUnauthorized)
	postRepo.AssertNotCalled(t, "UpdateTitle", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTitleSuccess(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockCommentRepository))

	postRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, AuthorID: 10}, nil)
	postRepo.On("UpdateTitle", mock.Anything, uint(1), "renamed").
		Return(&models.Post{ID: 1, AuthorID: 10, Title: "renamed"}, nil)

	post, err := svc.UpdateTitle(context.Background(), UpdatePostInput{
		RequesterID: 10,
		PostID:      1,
		Value:       "renamed",
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", post.Title)
}

func TestUpdateBodyValidatesBeforeOwnership(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockCommentRepository))

	_, err := svc.UpdateBody(context.Background(), UpdatePostInput{
		RequesterID: 10,
		PostID:      1,
		Value:       "",
	})
	assertAppErrorCode(t, err, models.CodeValidation)
	postRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestDeletePostOwnership(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockCommentRepository))

	postRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, AuthorID: 10}, nil)

	_, err := svc.DeletePost(context.Background(), DeletePostInput{RequesterID: 11, PostID: 1})
	assertAppErrorCode(t, err, models.CodeUnauthorized)
	postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeletePostSuccess(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockCommentRepository))

	postRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, AuthorID: 10, Title: "bye"}, nil)
	postRepo.On("Delete", mock.Anything, uint(1)).Return(int64(3), int64(2), nil)

	post, err := svc.DeletePost(context.Background(), DeletePostInput{RequesterID: 10, PostID: 1})
	require.NoError(t, err)
	assert.Equal(t, "bye", post.Title)
	postRepo.AssertExpectations(t)
}

func TestLikePostMapsErrors(t *testing.T) {
	t.Run("duplicate is a conflict", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockCommentRepository))
		postRepo.On("Like", mock.Anything, uint(2), uint(1)).Return(nil, gorm.ErrDuplicatedKey)

		_, err := svc.LikePost(context.Background(), 2, 1)
		assertAppErrorCode(t, err, models.CodeConflict)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockCommentRepository))
		postRepo.On("Like", mock.Anything, uint(2), uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.LikePost(context.Background(), 2, 9)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("success returns the like", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockCommentRepository))
		postRepo.On("Like", mock.Anything, uint(2), uint(1)).
			Return(&models.Like{ID: 1, PostID: 1, UserID: 2}, nil)

		like, err := svc.LikePost(context.Background(), 2, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), like.PostID)
	})
}

func TestUnlikePostNotLiked(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockCommentRepository))

	postRepo.On("Unlike", mock.Anything, uint(2), uint(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UnlikePost(context.Background(), 2, 1)
	assertAppErrorCode(t, err, models.CodeNotFound)
}
