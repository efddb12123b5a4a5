// Package service holds the business logic coordinating repositories:
// input validation, ownership checks, and the like/unlike state machine.
package service

import (
	"context"
	"errors"
	"log/slog"

	"pulse/internal/middleware"
	"pulse/internal/models"
	"pulse/internal/repository"

	"gorm.io/gorm"
)

const (
	maxTitleLen = 40
	maxBodyLen  = 100
)

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

type CreatePostInput struct {
	AuthorID    uint
	AuthorEmail string
	Title       string
	Body        string
}

type UpdatePostInput struct {
	RequesterID uint
	PostID      uint
	Value       string
}

type DeletePostInput struct {
	RequesterID uint
	PostID      uint
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost stores a new post with the author's email snapshot and a zero
// like counter.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 40 characters)")
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if len(in.Body) > maxBodyLen {
		return nil, models.NewValidationError("Body too long (max 100 characters)")
	}

	post := &models.Post{
		Title:       in.Title,
		Body:        in.Body,
		AuthorID:    in.AuthorID,
		AuthorEmail: in.AuthorEmail,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPostWithComments returns the post and every comment attached to it.
func (s *PostService) GetPostWithComments(ctx context.Context, postID uint) (*models.PostWithComments, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.PostWithComments{Post: post, Comments: comments}, nil
}

// ListUserPosts returns every post by the given author, each with its full
// comment list. A failed comment fetch for one post degrades that post to an
// empty comment list instead of failing the whole response.
func (s *PostService) ListUserPosts(ctx context.Context, authorID uint) ([]*models.PostWithComments, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, models.NewNotFoundError("Posts for user", authorID)
	}

	out := make([]*models.PostWithComments, 0, len(posts))
	for _, post := range posts {
		comments, err := s.commentRepo.ListByPost(ctx, post.ID)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "comment fetch failed for post",
				slog.Any("post_id", post.ID),
				slog.String("error", err.Error()),
			)
			comments = nil
		}
		out = append(out, &models.PostWithComments{Post: post, Comments: comments})
	}
	return out, nil
}

// UpdateTitle replaces a post's title. Only the post's author may update it.
func (s *PostService) UpdateTitle(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.Value == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Value) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 40 characters)")
	}
	if err := s.checkOwnership(ctx, in.PostID, in.RequesterID, "update"); err != nil {
		return nil, err
	}

	post, err := s.postRepo.UpdateTitle(ctx, in.PostID, in.Value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}
	return post, nil
}

// UpdateBody replaces a post's body. Only the post's author may update it.
func (s *PostService) UpdateBody(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.Value == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if len(in.Value) > maxBodyLen {
		return nil, models.NewValidationError("Body too long (max 100 characters)")
	}
	if err := s.checkOwnership(ctx, in.PostID, in.RequesterID, "update"); err != nil {
		return nil, err
	}

	post, err := s.postRepo.UpdateBody(ctx, in.PostID, in.Value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and all its comments and likes. Only the post's
// author may delete it. Returns the deleted post snapshot.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}
	if post.AuthorID != in.RequesterID {
		return nil, models.NewUnauthorizedError("You can only delete your own posts")
	}

	commentsRemoved, likesRemoved, err := s.postRepo.Delete(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}
	middleware.CascadedRows.WithLabelValues("comments").Add(float64(commentsRemoved))
	middleware.CascadedRows.WithLabelValues("likes").Add(float64(likesRemoved))
	return post, nil
}

// LikePost transitions the (post, user) pair from NotLiked to Liked. A pair
// already in Liked fails with a conflict and changes nothing.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (*models.Like, error) {
	like, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			middleware.LikeConflicts.Inc()
			return nil, models.NewConflictError("Post already liked")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, models.NewNotFoundError("Post", postID)
		default:
			return nil, err
		}
	}
	middleware.LikesApplied.WithLabelValues("like").Inc()
	return like, nil
}

// UnlikePost transitions the pair from Liked back to NotLiked. A pair not in
// Liked fails with not-found and changes nothing.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (*models.Like, error) {
	like, err := s.postRepo.Unlike(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Like", postID)
		}
		return nil, err
	}
	middleware.LikesApplied.WithLabelValues("unlike").Inc()
	return like, nil
}

// ListLikedPosts returns the posts the user has liked.
func (s *PostService) ListLikedPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.postRepo.ListLikedByUser(ctx, userID)
}

func (s *PostService) checkOwnership(ctx context.Context, postID, requesterID uint, action string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", postID)
		}
		return err
	}
	if post.AuthorID != requesterID {
		return models.NewUnauthorizedError("You can only " + action + " your own posts")
	}
	return nil
}
