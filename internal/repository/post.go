// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"pulse/internal/cache"
	"pulse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts and their likes.
// Like, Unlike, and Delete are the multi-step mutations: each runs as a
// single transaction so the like_count column and the like/comment rows are
// never observable in a half-applied state.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error)
	UpdateTitle(ctx context.Context, id uint, title string) (*models.Post, error)
	UpdateBody(ctx context.Context, id uint, body string) (*models.Post, error)
	Delete(ctx context.Context, id uint) (commentsRemoved, likesRemoved int64, err error)
	Like(ctx context.Context, userID, postID uint) (*models.Like, error)
	Unlike(ctx context.Context, userID, postID uint) (*models.Like, error)
	ListLikedByUser(ctx context.Context, userID uint) ([]*models.Post, error)
	CountLikes(ctx context.Context, postID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostsListKey)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.PostsListKey, &posts, cache.PostListTTL, func() error {
		return r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	})
	return posts, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) UpdateTitle(ctx context.Context, id uint, title string) (*models.Post, error) {
	return r.updateColumn(ctx, id, "title", title)
}

func (r *postRepository) UpdateBody(ctx context.Context, id uint, body string) (*models.Post, error) {
	return r.updateColumn(ctx, id, "body", body)
}

func (r *postRepository) updateColumn(ctx context.Context, id uint, column, value string) (*models.Post, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, id)

	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes the post and cascades to its comments and likes in the same
// transaction. Returns the number of dependent rows removed.
func (r *postRepository) Delete(ctx context.Context, id uint) (commentsRemoved, likesRemoved int64, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		cres := tx.Where("post_id = ?", id).Delete(&models.Comment{})
		if cres.Error != nil {
			return cres.Error
		}
		commentsRemoved = cres.RowsAffected

		lres := tx.Where("post_id = ?", id).Delete(&models.Like{})
		if lres.Error != nil {
			return lres.Error
		}
		likesRemoved = lres.RowsAffected
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	cache.InvalidatePost(ctx, id)
	return commentsRemoved, likesRemoved, nil
}

// Like inserts the like row and increments the post's counter as one unit.
// The ON CONFLICT DO NOTHING insert makes concurrent duplicate likes race-
// safe: only the transaction that actually inserted a row increments the
// counter, every other one rolls back with gorm.ErrDuplicatedKey.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) (*models.Like, error) {
	like := &models.Like{PostID: postID, UserID: userID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrDuplicatedKey
		}

		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, postID)
	return like, nil
}

// Unlike deletes the like row and decrements the counter as one unit. The
// delete-by-ID rows-affected check means a concurrent unlike of the same
// pair decrements exactly once; the loser rolls back with ErrRecordNotFound
// so the counter can never go negative.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Like{}, like.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, postID)
	return &like, nil
}

func (r *postRepository) ListLikedByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
