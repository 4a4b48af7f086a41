package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogapp/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	// FindWithRelations loads the post with its author and its comments.
	FindWithRelations(ctx context.Context, id uint) (*model.Post, error)
	// ListWithAuthor returns every post, newest first.
	ListWithAuthor(ctx context.Context) ([]model.Post, error)
	// ListByUser returns the posts owned by userID, newest first.
	ListByUser(ctx context.Context, userID uint) ([]model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post. Associations are never written through it.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	return translate(err, "create post")
}

// FindByID finds a post by ID.
func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("find post %d", id))
	}
	return &post, nil
}

func (r *postRepository) FindWithRelations(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order(newestFirst)
		}).
		First(&post, id).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("find post %d", id))
	}
	return &post, nil
}

func (r *postRepository) ListWithAuthor(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Preload("User").Order(newestFirst).Find(&posts).Error; err != nil {
		return nil, translate(err, "list posts")
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order(newestFirst).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("list posts of user %d", userID))
	}
	return posts, nil
}
