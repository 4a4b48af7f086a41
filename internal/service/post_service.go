package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	apperrors "blogapp/internal/errors"
	"blogapp/internal/metrics"
	"blogapp/internal/model"
	"blogapp/internal/repository"
)

// PostDetail is a post with its author and comments, plus the same comments
// loaded separately with their authors, newest first.
type PostDetail struct {
	Post     *model.Post
	Comments []model.Comment
}

// PostService handles posts and their comments.
type PostService interface {
	ListAll(ctx context.Context) ([]model.Post, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Post, error)
	Create(ctx context.Context, userID uint, title, body string) (*model.Post, error)
	Detail(ctx context.Context, postID uint) (*PostDetail, error)
	AddComment(ctx context.Context, userID, postID uint, text string) (*model.Comment, error)
}

type postService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewPostService creates a new post service.
func NewPostService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) PostService {
	return &postService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// ListAll returns every post with its author, newest first.
func (s *postService) ListAll(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.ListWithAuthor(ctx)
}

// ListByUser returns the posts owned by userID, newest first.
func (s *postService) ListByUser(ctx context.Context, userID uint) ([]model.Post, error) {
	return s.postRepo.ListByUser(ctx, userID)
}

// Create stores a post owned by userID.
func (s *postService) Create(ctx context.Context, userID uint, title, body string) (*model.Post, error) {
	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	post := &model.Post{
		Title:  title,
		Body:   body,
		UserID: author.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	post.User = *author

	metrics.PostsCreated.Inc()
	return post, nil
}

// Detail loads a post and its comments concurrently. Both reads must succeed.
func (s *postService) Detail(ctx context.Context, postID uint) (*PostDetail, error) {
	var detail PostDetail

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		post, err := s.postRepo.FindWithRelations(gctx, postID)
		detail.Post = post
		return err
	})
	g.Go(func() error {
		comments, err := s.commentRepo.ListByPost(gctx, postID)
		detail.Comments = comments
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if detail.Post == nil {
		return nil, fmt.Errorf("post %d: %w", postID, apperrors.ErrNotFound)
	}
	return &detail, nil
}

// AddComment attaches a comment by userID to postID.
func (s *postService) AddComment(ctx context.Context, userID, postID uint, text string) (*model.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("resolve post: %w", err)
	}

	comment := &model.Comment{
		Text:   text,
		UserID: userID,
		PostID: post.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	metrics.CommentsCreated.Inc()
	return comment, nil
}
