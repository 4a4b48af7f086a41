package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapp/internal/service"
	"blogapp/internal/view"
)

// PostHandler handles posts and comments. Every route sits behind the session gate.
type PostHandler struct {
	postService service.PostService
	log         *slog.Logger
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService, log *slog.Logger) *PostHandler {
	return &PostHandler{postService: postService, log: log}
}

// PostRequest represents the new post form.
type PostRequest struct {
	Title string `form:"title" validate:"omitempty,min=2,max=150" msg:"Please enter a title between 2 and 150 characters"`
	Body  string `form:"body" validate:"required" msg:"Please enter a post body"`
}

// CommentRequest represents the comment form.
type CommentRequest struct {
	Comment string `form:"comment" validate:"required" msg:"Please enter a comment"`
}

// ListAll godoc
// @Summary All posts, newest first
// @Tags posts
// @Produce html
// @Success 200 {string} string "HTML page"
// @Success 302 "Redirect to /oops without a session"
// @Router /post [get]
func (h *PostHandler) ListAll(c echo.Context) error {
	posts, err := h.postService.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, h.log, "list posts", err)
	}
	return c.Render(http.StatusOK, view.PageAllPosts, view.Data{User: currentUser(c), Posts: posts})
}

// NewForm godoc
// @Summary New post form
// @Tags posts
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /post/new [get]
func (h *PostHandler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageAddPost, view.Data{User: currentUser(c)})
}

// Create godoc
// @Summary Publish a post
// @Tags posts
// @Accept x-www-form-urlencoded
// @Param title formData string false "Title (2-150 characters)"
// @Param body formData string true "Body"
// @Success 302 "Redirect to the new post, or /oops on failure"
// @Router /post/new [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, "create post", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, "create post", err)
	}

	user := currentUser(c)
	post, err := h.postService.Create(c.Request().Context(), user.UserID, req.Title, req.Body)
	if err != nil {
		return fail(c, h.log, "create post", err)
	}
	return c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// ListMine godoc
// @Summary Posts written by the logged-in user
// @Tags posts
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /post/my [get]
func (h *PostHandler) ListMine(c echo.Context) error {
	user := currentUser(c)
	posts, err := h.postService.ListByUser(c.Request().Context(), user.UserID)
	if err != nil {
		return fail(c, h.log, "list own posts", err)
	}
	return c.Render(http.StatusOK, view.PageUserPosts, view.Data{User: user, Posts: posts})
}

// Detail godoc
// @Summary A post with its comments
// @Tags posts
// @Produce html
// @Param postId path int true "Post ID"
// @Success 200 {string} string "HTML page"
// @Success 302 "Redirect to /oops when the post does not exist"
// @Router /post/{postId} [get]
func (h *PostHandler) Detail(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return fail(c, h.log, "post detail", err)
	}

	detail, err := h.postService.Detail(c.Request().Context(), postID)
	if err != nil {
		return fail(c, h.log, "post detail", err)
	}
	return c.Render(http.StatusOK, view.PageSpecificPost, view.Data{
		User:     currentUser(c),
		Post:     detail.Post,
		Comments: detail.Comments,
	})
}

// AddComment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept x-www-form-urlencoded
// @Param postId path int true "Post ID"
// @Param comment formData string true "Comment text"
// @Success 302 "Redirect back to the post, or /oops on failure"
// @Router /post/{postId} [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return fail(c, h.log, "add comment", err)
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, "add comment", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, "add comment", err)
	}

	user := currentUser(c)
	if _, err := h.postService.AddComment(c.Request().Context(), user.UserID, postID, req.Comment); err != nil {
		return fail(c, h.log, "add comment", err)
	}
	return c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", postID))
}
