package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gutscas/santo-dashboard/internal/usecase"
)

// PostHandler exposes CRUD endpoints for posts.
type PostHandler struct {
	posts *usecase.PostService
}

func NewPostHandler(posts *usecase.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// List returns all posts, newest first.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list posts"))
		return
	}

	resp := make([]PostResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, newPostResponse(&posts[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// Create stores a new post.
func (h *PostHandler) Create(c *gin.Context) {
	input, ok := bindPostInput(c)
	if !ok {
		return
	}

	post, err := h.posts.Create(c.Request.Context(), input)
	if err != nil {
		h.respondPostError(c, err, "failed to create post")
		return
	}

	c.JSON(http.StatusCreated, newPostResponse(post))
}

// Get returns a post by its identifier.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondPostError(c, err, "failed to load post")
		return
	}

	c.JSON(http.StatusOK, newPostResponse(post))
}

// Update replaces the title and content of a post.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	input, ok := bindPostInput(c)
	if !ok {
		return
	}

	post, err := h.posts.Update(c.Request.Context(), id, input)
	if err != nil {
		h.respondPostError(c, err, "failed to update post")
		return
	}

	c.JSON(http.StatusOK, newPostResponse(post))
}

// Delete removes a post by its identifier.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), id); err != nil {
		h.respondPostError(c, err, "failed to delete post")
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *PostHandler) respondPostError(c *gin.Context, err error, fallback string) {
	RespondWithMappedError(c, err, []ErrorCase{
		{Err: usecase.ErrPostNotFound, Status: http.StatusNotFound, Message: "post not found"},
		{Err: usecase.ErrPostTitleTooLong, Status: http.StatusBadRequest, Message: "title must be at most 100 characters"},
	}, http.StatusInternalServerError, fallback)
}

func bindPostInput(c *gin.Context) (usecase.PostInput, bool) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "title is required and must be at most 100 characters"))
		return usecase.PostInput{}, false
	}

	return usecase.PostInput{Title: req.Title, Content: req.Content}, true
}
