package handlers

import (
	"net/http"

	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler() *PostHandler {
	return &PostHandler{
		posts: services.NewPostService(),
	}
}

// Create handles POST /api/posts?userId=
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := requireUserIDQuery(c)
	if !ok {
		return
	}

	var req services.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post body: " + err.Error()})
		return
	}

	post, err := h.posts.Create(req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// List handles GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	log.Info().Int("count", len(posts)).Msg("retrieved posts")
	c.JSON(http.StatusOK, posts)
}

// Get handles GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := requireIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListByCategory handles GET /api/posts/category/:category
func (h *PostHandler) ListByCategory(c *gin.Context) {
	posts, err := h.posts.GetByCategory(c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListByUser handles GET /api/posts/user/:userId
func (h *PostHandler) ListByUser(c *gin.Context) {
	userID, ok := requireIDParam(c, "userId")
	if !ok {
		return
	}

	posts, err := h.posts.GetByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Search handles GET /api/posts/search?q=&page=&size=
func (h *PostHandler) Search(c *gin.Context) {
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	size := utils.StringToInt(c.DefaultQuery("size", "10"))

	result, err := h.posts.Search(c.Query("q"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Like handles POST /api/posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	id, ok := requireIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.Like(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Unlike handles POST /api/posts/:id/unlike
func (h *PostHandler) Unlike(c *gin.Context) {
	id, ok := requireIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.Unlike(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// LikeCount handles GET /api/posts/:id/likes/count
func (h *PostHandler) LikeCount(c *gin.Context) {
	id, ok := requireIDParam(c, "id")
	if !ok {
		return
	}

	count, err := h.posts.LikeCount(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
