package handlers

import (
	"net/http"

	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		comments: services.NewCommentService(),
	}
}

// Create handles POST /api/comments?userId=
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := requireUserIDQuery(c)
	if !ok {
		return
	}

	var req services.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment body: " + err.Error()})
		return
	}

	comment, err := h.comments.Create(req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListByPost handles GET /api/comments/post/:postId
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := requireIDParam(c, "postId")
	if !ok {
		return
	}

	comments, err := h.comments.GetByPostID(postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// PageByPost handles GET /api/comments/post/:postId/paged?page=&size=&sort=
func (h *CommentHandler) PageByPost(c *gin.Context) {
	postID, ok := requireIDParam(c, "postId")
	if !ok {
		return
	}

	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	size := utils.StringToInt(c.DefaultQuery("size", "10"))
	sort := c.DefaultQuery("sort", "createdAt,desc")

	result, err := h.comments.GetPageByPostID(postID, page, size, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListByUser handles GET /api/comments/user/:userId
func (h *CommentHandler) ListByUser(c *gin.Context) {
	userID, ok := requireIDParam(c, "userId")
	if !ok {
		return
	}

	comments, err := h.comments.GetByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Update handles PUT /api/comments/:id?userId=
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := requireIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserIDQuery(c)
	if !ok {
		return
	}

	var req services.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment body: " + err.Error()})
		return
	}

	comment, err := h.comments.Update(commentID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /api/comments/:id?userId=
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := requireIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserIDQuery(c)
	if !ok {
		return
	}

	if err := h.comments.Delete(commentID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
