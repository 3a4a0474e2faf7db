package services

import (
	"errors"
	"strings"
	"time"

	"inkwell/internal/apperr"
	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CommentService struct{}

func NewCommentService() *CommentService {
	return &CommentService{}
}

type CommentRequest struct {
	PostID  uint   `json:"postId"`
	Message string `json:"message" binding:"required"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	PostID    uint      `json:"postId"`
	UserID    uint      `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentPage is the shape of paginated comment results.
type CommentPage struct {
	Content       []CommentResponse `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
}

// Create persists a comment for an existing post and user. Both existence
// checks and the insert run in one transaction.
func (s *CommentService) Create(req CommentRequest, userID uint) (*CommentResponse, error) {
	log.Info().Uint("post_id", req.PostID).Uint("user_id", userID).Msg("creating comment")

	var comment models.Comment
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, req.PostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Post not found with id: %d", req.PostID)
			}
			return err
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("User not found with id: %d", userID)
			}
			return err
		}

		comment = models.Comment{
			PostID:  post.ID,
			UserID:  user.ID,
			Message: utils.SanitizeText(req.Message),
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		comment.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("comment_id", comment.ID).Msg("comment saved")
	return s.toResponse(&comment), nil
}

// GetByPostID returns all comments on a post, oldest first.
func (s *CommentService) GetByPostID(postID uint) ([]CommentResponse, error) {
	var comments []models.Comment
	if err := db.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return s.toResponses(comments), nil
}

// GetPageByPostID returns one page of comments on a post. sort accepts
// "createdAt,asc" or "createdAt,desc"; anything else falls back to newest
// first.
func (s *CommentService) GetPageByPostID(postID uint, page, size int, sort string) (*CommentPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	var total int64
	if err := db.DB.Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := db.DB.Preload("User").
		Where("post_id = ?", postID).
		Order(sortOrder(sort)).
		Offset((page - 1) * size).
		Limit(size).
		Find(&comments).Error; err != nil {
		return nil, err
	}

	return &CommentPage{
		Content:       s.toResponses(comments),
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages(total, size),
	}, nil
}

// GetByUser returns all comments written by a user, newest first.
func (s *CommentService) GetByUser(userID uint) ([]CommentResponse, error) {
	var comments []models.Comment
	if err := db.DB.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return s.toResponses(comments), nil
}

// Update replaces the message of a comment. Only the author may edit.
func (s *CommentService) Update(commentID uint, req CommentRequest, userID uint) (*CommentResponse, error) {
	log.Info().Uint("comment_id", commentID).Msg("updating comment")

	var comment *models.Comment
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		comment, err = s.fetchOwned(tx, commentID, userID, "update")
		if err != nil {
			return err
		}

		message := utils.SanitizeText(req.Message)
		if err := tx.Model(comment).UpdateColumn("message", message).Error; err != nil {
			return err
		}
		comment.Message = message
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(comment), nil
}

// Delete removes a comment. Only the author may delete.
func (s *CommentService) Delete(commentID, userID uint) error {
	log.Info().Uint("comment_id", commentID).Msg("deleting comment")

	return db.DB.Transaction(func(tx *gorm.DB) error {
		comment, err := s.fetchOwned(tx, commentID, userID, "delete")
		if err != nil {
			return err
		}
		return tx.Delete(comment).Error
	})
}

func (s *CommentService) fetchOwned(tx *gorm.DB, commentID, userID uint, action string) (*models.Comment, error) {
	var comment models.Comment
	if err := tx.Preload("User").First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Comment not found with id: %d", commentID)
		}
		return nil, err
	}

	if comment.UserID != userID {
		log.Warn().Uint("comment_id", commentID).Uint("user_id", userID).Msg("ownership check failed")
		return nil, apperr.Forbidden("Not authorized to %s this comment", action)
	}
	return &comment, nil
}

func sortOrder(sort string) string {
	if strings.EqualFold(sort, "createdAt,asc") {
		return "created_at ASC"
	}
	return "created_at DESC"
}

func (s *CommentService) toResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		Message:   comment.Message,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Username:  comment.User.Username,
		CreatedAt: comment.CreatedAt,
	}
}

func (s *CommentService) toResponses(comments []models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *s.toResponse(&comments[i]))
	}
	return responses
}
