package services

import (
	"errors"
	"time"

	"inkwell/internal/apperr"
	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PostService struct{}

func NewPostService() *PostService {
	return &PostService{}
}

type PostRequest struct {
	Title      string `json:"title" binding:"required"`
	Excerpt    string `json:"excerpt"`
	Category   string `json:"category"`
	CoverImage string `json:"coverImage"`
	Content    string `json:"content"`
}

type PostResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	Category     string    `json:"category"`
	CoverImage   string    `json:"coverImage"`
	Content      string    `json:"content"`
	ContentHTML  string    `json:"contentHtml,omitempty"`
	Likes        int       `json:"likes"`
	UserID       uint      `json:"userId"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	CommentCount int       `json:"commentCount"`
}

// PostPage is the shape of paginated post results (search).
type PostPage struct {
	Content       []PostResponse `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}

// Create persists a new post for an existing user. Likes start at zero.
func (s *PostService) Create(req PostRequest, userID uint) (*PostResponse, error) {
	log.Info().Uint("user_id", userID).Str("title", req.Title).Msg("creating post")

	var post models.Post
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("User not found with id: %d", userID)
			}
			return err
		}

		post = models.Post{
			UserID:     user.ID,
			Title:      req.Title,
			Excerpt:    req.Excerpt,
			Category:   req.Category,
			CoverImage: req.CoverImage,
			Content:    req.Content,
			Likes:      0,
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		post.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("post_id", post.ID).Msg("post saved")
	return s.toResponse(&post, false), nil
}

// GetByID returns one post with its live comment count and the body rendered
// as sanitized HTML.
func (s *PostService) GetByID(id uint) (*PostResponse, error) {
	post, err := s.fetch(id)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.DB.Model(&models.Comment{}).Where("post_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}

	resp := s.toResponse(post, true)
	resp.CommentCount = int(count)
	return resp, nil
}

// GetAll returns every post, newest first, with comment counts filled by a
// single grouped query.
func (s *PostService) GetAll() ([]PostResponse, error) {
	var posts []models.Post
	if err := db.DB.Preload("User").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(posts); err != nil {
		return nil, err
	}
	return s.toResponses(posts), nil
}

// GetByCategory returns all posts in a category, newest first.
func (s *PostService) GetByCategory(category string) ([]PostResponse, error) {
	var posts []models.Post
	if err := db.DB.Preload("User").
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(posts); err != nil {
		return nil, err
	}
	return s.toResponses(posts), nil
}

// GetByUser returns all posts authored by a user, newest first.
func (s *PostService) GetByUser(userID uint) ([]PostResponse, error) {
	var posts []models.Post
	if err := db.DB.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(posts); err != nil {
		return nil, err
	}
	return s.toResponses(posts), nil
}

// Search matches post titles case-insensitively, paginated.
func (s *PostService) Search(q string, page, size int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	pattern := "%" + q + "%"

	var total int64
	if err := db.DB.Model(&models.Post{}).
		Where("title ILIKE ?", pattern).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := db.DB.Preload("User").
		Where("title ILIKE ?", pattern).
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(posts); err != nil {
		return nil, err
	}

	return &PostPage{
		Content:       s.toResponses(posts),
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages(total, size),
	}, nil
}

// Like adds one to the stored like counter with a single UPDATE, then returns
// the post reflecting the new value. The increment is applied at the store so
// concurrent likes are never lost.
func (s *PostService) Like(id uint) (*PostResponse, error) {
	log.Info().Uint("post_id", id).Msg("incrementing likes")

	var post models.Post
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Post not found with id: %d", id)
		}
		return tx.Preload("User").First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}

	return s.withCommentCount(&post)
}

// Unlike subtracts one from the stored like counter. The guard `likes > 0`
// is evaluated inside the UPDATE itself, so the counter can never go
// negative; unliking at zero is a silent no-op that still succeeds.
func (s *PostService) Unlike(id uint) (*PostResponse, error) {
	log.Info().Uint("post_id", id).Msg("decrementing likes")

	var post models.Post
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ? AND likes > 0", id).
			UpdateColumn("likes", gorm.Expr("likes - ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if err := tx.Preload("User").First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Post not found with id: %d", id)
			}
			return err
		}
		if res.RowsAffected == 0 {
			log.Warn().Uint("post_id", id).Msg("likes already at zero, nothing to decrement")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.withCommentCount(&post)
}

// LikeCount returns only the stored like counter.
func (s *PostService) LikeCount(id uint) (int, error) {
	post, err := s.fetch(id)
	if err != nil {
		return 0, err
	}
	return post.Likes, nil
}

func (s *PostService) fetch(id uint) (*models.Post, error) {
	var post models.Post
	if err := db.DB.Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post not found with id: %d", id)
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostService) withCommentCount(post *models.Post) (*PostResponse, error) {
	var count int64
	if err := db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	resp := s.toResponse(post, false)
	resp.CommentCount = int(count)
	return resp, nil
}

// fillCommentCounts fills CommentCount for a batch of posts with one
// GROUP BY query.
func (s *PostService) fillCommentCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	if err := db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error; err != nil {
		return err
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}

func (s *PostService) toResponse(post *models.Post, renderHTML bool) *PostResponse {
	resp := &PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Excerpt:      post.Excerpt,
		Category:     post.Category,
		CoverImage:   post.CoverImage,
		Content:      post.Content,
		Likes:        post.Likes,
		UserID:       post.UserID,
		Username:     post.User.Username,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
		CommentCount: post.CommentCount,
	}
	if renderHTML {
		resp.ContentHTML = utils.RenderMarkdown(post.Content)
	}
	return resp
}

func (s *PostService) toResponses(posts []models.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, *s.toResponse(&posts[i], false))
	}
	return responses
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := int(total) / size
	if int(total)%size != 0 {
		pages++
	}
	return pages
}
