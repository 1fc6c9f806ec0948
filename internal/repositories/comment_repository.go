package repositories

import (
	"github.com/inkstream/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetThreadsByPostID(postID string) ([]models.CommentThread, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetThreadsByPostID retrieves the top-level comments for a post, newest
// first, each with its direct replies in chronological order.
func (r *PostgresCommentRepository) GetThreadsByPostID(postID string) ([]models.CommentThread, error) {
	var topLevel []models.Comment
	if err := r.db.Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC").
		Find(&topLevel).Error; err != nil {
		return nil, err
	}

	threads := make([]models.CommentThread, len(topLevel))
	for i, c := range topLevel {
		var replies []models.Comment
		if err := r.db.Where("parent_id = ?", c.ID).
			Order("created_at ASC").
			Find(&replies).Error; err != nil {
			return nil, err
		}
		threads[i] = models.CommentThread{Comment: c, Replies: replies}
	}
	return threads, nil
}

// UpdateComment updates an existing comment in PostgreSQL
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteComment deletes a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
