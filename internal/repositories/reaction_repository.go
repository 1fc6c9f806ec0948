package repositories

import (
	"errors"

	"github.com/inkstream/backend/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateReaction is returned when an insert loses a race against an
// identical (user, target) insert and the unique index rejects it. Callers
// recover by re-reading the surviving row and retrying as an update.
var ErrDuplicateReaction = errors.New("reaction already exists for this user and target")

// ReactionFilter narrows reaction listings.
type ReactionFilter struct {
	PostID *string
	Type   *models.ReactionType
}

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	CreateReaction(reaction *models.Reaction) error
	GetReactionByID(id uint) (*models.Reaction, error)
	GetForPost(userID uint, postID string) (*models.Reaction, error)
	GetForComment(userID, commentID uint) (*models.Reaction, error)
	UpdateReactionType(id uint, t models.ReactionType) error
	DeleteReaction(id uint) error
	ListReactions(filter ReactionFilter) ([]models.Reaction, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// CreateReaction inserts a new reaction. The composite unique indexes on
// (user_id, post_id) and (user_id, comment_id) turn a racing duplicate insert
// into ErrDuplicateReaction; requires TranslateError on the gorm config.
func (r *PostgresReactionRepository) CreateReaction(reaction *models.Reaction) error {
	if err := r.db.Create(reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReaction
		}
		return err
	}
	return nil
}

// GetReactionByID retrieves a reaction by ID from PostgreSQL
func (r *PostgresReactionRepository) GetReactionByID(id uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.First(&reaction, id).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

// GetForPost retrieves the user's reaction on a post, if any
func (r *PostgresReactionRepository) GetForPost(userID uint, postID string) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

// GetForComment retrieves the user's reaction on a comment, if any
func (r *PostgresReactionRepository) GetForComment(userID, commentID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

// UpdateReactionType flips the type of an existing reaction in place, so the
// row identity and created_at are preserved.
func (r *PostgresReactionRepository) UpdateReactionType(id uint, t models.ReactionType) error {
	return r.db.Model(&models.Reaction{}).Where("id = ?", id).Update("type", t).Error
}

// DeleteReaction deletes a reaction by ID from PostgreSQL
func (r *PostgresReactionRepository) DeleteReaction(id uint) error {
	return r.db.Delete(&models.Reaction{}, id).Error
}

// ListReactions retrieves reactions matching the filter
func (r *PostgresReactionRepository) ListReactions(filter ReactionFilter) ([]models.Reaction, error) {
	query := r.db.Model(&models.Reaction{})
	if filter.PostID != nil {
		query = query.Where("post_id = ?", *filter.PostID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	var reactions []models.Reaction
	if err := query.Order("created_at DESC").Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}
