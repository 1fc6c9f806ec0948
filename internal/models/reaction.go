package models

import "time"

// ReactionType is the stance a user takes on a target.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Valid reports whether the type is one of the known reaction types.
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction represents one user's stance on exactly one of a post or a comment.
// The composite unique indexes are what make the toggle's check-then-act safe
// under concurrent duplicate submissions: a racing second insert for the same
// (user, target) pair fails with a duplicate-key error instead of creating a
// second row.
type Reaction struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	UserID    uint         `json:"user_id" gorm:"index:idx_reactions_user_post,unique;index:idx_reactions_user_comment,unique"`
	PostID    *string      `json:"post_id,omitempty" gorm:"index:idx_reactions_user_post,unique"` // MongoDB ObjectID as string
	CommentID *uint        `json:"comment_id,omitempty" gorm:"index:idx_reactions_user_comment,unique"`
	Type      ReactionType `json:"reaction_type" gorm:"size:10"`
	CreatedAt time.Time    `json:"created_at"`
}

// SubmitReactionRequest defines the request body for submitting a reaction.
// Exactly one of PostID / CommentID must be set.
type SubmitReactionRequest struct {
	PostID    *string      `json:"post_id,omitempty"`
	CommentID *uint        `json:"comment_id,omitempty"`
	Type      ReactionType `json:"reaction_type" validate:"required,oneof=like dislike"`
}
