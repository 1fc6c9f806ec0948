package services

import (
	"github.com/inkstream/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TargetKind says what a reaction points at.
type TargetKind int

const (
	TargetPost TargetKind = iota
	TargetComment
)

// ReactionTarget is a validated reaction target: exactly one of PostID /
// CommentID is set.
type ReactionTarget struct {
	Kind      TargetKind
	PostID    *string
	CommentID *uint
}

// ResolveReactionTarget confirms that a reaction payload references exactly
// one of a post or a comment. Pure validation, no lookups.
func ResolveReactionTarget(postID *string, commentID *uint) (ReactionTarget, error) {
	if postID == nil && commentID == nil {
		return ReactionTarget{}, ErrInvalidTarget
	}
	if postID != nil && commentID != nil {
		return ReactionTarget{}, ErrInvalidTarget
	}
	if postID != nil {
		if _, err := primitive.ObjectIDFromHex(*postID); err != nil {
			return ReactionTarget{}, ErrMalformedReference
		}
		return ReactionTarget{Kind: TargetPost, PostID: postID}, nil
	}
	return ReactionTarget{Kind: TargetComment, CommentID: commentID}, nil
}

// ValidateReplyParent confirms that a reply's parent comment sits on the same
// post the reply names.
func ValidateReplyParent(postID string, parent *models.Comment) error {
	if _, err := primitive.ObjectIDFromHex(postID); err != nil {
		return ErrMalformedReference
	}
	if parent.PostID != postID {
		return ErrCrossPostReply
	}
	return nil
}
