package services

import (
	"testing"

	"github.com/inkstream/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveReactionTargetPost(t *testing.T) {
	postID := primitive.NewObjectID().Hex()

	target, err := ResolveReactionTarget(&postID, nil)
	require.NoError(t, err)
	assert.Equal(t, TargetPost, target.Kind)
	assert.Equal(t, postID, *target.PostID)
	assert.Nil(t, target.CommentID)
}

func TestResolveReactionTargetComment(t *testing.T) {
	commentID := uint(7)

	target, err := ResolveReactionTarget(nil, &commentID)
	require.NoError(t, err)
	assert.Equal(t, TargetComment, target.Kind)
	assert.Equal(t, commentID, *target.CommentID)
	assert.Nil(t, target.PostID)
}

func TestResolveReactionTargetNeither(t *testing.T) {
	_, err := ResolveReactionTarget(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestResolveReactionTargetBoth(t *testing.T) {
	postID := primitive.NewObjectID().Hex()
	commentID := uint(7)

	_, err := ResolveReactionTarget(&postID, &commentID)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestResolveReactionTargetMalformedPostID(t *testing.T) {
	postID := "not-an-object-id"

	_, err := ResolveReactionTarget(&postID, nil)
	assert.ErrorIs(t, err, ErrMalformedReference)
}

func TestValidateReplyParent(t *testing.T) {
	postID := primitive.NewObjectID().Hex()
	parent := &models.Comment{PostID: postID, UserID: 1}

	assert.NoError(t, ValidateReplyParent(postID, parent))
}

func TestValidateReplyParentCrossPost(t *testing.T) {
	postID := primitive.NewObjectID().Hex()
	otherPostID := primitive.NewObjectID().Hex()
	parent := &models.Comment{PostID: otherPostID, UserID: 1}

	assert.ErrorIs(t, ValidateReplyParent(postID, parent), ErrCrossPostReply)
}

func TestValidateReplyParentMalformedPostID(t *testing.T) {
	parent := &models.Comment{PostID: "whatever", UserID: 1}

	assert.ErrorIs(t, ValidateReplyParent("nope", parent), ErrMalformedReference)
}
