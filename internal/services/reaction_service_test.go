package services

import (
	"context"
	"sync"
	"testing"

	"github.com/inkstream/backend/internal/models"
	"github.com/inkstream/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReactionFixture(t *testing.T) (*ReactionService, *fakePostRepo, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	posts := newFakePostRepo()
	svc := NewReactionService(
		repositories.NewPostgresReactionRepository(db),
		repositories.NewPostgresCommentRepository(db),
		posts,
	)
	return svc, posts, db
}

func countReactions(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).Count(&count).Error)
	return count
}

func TestSubmitCreatesReaction(t *testing.T) {
	svc, posts, db := newReactionFixture(t)
	postID := posts.addPost(2, "Hello")

	outcome, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		PostID: &postID,
		Type:   models.ReactionLike,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, outcome.Kind)
	require.NotNil(t, outcome.Reaction)
	assert.Equal(t, models.ReactionLike, outcome.Reaction.Type)
	assert.Equal(t, int64(1), countReactions(t, db))
	assert.Equal(t, 1, posts.likes[postID])
}

func TestSubmitSameTypeTogglesOff(t *testing.T) {
	svc, posts, db := newReactionFixture(t)
	postID := posts.addPost(2, "Hello")
	req := models.SubmitReactionRequest{PostID: &postID, Type: models.ReactionLike}

	first, err := svc.Submit(context.Background(), 1, req)
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, first.Kind)

	second, err := svc.Submit(context.Background(), 1, req)
	require.NoError(t, err)

	assert.Equal(t, OutcomeToggledOff, second.Kind)
	assert.Equal(t, first.Reaction.ID, second.RemovedID)
	assert.Equal(t, int64(0), countReactions(t, db))
	assert.Equal(t, 0, posts.likes[postID])
}

func TestSubmitDifferentTypeSwitches(t *testing.T) {
	svc, posts, db := newReactionFixture(t)
	postID := posts.addPost(2, "Hello")

	first, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		PostID: &postID,
		Type:   models.ReactionLike,
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, first.Kind)

	second, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		PostID: &postID,
		Type:   models.ReactionDislike,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeSwitched, second.Kind)
	// Identity is preserved: the row is updated in place, not recreated.
	assert.Equal(t, first.Reaction.ID, second.Reaction.ID)
	assert.Equal(t, models.ReactionDislike, second.Reaction.Type)
	assert.Equal(t, int64(1), countReactions(t, db))

	var stored models.Reaction
	require.NoError(t, db.First(&stored, first.Reaction.ID).Error)
	assert.Equal(t, models.ReactionDislike, stored.Type)
	assert.Equal(t, 0, posts.likes[postID])
}

func TestSubmitAtMostOneRowPerTarget(t *testing.T) {
	svc, posts, db := newReactionFixture(t)
	postID := posts.addPost(2, "Hello")

	sequence := []models.ReactionType{
		models.ReactionLike,
		models.ReactionDislike,
		models.ReactionDislike,
		models.ReactionLike,
		models.ReactionLike,
		models.ReactionDislike,
	}
	for _, rt := range sequence {
		_, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{PostID: &postID, Type: rt})
		require.NoError(t, err)
		assert.LessOrEqual(t, countReactions(t, db), int64(1))
	}
}

func TestSubmitCommentTarget(t *testing.T) {
	svc, posts, db := newReactionFixture(t)
	postID := posts.addPost(2, "Hello")

	comment := &models.Comment{PostID: postID, UserID: 2, Content: "first"}
	require.NoError(t, db.Create(comment).Error)

	outcome, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		CommentID: &comment.ID,
		Type:      models.ReactionDislike,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, outcome.Kind)
	assert.Equal(t, comment.ID, *outcome.Reaction.CommentID)
	assert.Nil(t, outcome.Reaction.PostID)
}

func TestSubmitInvalidTargets(t *testing.T) {
	svc, posts, _ := newReactionFixture(t)
	postID := posts.addPost(2, "Hello")
	commentID := uint(1)

	_, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{Type: models.ReactionLike})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		PostID:    &postID,
		CommentID: &commentID,
		Type:      models.ReactionLike,
	})
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestSubmitMissingTarget(t *testing.T) {
	svc, _, _ := newReactionFixture(t)
	postID := "64f000000000000000000000"

	_, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		PostID: &postID,
		Type:   models.ReactionLike,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitRaceLoserSameTypeReadsAsCreated(t *testing.T) {
	posts := newFakePostRepo()
	postID := posts.addPost(2, "Hello")
	surviving := &models.Reaction{ID: 41, UserID: 1, PostID: &postID, Type: models.ReactionLike}
	repo := &racingReactionRepo{surviving: surviving, misses: 1}
	svc := NewReactionService(repo, nil, posts)

	outcome, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		PostID: &postID,
		Type:   models.ReactionLike,
	})
	require.NoError(t, err)

	// The loser must not insert a second row and must not toggle the
	// winner's row off.
	assert.Equal(t, OutcomeCreated, outcome.Kind)
	assert.Equal(t, surviving.ID, outcome.Reaction.ID)
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 0, repo.updates)
}

func TestSubmitRaceLoserDifferentTypeSwitches(t *testing.T) {
	posts := newFakePostRepo()
	postID := posts.addPost(2, "Hello")
	surviving := &models.Reaction{ID: 41, UserID: 1, PostID: &postID, Type: models.ReactionLike}
	repo := &racingReactionRepo{surviving: surviving, misses: 1}
	svc := NewReactionService(repo, nil, posts)

	outcome, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		PostID: &postID,
		Type:   models.ReactionDislike,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeSwitched, outcome.Kind)
	assert.Equal(t, models.ReactionDislike, outcome.Reaction.Type)
	assert.Equal(t, 1, repo.updates)
}

func TestSubmitConcurrentIdenticalRequests(t *testing.T) {
	svc, posts, db := newReactionFixture(t)
	postID := posts.addPost(2, "Hello")

	const workers = 8
	var wg sync.WaitGroup
	outcomes := make([]ReactionOutcome, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
				PostID: &postID,
				Type:   models.ReactionLike,
			})
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Contains(t, []OutcomeKind{OutcomeCreated, OutcomeSwitched, OutcomeToggledOff}, outcomes[i].Kind)
	}
	// However the submissions interleave, the unique indexes guarantee at
	// most one surviving row for the (user, target) pair.
	assert.LessOrEqual(t, countReactions(t, db), int64(1))
}

func TestRemoveByOwner(t *testing.T) {
	svc, posts, db := newReactionFixture(t)
	postID := posts.addPost(2, "Hello")

	outcome, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		PostID: &postID,
		Type:   models.ReactionLike,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), 1, models.RoleViewer, outcome.Reaction.ID))
	assert.Equal(t, int64(0), countReactions(t, db))
	assert.Equal(t, 0, posts.likes[postID])
}

func TestRemoveByOtherUserForbidden(t *testing.T) {
	svc, posts, db := newReactionFixture(t)
	postID := posts.addPost(2, "Hello")

	outcome, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		PostID: &postID,
		Type:   models.ReactionLike,
	})
	require.NoError(t, err)

	err = svc.Remove(context.Background(), 9, models.RoleViewer, outcome.Reaction.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, int64(1), countReactions(t, db))
}

func TestRemoveByAdmin(t *testing.T) {
	svc, posts, db := newReactionFixture(t)
	postID := posts.addPost(2, "Hello")

	outcome, err := svc.Submit(context.Background(), 1, models.SubmitReactionRequest{
		PostID: &postID,
		Type:   models.ReactionLike,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), 9, models.RoleAdmin, outcome.Reaction.ID))
	assert.Equal(t, int64(0), countReactions(t, db))
}

func TestRemoveMissingReaction(t *testing.T) {
	svc, _, _ := newReactionFixture(t)

	err := svc.Remove(context.Background(), 1, models.RoleViewer, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}
