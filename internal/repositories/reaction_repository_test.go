package repositories

import (
	"fmt"
	"testing"

	"github.com/inkstream/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newReactionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Reaction{}))
	return db
}

func TestCreateReactionDuplicatePostTarget(t *testing.T) {
	repo := NewPostgresReactionRepository(newReactionTestDB(t))
	postID := "64f000000000000000000001"

	first := &models.Reaction{UserID: 1, PostID: &postID, Type: models.ReactionLike}
	require.NoError(t, repo.CreateReaction(first))

	// Same (user, post) pair again, even with a different type, hits the
	// composite unique index.
	dup := &models.Reaction{UserID: 1, PostID: &postID, Type: models.ReactionDislike}
	assert.ErrorIs(t, repo.CreateReaction(dup), ErrDuplicateReaction)

	other := &models.Reaction{UserID: 2, PostID: &postID, Type: models.ReactionLike}
	assert.NoError(t, repo.CreateReaction(other))
}

func TestCreateReactionDuplicateCommentTarget(t *testing.T) {
	repo := NewPostgresReactionRepository(newReactionTestDB(t))
	commentID := uint(7)

	first := &models.Reaction{UserID: 1, CommentID: &commentID, Type: models.ReactionLike}
	require.NoError(t, repo.CreateReaction(first))

	dup := &models.Reaction{UserID: 1, CommentID: &commentID, Type: models.ReactionLike}
	assert.ErrorIs(t, repo.CreateReaction(dup), ErrDuplicateReaction)
}

func TestCreateReactionSameUserDifferentTargets(t *testing.T) {
	repo := NewPostgresReactionRepository(newReactionTestDB(t))
	postID := "64f000000000000000000001"
	commentID := uint(7)

	// One reaction per target kind for the same user is allowed; the two
	// unique indexes are independent.
	require.NoError(t, repo.CreateReaction(&models.Reaction{UserID: 1, PostID: &postID, Type: models.ReactionLike}))
	require.NoError(t, repo.CreateReaction(&models.Reaction{UserID: 1, CommentID: &commentID, Type: models.ReactionLike}))
}

func TestUpdateReactionTypePreservesIdentity(t *testing.T) {
	db := newReactionTestDB(t)
	repo := NewPostgresReactionRepository(db)
	postID := "64f000000000000000000001"

	reaction := &models.Reaction{UserID: 1, PostID: &postID, Type: models.ReactionLike}
	require.NoError(t, repo.CreateReaction(reaction))

	require.NoError(t, repo.UpdateReactionType(reaction.ID, models.ReactionDislike))

	stored, err := repo.GetForPost(1, postID)
	require.NoError(t, err)
	assert.Equal(t, reaction.ID, stored.ID)
	assert.Equal(t, models.ReactionDislike, stored.Type)
	assert.Equal(t, reaction.CreatedAt.Unix(), stored.CreatedAt.Unix())
}

func TestListReactionsFilters(t *testing.T) {
	repo := NewPostgresReactionRepository(newReactionTestDB(t))
	postA := "64f000000000000000000001"
	postB := "64f000000000000000000002"

	require.NoError(t, repo.CreateReaction(&models.Reaction{UserID: 1, PostID: &postA, Type: models.ReactionLike}))
	require.NoError(t, repo.CreateReaction(&models.Reaction{UserID: 2, PostID: &postA, Type: models.ReactionDislike}))
	require.NoError(t, repo.CreateReaction(&models.Reaction{UserID: 1, PostID: &postB, Type: models.ReactionLike}))

	all, err := repo.ListReactions(ReactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byPost, err := repo.ListReactions(ReactionFilter{PostID: &postA})
	require.NoError(t, err)
	assert.Len(t, byPost, 2)

	like := models.ReactionLike
	byPostAndType, err := repo.ListReactions(ReactionFilter{PostID: &postA, Type: &like})
	require.NoError(t, err)
	require.Len(t, byPostAndType, 1)
	assert.Equal(t, uint(1), byPostAndType[0].UserID)
}
