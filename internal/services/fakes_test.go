package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/inkstream/backend/internal/models"
	"github.com/inkstream/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with the same schema and error
// translation the real PostgreSQL setup uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive for the
	// duration of the test and serializes sqlite writes.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Comment{},
		&models.Reaction{},
		&models.Notification{},
		&models.Share{},
		&models.Follow{},
	))
	return db
}

// fakePostRepo is an in-memory stand-in for the MongoDB post store.
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
	likes map[string]int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post), likes: make(map[string]int)}
}

func (f *fakePostRepo) addPost(authorID uint, title string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	f.posts[id.Hex()] = &models.Post{ID: id, AuthorID: authorID, Title: title}
	return id.Hex()
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = primitive.NewObjectID()
	f.posts[post.ID.Hex()] = post
	return nil
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return post, nil
}

func (f *fakePostRepo) GetPostsByAuthorID(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) UpdatePost(ctx context.Context, id string, post *models.Post) error { return nil }
func (f *fakePostRepo) DeletePost(ctx context.Context, id string) error                    { return nil }

func (f *fakePostRepo) IncrementLikesCount(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likes[postID]++
	return nil
}

func (f *fakePostRepo) DecrementLikesCount(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likes[postID]--
	return nil
}

func (f *fakePostRepo) IncrementCommentsCount(ctx context.Context, postID string) error { return nil }
func (f *fakePostRepo) DecrementCommentsCount(ctx context.Context, postID string) error { return nil }

// fakeUserRepo serves usernames for message rendering.
type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) CreateUser(user *models.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error { return nil }
func (f *fakeUserRepo) DeleteUser(id uint) error           { return nil }

// racingReactionRepo simulates the losing side of a concurrent duplicate
// insert: the lookup misses, the insert hits the unique index, and only then
// does the surviving row become visible.
type racingReactionRepo struct {
	surviving *models.Reaction
	misses    int
	creates   int
	updates   int
}

func (r *racingReactionRepo) CreateReaction(reaction *models.Reaction) error {
	r.creates++
	return repositories.ErrDuplicateReaction
}

func (r *racingReactionRepo) GetReactionByID(id uint) (*models.Reaction, error) {
	return r.surviving, nil
}

func (r *racingReactionRepo) GetForPost(userID uint, postID string) (*models.Reaction, error) {
	if r.misses > 0 {
		r.misses--
		return nil, gorm.ErrRecordNotFound
	}
	return r.surviving, nil
}

func (r *racingReactionRepo) GetForComment(userID, commentID uint) (*models.Reaction, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *racingReactionRepo) UpdateReactionType(id uint, t models.ReactionType) error {
	r.updates++
	r.surviving.Type = t
	return nil
}

func (r *racingReactionRepo) DeleteReaction(id uint) error { return nil }

func (r *racingReactionRepo) ListReactions(filter repositories.ReactionFilter) ([]models.Reaction, error) {
	return nil, nil
}
