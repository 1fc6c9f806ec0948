package repositories

import (
	"github.com/inkstream/backend/internal/models"
	"gorm.io/gorm"
)

// ShareCount is the aggregate share tally for one post.
type ShareCount struct {
	Total     int64                          `json:"total"`
	Breakdown map[models.SharePlatform]int64 `json:"breakdown"`
}

// ShareRepository defines the interface for share tracking operations
type ShareRepository interface {
	CreateShare(share *models.Share) error
	CountByPostID(postID string) (*ShareCount, error)
}

type postgresShareRepository struct {
	db *gorm.DB
}

// NewPostgresShareRepository creates a new ShareRepository backed by PostgreSQL
func NewPostgresShareRepository(db *gorm.DB) ShareRepository {
	return &postgresShareRepository{db: db}
}

func (r *postgresShareRepository) CreateShare(share *models.Share) error {
	if share.Platform == "" {
		share.Platform = models.PlatformOther
	}
	return r.db.Create(share).Error
}

// CountByPostID returns the total share count for a post plus a per-platform
// breakdown.
func (r *postgresShareRepository) CountByPostID(postID string) (*ShareCount, error) {
	type row struct {
		Platform models.SharePlatform
		Count    int64
	}
	var rows []row
	err := r.db.Model(&models.Share{}).
		Select("platform, count(*) as count").
		Where("post_id = ?", postID).
		Group("platform").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	count := &ShareCount{Breakdown: make(map[models.SharePlatform]int64)}
	for _, r := range rows {
		count.Breakdown[r.Platform] = r.Count
		count.Total += r.Count
	}
	return count, nil
}
