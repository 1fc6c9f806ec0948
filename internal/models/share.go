package models

import "time"

// SharePlatform is where a post was shared to.
type SharePlatform string

const (
	PlatformFacebook SharePlatform = "facebook"
	PlatformTwitter  SharePlatform = "twitter"
	PlatformWhatsApp SharePlatform = "whatsapp"
	PlatformLinkedIn SharePlatform = "linkedin"
	PlatformCopyLink SharePlatform = "copy_link"
	PlatformOther    SharePlatform = "other"
)

// Share is an append-only log of share events. No uniqueness: a user may share
// the same post any number of times.
type Share struct {
	ID       uint          `json:"id" gorm:"primaryKey"`
	UserID   uint          `json:"user_id" gorm:"index"`
	PostID   string        `json:"post_id" gorm:"index"` // MongoDB ObjectID as string
	Platform SharePlatform `json:"platform" gorm:"size:20;default:other"`
	SharedAt time.Time     `json:"shared_at" gorm:"autoCreateTime"`
}

// CreateShareRequest defines the request body for tracking a share
type CreateShareRequest struct {
	PostID   string        `json:"post_id" validate:"required"`
	Platform SharePlatform `json:"platform" validate:"omitempty,oneof=facebook twitter whatsapp linkedin copy_link other"`
}
