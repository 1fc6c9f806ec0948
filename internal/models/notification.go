package models

import "time"

// NotificationType enumerates the events that can reach a user's inbox.
type NotificationType string

const (
	NotifLike    NotificationType = "like"
	NotifDislike NotificationType = "dislike"
	NotifComment NotificationType = "comment"
	NotifReply   NotificationType = "reply"
	NotifShare   NotificationType = "share"
	NotifFollow  NotificationType = "follow"
)

// Notification is a derived, system-generated event record. Rows are created
// only by the notification dispatcher and never where sender equals recipient.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"index"`
	SenderID    uint             `json:"sender_id" gorm:"index"`
	Type        NotificationType `json:"notif_type" gorm:"size:20"`
	PostID      *string          `json:"post_id,omitempty"` // MongoDB ObjectID as string
	CommentID   *uint            `json:"comment_id,omitempty"`
	Message     string           `json:"message"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}
