package services

import (
	"github.com/inkstream/backend/internal/models"
	"github.com/inkstream/backend/internal/repositories"
)

// Inbox is a recipient's notification listing.
type Inbox struct {
	Count       int                   `json:"count"`
	UnreadCount int64                 `json:"unread_count"`
	Results     []models.Notification `json:"results"`
}

// NotificationService is the query/mutation surface over a recipient's
// notifications. Every operation is scoped to the calling recipient.
type NotificationService struct {
	notifications repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List returns the recipient's notifications newest first, with total and
// unread counts.
func (s *NotificationService) List(recipientID uint, unreadOnly bool) (*Inbox, error) {
	notifications, err := s.notifications.GetByRecipientID(recipientID, unreadOnly)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.GetUnreadCount(recipientID)
	if err != nil {
		return nil, err
	}
	return &Inbox{
		Count:       len(notifications),
		UnreadCount: unread,
		Results:     notifications,
	}, nil
}

// UnreadCount returns the number of unread notifications for the recipient.
func (s *NotificationService) UnreadCount(recipientID uint) (int64, error) {
	return s.notifications.GetUnreadCount(recipientID)
}

// MarkRead marks one of the recipient's notifications as read. ErrNotFound
// covers both a missing notification and one owned by another recipient.
func (s *NotificationService) MarkRead(recipientID, notificationID uint) error {
	ok, err := s.notifications.MarkAsRead(recipientID, notificationID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification as read and returns how many
// rows changed.
func (s *NotificationService) MarkAllRead(recipientID uint) (int64, error) {
	return s.notifications.MarkAllAsRead(recipientID)
}

// ClearAll deletes all of the recipient's notifications and returns how many
// rows were removed.
func (s *NotificationService) ClearAll(recipientID uint) (int64, error) {
	return s.notifications.ClearAll(recipientID)
}
