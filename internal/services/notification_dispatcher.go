package services

import (
	"context"
	"fmt"
	"log"

	"github.com/inkstream/backend/internal/models"
	"github.com/inkstream/backend/internal/repositories"
)

// Pusher delivers a freshly created notification over an out-of-band channel
// (e.g. Firebase Cloud Messaging). Delivery is best effort.
type Pusher interface {
	Push(ctx context.Context, notification *models.Notification, message string) error
}

// NotificationDispatcher turns reaction and comment creation events into
// notification rows. It is called explicitly from the write paths after their
// storage commits succeed; there is no listener registry. Dispatch failures
// are logged and never fail the triggering write, and a sender reacting to or
// commenting on their own content produces nothing at all.
type NotificationDispatcher struct {
	notifications repositories.NotificationRepository
	posts         repositories.PostRepository
	comments      repositories.CommentRepository
	users         repositories.UserRepository
	pusher        Pusher // nil when push is not configured
}

// NewNotificationDispatcher creates a new NotificationDispatcher
func NewNotificationDispatcher(
	notifications repositories.NotificationRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	users repositories.UserRepository,
	pusher Pusher,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		notifications: notifications,
		posts:         posts,
		comments:      comments,
		users:         users,
		pusher:        pusher,
	}
}

// ReactionCreated handles a newly inserted reaction. Only post-target
// reactions notify; reactions on comments are not dispatched. Type switches
// and toggle-offs are not creations and must not be routed here.
func (d *NotificationDispatcher) ReactionCreated(ctx context.Context, reaction *models.Reaction) {
	if reaction.PostID == nil {
		return
	}

	post, err := d.posts.GetPostByID(ctx, *reaction.PostID)
	if err != nil {
		log.Printf("notification dispatch: post %s lookup failed: %v", *reaction.PostID, err)
		return
	}
	if reaction.UserID == post.AuthorID {
		return
	}

	d.deliver(ctx, &models.Notification{
		RecipientID: post.AuthorID,
		SenderID:    reaction.UserID,
		Type:        models.NotificationType(reaction.Type),
		PostID:      reaction.PostID,
	}, post.Title)
}

// CommentCreated handles a newly inserted comment. A reply notifies the parent
// comment's author; a top-level comment notifies the post's author.
func (d *NotificationDispatcher) CommentCreated(ctx context.Context, comment *models.Comment) {
	post, err := d.posts.GetPostByID(ctx, comment.PostID)
	if err != nil {
		log.Printf("notification dispatch: post %s lookup failed: %v", comment.PostID, err)
		return
	}

	if comment.IsReply() {
		parent, err := d.comments.GetCommentByID(*comment.ParentID)
		if err != nil {
			log.Printf("notification dispatch: parent comment %d lookup failed: %v", *comment.ParentID, err)
			return
		}
		if comment.UserID == parent.UserID {
			return
		}
		commentID := comment.ID
		d.deliver(ctx, &models.Notification{
			RecipientID: parent.UserID,
			SenderID:    comment.UserID,
			Type:        models.NotifReply,
			PostID:      &comment.PostID,
			CommentID:   &commentID,
		}, post.Title)
		return
	}

	if comment.UserID == post.AuthorID {
		return
	}
	commentID := comment.ID
	d.deliver(ctx, &models.Notification{
		RecipientID: post.AuthorID,
		SenderID:    comment.UserID,
		Type:        models.NotifComment,
		PostID:      &comment.PostID,
		CommentID:   &commentID,
	}, post.Title)
}

// FollowCreated notifies a user that someone started following them.
func (d *NotificationDispatcher) FollowCreated(ctx context.Context, follow *models.Follow) {
	if follow.FollowerID == follow.FollowingID {
		return
	}
	d.deliver(ctx, &models.Notification{
		RecipientID: follow.FollowingID,
		SenderID:    follow.FollowerID,
		Type:        models.NotifFollow,
	}, "")
}

func (d *NotificationDispatcher) deliver(ctx context.Context, n *models.Notification, postTitle string) {
	senderName := "Someone"
	if sender, err := d.users.GetUserByID(n.SenderID); err == nil {
		senderName = sender.Username
	}
	n.Message = RenderMessage(n.Type, senderName, postTitle)

	if err := d.notifications.CreateNotification(n); err != nil {
		log.Printf("notification dispatch: create failed for recipient %d: %v", n.RecipientID, err)
		return
	}

	if d.pusher != nil {
		if err := d.pusher.Push(ctx, n, n.Message); err != nil {
			log.Printf("notification push failed for recipient %d: %v", n.RecipientID, err)
		}
	}
}

// RenderMessage maps a notification type to a human readable sentence. An
// empty post title falls back to "your post"; unknown types get a generic
// sentence.
func RenderMessage(t models.NotificationType, senderName, postTitle string) string {
	post := postTitle
	if post == "" {
		post = "your post"
	}

	switch t {
	case models.NotifLike:
		return fmt.Sprintf("%s liked your post %q", senderName, post)
	case models.NotifDislike:
		return fmt.Sprintf("%s disliked your post %q", senderName, post)
	case models.NotifComment:
		return fmt.Sprintf("%s commented on your post %q", senderName, post)
	case models.NotifReply:
		return fmt.Sprintf("%s replied to your comment on %q", senderName, post)
	case models.NotifShare:
		return fmt.Sprintf("%s shared your post %q", senderName, post)
	case models.NotifFollow:
		return fmt.Sprintf("%s started following you", senderName)
	default:
		return fmt.Sprintf("%s interacted with your content", senderName)
	}
}
