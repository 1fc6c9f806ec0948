package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/inkstream/backend/internal/models"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and messaging client
type App struct {
	FirebaseApp     *firebase.App
	MessagingClient *messaging.Client
}

// InitFirebase initializes the Firebase application and the Cloud Messaging
// client used for notification push delivery.
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	messagingClient, err := firebaseApp.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase messaging client: %w", err)
	}

	log.Println("Firebase app and messaging client initialized successfully!")
	return &App{FirebaseApp: firebaseApp, MessagingClient: messagingClient}, nil
}

// Pusher delivers notification messages to the recipient's device topic via
// Firebase Cloud Messaging.
type Pusher struct {
	client *messaging.Client
}

// NewPusher creates a Pusher over an initialized messaging client
func NewPusher(client *messaging.Client) *Pusher {
	return &Pusher{client: client}
}

// Push sends one FCM message for a freshly created notification. Callers
// treat failures as non-fatal.
func (p *Pusher) Push(ctx context.Context, notification *models.Notification, message string) error {
	msg := &messaging.Message{
		Topic: fmt.Sprintf("user-%d", notification.RecipientID),
		Notification: &messaging.Notification{
			Title: "New activity",
			Body:  message,
		},
		Data: map[string]string{
			"type": string(notification.Type),
		},
	}
	_, err := p.client.Send(ctx, msg)
	return err
}
