package push

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
)

// Sender delivers notifications to user devices over Firebase Cloud
// Messaging.
type Sender struct {
	client *messaging.Client
}

// InitSender initializes the Firebase app and messaging client
func InitSender(ctx context.Context, credentialsPath string) (*Sender, error) {
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

	client, err := firebaseApp.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase messaging client: %w", err)
	}

	log.Println("Firebase messaging client initialized successfully!")
	return &Sender{client: client}, nil
}

// Send pushes one notification to the given device token.
func (s *Sender) Send(ctx context.Context, deviceToken string, n *models.Notification) error {
	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: map[string]string{
			"type":      n.Type,
			"target_id": n.TargetID,
		},
	}

	if _, err := s.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("error sending push message: %w", err)
	}
	return nil
}
