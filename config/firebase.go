package config

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// MessagingClient is the shared FCM client, nil when push delivery is disabled.
var MessagingClient *messaging.Client

// InitFirebase initializes the Firebase app used for push notifications.
// Delivery is best-effort: a missing credentials file only disables it.
func InitFirebase() {
	if AppConfig.FirebaseCredentials == "" {
		log.Println("Firebase credentials not configured, push delivery disabled")
		return
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(AppConfig.FirebaseCredentials))
	if err != nil {
		log.Printf("Failed to initialize Firebase app, push delivery disabled: %v", err)
		return
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("Failed to initialize FCM client, push delivery disabled: %v", err)
		return
	}
	MessagingClient = client
}
