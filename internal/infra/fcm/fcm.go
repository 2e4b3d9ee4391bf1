package fcm

import (
	"context"
	"fmt"
	"log"

	"movie-explorer-api/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var client *messaging.Client

// Init wires the Firebase messaging client. Without credentials the client
// stays nil and every notification becomes a no-op.
func Init() {
	if config.FIREBASE_CREDENTIALS == "" {
		log.Println("FIREBASE_CREDENTIALS not set, push notifications disabled")
		return
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.FIREBASE_CREDENTIALS))
	if err != nil {
		log.Printf("Firebase init error, push notifications disabled: %v", err)
		return
	}

	client, err = app.Messaging(ctx)
	if err != nil {
		log.Printf("Firebase messaging init error, push notifications disabled: %v", err)
		client = nil
		return
	}

	fmt.Println("✅ Firebase messaging initialized")
}

// NotifyNewMovie fans a "new movie" push out to the given device tokens.
// Fire-and-forget: every failure is logged and swallowed, never returned.
func NotifyNewMovie(title string, movieID uint, tokens []string) {
	if client == nil || len(tokens) == 0 {
		return
	}

	ctx := context.Background()
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: "New Movie Added!",
			Body:  fmt.Sprintf("%s has been added to the Movie Explorer collection.", title),
		},
		Data: map[string]string{
			"movie_id": fmt.Sprint(movieID),
		},
	}

	resp, err := client.SendEachForMulticast(ctx, msg)
	if err != nil {
		log.Printf("FCM send failed: %v", err)
		return
	}
	if resp.FailureCount > 0 {
		log.Printf("FCM: %d of %d notifications failed", resp.FailureCount, len(tokens))
	}
}
