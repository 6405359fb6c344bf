package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// InitFirebase initializes and returns a Firebase app instance
func InitFirebase() (*firebase.App, error) {
	ctx := context.Background()

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	projectID := os.Getenv("FIREBASE_PROJECT_ID")

	var app *firebase.App
	var err error

	config := &firebase.Config{
		ProjectID: projectID,
	}

	if serviceAccountPath != "" {
		// Initialize with service account file
		opt := option.WithCredentialsFile(serviceAccountPath)
		app, err = firebase.NewApp(ctx, config, opt)
	} else {
		// Initialize with default credentials (useful for Google Cloud deployment)
		app, err = firebase.NewApp(ctx, config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	return app, nil
}

// GetAuthClient returns a Firebase Auth client from the app
func GetAuthClient(app *firebase.App) (*auth.Client, error) {
	ctx := context.Background()
	return app.Auth(ctx)
}
