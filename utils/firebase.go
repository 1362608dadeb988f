package utils

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var ErrFCMNotConfigured = errors.New("fcm not configured")

// InitFirebase builds an FCM client. Returns ErrFCMNotConfigured when no
// credentials file is set, so callers can run without push delivery.
func InitFirebase(ctx context.Context, cfg *config.Config) (*messaging.Client, error) {
	path := cfg.FCMCredentialsPath
	if path == "" {
		return nil, ErrFCMNotConfigured
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("firebase credentials %s: %w", path, err)
	}

	var fbCfg *firebase.Config
	if cfg.FCMProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.FCMProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, option.WithCredentialsFile(path))
	if err != nil {
		return nil, fmt.Errorf("firebase app initialization failed: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("FCM client initialization failed: %w", err)
	}

	Log.Info("✅ FCM client initialized", zap.String("project", cfg.FCMProjectID))
	return client, nil
}
