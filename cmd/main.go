package main

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/stylu-app/backend/config"
	"github.com/stylu-app/backend/controllers"
	"github.com/stylu-app/backend/routes"
	"github.com/stylu-app/backend/services"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	// Firebase is initialized exactly once, before the server accepts
	// traffic; handlers never construct provider clients themselves.
	messenger, err := initMessaging(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Fatal("firebase initialization failed")
	}

	sb := services.NewSupabase(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseServiceKey)

	calendar := controllers.NewCalendarController(services.NewCalendarService(sb, log), log)
	outfits := controllers.NewOutfitController(services.NewOutfitService(sb, log), log)
	push := controllers.NewPushController(services.NewPushService(sb, messenger, log), log)
	notifications := controllers.NewNotificationController(services.NewNotificationService(sb, log), log)

	r := routes.SetupRouter(cfg, calendar, outfits, push, notifications)

	log.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func initMessaging(ctx context.Context, cfg *config.Config) (services.Messenger, error) {
	var opts []option.ClientOption
	switch {
	case cfg.FirebaseCredJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseCredJSON)))
	case cfg.FirebaseCredFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewFCMMessenger(client), nil
}
