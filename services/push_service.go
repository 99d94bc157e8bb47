package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"

	"github.com/stylu-app/backend/models"
)

const pushChannelID = "stylu_channel"

// ErrUnregisteredToken marks a device token the provider no longer accepts.
// The dispatcher deactivates the row when it sees this.
var ErrUnregisteredToken = errors.New("device token no longer registered")

// ErrNoActiveTokens means the resolved token set was empty.
var ErrNoActiveTokens = errors.New("no active device tokens found")

// Messenger is the slice of the FCM client the dispatcher needs.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NewFCMMessenger wraps the admin SDK client so unregistered/invalid token
// failures surface as ErrUnregisteredToken.
func NewFCMMessenger(client *messaging.Client) Messenger {
	return &fcmMessenger{client: client}
}

type fcmMessenger struct {
	client *messaging.Client
}

func (m *fcmMessenger) Send(ctx context.Context, message *messaging.Message) (string, error) {
	id, err := m.client.Send(ctx, message)
	if err != nil && (messaging.IsUnregistered(err) || errorutils.IsInvalidArgument(err)) {
		return "", fmt.Errorf("%w: %v", ErrUnregisteredToken, err)
	}
	return id, err
}

type PushService struct {
	sb        *Supabase
	messenger Messenger
	log       *logrus.Logger
}

func NewPushService(sb *Supabase, messenger Messenger, log *logrus.Logger) *PushService {
	return &PushService{sb: sb, messenger: messenger, log: log}
}

// RegisterToken upserts a device token keyed by the token value: an
// existing row is re-pointed at the caller and reactivated, otherwise a new
// row is inserted.
func (p *PushService) RegisterToken(ctx context.Context, token, userID string, req models.RegisterTokenRequest) error {
	platform := req.Platform
	if platform == "" {
		platform = "android"
	}

	var existing []models.DeviceToken
	err := p.sb.From("device_tokens").Auth(token).
		Select("*").
		Eq("fcm_token", req.FCMToken).
		Get(ctx, &existing)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		patch := map[string]any{
			"user_id":    userID,
			"is_active":  true,
			"platform":   platform,
			"updated_at": time.Now().UTC().Format(time.RFC3339),
		}
		return p.sb.From("device_tokens").Auth(token).
			Eq("fcm_token", req.FCMToken).
			Patch(ctx, patch)
	}

	row := models.DeviceToken{
		UserID:   userID,
		FCMToken: req.FCMToken,
		Platform: platform,
		IsActive: true,
	}
	return p.sb.From("device_tokens").Auth(token).Returning().Insert(ctx, row, nil)
}

// UnregisterTokens deactivates every token owned by the user. Rows stay in
// place; is_active carries the logical delete.
func (p *PushService) UnregisterTokens(ctx context.Context, token, userID string) error {
	return p.sb.From("device_tokens").Auth(token).
		Eq("user_id", userID).
		Patch(ctx, map[string]any{"is_active": false})
}

// Send delivers one message per resolved token. Each delivery is isolated:
// a failure is tallied and, when the provider says the token is dead, the
// row is deactivated best-effort; the batch never aborts.
func (p *PushService) Send(ctx context.Context, token string, req models.SendPushRequest) (*models.PushReport, error) {
	query := p.sb.From("device_tokens").Auth(token).
		Select("fcm_token").
		Eq("is_active", "true")
	if req.UserID != nil {
		query = query.Eq("user_id", *req.UserID)
	}

	var rows []models.DeviceToken
	if err := query.Get(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoActiveTokens
	}

	report := &models.PushReport{}
	for _, row := range rows {
		message := buildMessage(req.Title, req.Body, req.Data)
		message.Token = row.FCMToken

		if _, err := p.messenger.Send(ctx, message); err != nil {
			report.FailureCount++
			p.log.WithError(err).Warn("push delivery failed")
			if errors.Is(err, ErrUnregisteredToken) {
				p.deactivateToken(ctx, token, row.FCMToken)
			}
			continue
		}
		report.SuccessCount++
	}

	p.log.WithField("success", report.SuccessCount).
		WithField("failure", report.FailureCount).
		Info("push fan-out finished")
	return report, nil
}

// SendToTopic delivers a single message to an FCM topic and returns the
// provider message id.
func (p *PushService) SendToTopic(ctx context.Context, req models.TopicPushRequest) (string, error) {
	message := buildMessage(req.Title, req.Body, req.Data)
	message.Topic = req.Topic
	return p.messenger.Send(ctx, message)
}

func (p *PushService) deactivateToken(ctx context.Context, token, fcmToken string) {
	err := p.sb.From("device_tokens").Auth(token).
		Eq("fcm_token", fcmToken).
		Patch(ctx, map[string]any{"is_active": false})
	if err != nil {
		p.log.WithError(err).Warn("failed to deactivate dead token")
	}
}

func buildMessage(title, body string, data map[string]string) *messaging.Message {
	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: pushChannelID,
				Sound:     "default",
				Priority:  messaging.PriorityMax,
			},
		},
	}
}
