package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/stylu-app/backend/models"
)

type NotificationService struct {
	sb  *Supabase
	log *logrus.Logger
}

func NewNotificationService(sb *Supabase, log *logrus.Logger) *NotificationService {
	return &NotificationService{sb: sb, log: log}
}

// Save writes a notification row with the elevated service credential. The
// app records notification history after receiving a push, which happens
// even when the user's session has expired, so this path must not depend on
// the caller's token.
func (s *NotificationService) Save(ctx context.Context, req models.SaveNotificationRequest) error {
	row := models.Notification{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
		Data:   req.Data,
		IsRead: false,
	}
	if err := s.sb.FromService("notifications").Insert(ctx, row, nil); err != nil {
		return err
	}
	s.log.WithField("user_id", req.UserID).Info("notification saved")
	return nil
}
