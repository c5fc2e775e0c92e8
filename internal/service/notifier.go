package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"orphanage-api/internal/domain"
)

// Notifier delivers account notifications. Mail transport is owned outside
// this service; the log-backed implementation stands in for it.
type Notifier interface {
	SendPasswordReset(ctx context.Context, user *domain.User, token string) error
}

type logNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) SendPasswordReset(_ context.Context, user *domain.User, token string) error {
	n.logger.WithFields(logrus.Fields{
		"user":  user.Username,
		"email": user.Email,
	}).Infof("password reset token issued: %s", token)
	return nil
}
