package notification

import (
	"context"

	"go.uber.org/zap"

	"solarops/internal/domain"
	"solarops/internal/mq"
	"solarops/internal/pkg/metrics"
	"solarops/internal/repository"
)

// EventPublisher is the queue side of the notifier. Email delivery is
// decoupled from the request: the row commits first, then the event is
// published and the worker sends the mail.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type Service struct {
	repo      *repository.NotificationRepository
	publisher EventPublisher
	hub       *Hub
	log       *zap.Logger
}

func NewService(repo *repository.NotificationRepository, publisher EventPublisher, hub *Hub, log *zap.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, hub: hub, log: log}
}

// Notify persists the in-app row, pushes it to connected clients and
// queues the email. Queue and socket failures are logged, never
// propagated: the state change that triggered the notification has
// already committed.
func (s *Service) Notify(ctx context.Context, projectID int64, t domain.NotificationType, title, message string, emails []string) error {
	n := &domain.Notification{
		ProjectID: projectID,
		Title:     title,
		Message:   message,
		Type:      t,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Broadcast(n)
	}

	if s.publisher != nil && len(emails) > 0 {
		event := mq.EmailEvent{
			Recipients: emails,
			Subject:    title,
			HTMLBody:   "<p>" + message + "</p>",
		}
		if err := s.publisher.Publish(mq.KeyNotifyEmail, event); err != nil {
			s.log.Error("publish email event",
				zap.Int64("project_id", projectID),
				zap.String("title", title),
				zap.Error(err),
			)
		} else {
			metrics.EventPublished()
		}
	}

	return nil
}

func (s *Service) ListByProject(ctx context.Context, projectID int64, limit int) ([]domain.Notification, int64, error) {
	list, err := s.repo.ListByProject(ctx, projectID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, projectID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id int64) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *Service) MarkAllAsRead(ctx context.Context, projectID int64) error {
	return s.repo.MarkAllAsRead(ctx, projectID)
}
