package service

import (
	"context"
	"errors"

	"churchhub/internal/apperror"
	"churchhub/internal/microservices/http-api/models"
	"churchhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// NotificationPublisher pushes stored notifications to connected clients.
// Delivery is best effort; the stored row stays the source of truth.
type NotificationPublisher interface {
	Publish(userID string, notification *models.Notification)
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(string, *models.Notification) {}

type NotificationService interface {
	List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, apperror.Internal("failed to list notifications", err)
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperror.Internal("failed to count notifications", err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	if err := s.repo.MarkAsRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return apperror.Internal("failed to update notification", err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	updated, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, apperror.Internal("failed to update notifications", err)
	}
	return updated, nil
}
