package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"devshowcase/showcase-backend/pkg/apperrors"
)

// Service persists notifications and pushes them to connected clients.
type Service struct {
	repo   Repository
	hub    *Hub
	logger *zap.Logger
}

func NewService(repo Repository, hub *Hub, logger *zap.Logger) *Service {
	return &Service{repo: repo, hub: hub, logger: logger}
}

// ProjectModerated records a moderation decision for the project owner
// and pushes it over any open websocket. Failures are logged, never
// surfaced: a lost notification must not fail the moderation itself.
func (s *Service) ProjectModerated(ctx context.Context, ownerID, projectID uuid.UUID, title string, approved bool, reason string) {
	n := &Notification{
		UserID:    ownerID,
		ProjectID: &projectID,
	}
	if approved {
		n.Type = TypeProjectApproved
		n.Title = "Project approved"
		n.Body = fmt.Sprintf("Your project %q has been approved and is now public.", title)
	} else {
		n.Type = TypeProjectRejected
		n.Title = "Project rejected"
		n.Body = fmt.Sprintf("Your project %q was rejected: %s", title, reason)
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("failed to store notification",
			zap.String("user_id", ownerID.String()),
			zap.Error(err))
		return
	}

	if s.hub != nil {
		s.hub.Push(ownerID, Event{
			Type:      "notification",
			Payload:   *n,
			Timestamp: time.Now(),
		})
	}
}

// ListForUser returns the user's notifications, newest first, plus the
// unread count.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Notification, int64, error) {
	rows, err := s.repo.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return rows, unread, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	updated, err := s.repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
