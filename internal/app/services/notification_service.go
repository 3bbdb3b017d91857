package services

import (
	"context"

	"github.com/deniz/careerhub/internal/app/models"
)

// maxFeedLength caps how many notifications the feed page displays. The
// mark-as-read write still covers the full set.
const maxFeedLength = 20

// NotificationService handles the per-student notification feed.
type NotificationService struct {
	profiles      ProfileStore
	notifications NotificationStore
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(profiles ProfileStore, notifications NotificationStore) *NotificationService {
	return &NotificationService{
		profiles:      profiles,
		notifications: notifications,
	}
}

// Feed returns the newest notifications for the student, truncated for
// display. Viewing marks every fetched notification read, sliced or not,
// so the unread set drains even past the display cap. Viewing twice in a
// row yields the same messages.
func (s *NotificationService) Feed(ctx context.Context, userID int64) ([]*models.Notification, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notifications.ListByStudent(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	if err := s.notifications.MarkAllRead(ctx, profile.ID); err != nil {
		return nil, err
	}

	// Reflect the write in what we hand back for rendering.
	for _, n := range notifications {
		n.Read = true
	}

	if len(notifications) > maxFeedLength {
		notifications = notifications[:maxFeedLength]
	}

	return notifications, nil
}
