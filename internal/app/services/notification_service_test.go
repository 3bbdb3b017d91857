package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/careerhub/internal/app/models"
)

func TestFeedMarksEverythingRead(t *testing.T) {
	profiles := newFakeProfileStore()
	notifications := newFakeNotificationStore()
	service := NewNotificationService(profiles, notifications)
	userID := int64(1)

	profile, err := profiles.GetOrCreate(context.Background(), userID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, notifications.Create(context.Background(), &models.Notification{
			StudentID: profile.ID,
			Message:   fmt.Sprintf("message %d", i),
		}))
	}

	feed, err := service.Feed(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	for _, n := range feed {
		assert.True(t, n.Read)
	}

	// Newest first
	assert.Equal(t, "message 2", feed[0].Message)

	// Viewing again yields the same messages, still read
	again, err := service.Feed(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, again, 3)
}

func TestFeedTruncatesButMarksAll(t *testing.T) {
	profiles := newFakeProfileStore()
	notifications := newFakeNotificationStore()
	service := NewNotificationService(profiles, notifications)
	userID := int64(1)

	profile, err := profiles.GetOrCreate(context.Background(), userID)
	require.NoError(t, err)

	for i := 0; i < maxFeedLength+5; i++ {
		require.NoError(t, notifications.Create(context.Background(), &models.Notification{
			StudentID: profile.ID,
			Message:   fmt.Sprintf("message %d", i),
		}))
	}

	feed, err := service.Feed(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, feed, maxFeedLength)

	// The mark-as-read write covers the full set, not just the page shown
	for _, n := range notifications.notifications {
		assert.True(t, n.Read)
	}
}

func TestFeedEmptyForNewStudent(t *testing.T) {
	profiles := newFakeProfileStore()
	notifications := newFakeNotificationStore()
	service := NewNotificationService(profiles, notifications)

	feed, err := service.Feed(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, feed)

	// First access created the profile
	_, err = profiles.GetByUserID(context.Background(), 42)
	assert.NoError(t, err)
}

func TestFeedIsPerStudent(t *testing.T) {
	profiles := newFakeProfileStore()
	notifications := newFakeNotificationStore()
	service := NewNotificationService(profiles, notifications)

	alice, err := profiles.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	bob, err := profiles.GetOrCreate(context.Background(), 2)
	require.NoError(t, err)

	require.NoError(t, notifications.Create(context.Background(), &models.Notification{StudentID: alice.ID, Message: "for alice"}))
	require.NoError(t, notifications.Create(context.Background(), &models.Notification{StudentID: bob.ID, Message: "for bob"}))

	feed, err := service.Feed(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "for alice", feed[0].Message)
}
