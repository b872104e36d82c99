package notifications

import (
	"sync"
	"time"

	"evaluo/server/internal/bus"
	"evaluo/server/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store is a per-user, append-only notification log. Entries are kept
// most-recent-first and only ever mutated through the read flags.
type Store struct {
	mu     sync.RWMutex
	byUser map[string][]models.Notification
	bus    *bus.Bus
	logger *logrus.Logger
}

// NewStore creates an empty notification store
func NewStore(eventBus *bus.Bus, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		byUser: make(map[string][]models.Notification),
		bus:    eventBus,
		logger: logger,
	}
}

// Append creates an unread notification at the head of the user's list
// and publishes it on the notifications channel
func (s *Store) Append(userID, title, message string, typ models.NotificationType, url string) models.Notification {
	notification := models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		URL:       url,
		Read:      false,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.byUser[userID] = append([]models.Notification{notification}, s.byUser[userID]...)
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"title":   title,
		"type":    typ,
	}).Debug("Appended notification")

	s.bus.Publish(bus.ChannelNotifications, notification)
	return notification
}

// List returns a copy of the user's notifications, most recent first
func (s *Store) List(userID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Notification, len(s.byUser[userID]))
	copy(list, s.byUser[userID])
	return list
}

// MarkRead flips one notification's read flag. It returns false, and
// changes nothing, when the id does not exist for that user.
func (s *Store) MarkRead(userID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.byUser[userID] {
		if s.byUser[userID][i].ID == id {
			s.byUser[userID][i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead flips every notification for the user and returns how
// many were unread
func (s *Store) MarkAllRead(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	flipped := 0
	for i := range s.byUser[userID] {
		if !s.byUser[userID][i].Read {
			s.byUser[userID][i].Read = true
			flipped++
		}
	}
	return flipped
}

// ClearAll empties the user's notification list
func (s *Store) ClearAll(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}

// UnreadCount is derived from the read flags, never stored
func (s *Store) UnreadCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, notification := range s.byUser[userID] {
		if !notification.Read {
			count++
		}
	}
	return count
}
