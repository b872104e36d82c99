package users

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"evaluo/server/internal/bus"
	"evaluo/server/internal/models"
	"evaluo/server/internal/notifications"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUserNotFound is returned by mutation paths for unknown ids.
	// Reads return nil instead; the mutation paths are stricter.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail rejects registration with an email already in use
	ErrDuplicateEmail = errors.New("email already registered")
)

// OrderPurger removes a deleted user's orders as a cascade
type OrderPurger interface {
	DeleteOrdersForUser(userID string) int
}

// Service is the user directory: registration plus the administrative
// user CRUD
type Service struct {
	mu            sync.RWMutex
	users         []models.User
	orders        OrderPurger
	notifications *notifications.Store
	bus           *bus.Bus
	logger        *logrus.Logger
}

// NewService creates an empty user directory
func NewService(orders OrderPurger, notificationStore *notifications.Store, eventBus *bus.Bus, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		orders:        orders,
		notifications: notificationStore,
		bus:           eventBus,
		logger:        logger,
	}
}

// CreateUser registers an account. Duplicate emails are rejected.
func (s *Service) CreateUser(name, email, role string) (models.User, error) {
	if name == "" || email == "" {
		return models.User{}, fmt.Errorf("user name and email are required")
	}
	if role == "" {
		role = "customer"
	}
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	for _, existing := range s.users {
		if existing.Email == email {
			s.mu.Unlock()
			return models.User{}, ErrDuplicateEmail
		}
	}
	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	s.users = append(s.users, user)
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   email,
		"role":    role,
	}).Info("User registered")

	s.notifications.Append(user.ID, "Welcome to Evaluo",
		fmt.Sprintf("Hi %s, your account is ready. Submit your first property for evaluation.", name),
		models.NotificationInfo, "/properties/new")
	s.bus.Publish(bus.ChannelUsers, models.UserEvent{UserID: user.ID, Action: "created"})

	return user, nil
}

// UpdateUser changes a user's name and role. Unknown ids fail loudly.
func (s *Service) UpdateUser(userID, name, role string) (models.User, error) {
	s.mu.Lock()
	i := s.indexLocked(userID)
	if i < 0 {
		s.mu.Unlock()
		return models.User{}, ErrUserNotFound
	}
	if name != "" {
		s.users[i].Name = name
	}
	if role != "" {
		s.users[i].Role = role
	}
	user := s.users[i]
	s.mu.Unlock()

	s.logger.WithField("user_id", userID).Info("User updated")
	s.bus.Publish(bus.ChannelUsers, models.UserEvent{UserID: userID, Action: "updated"})
	return user, nil
}

// DeleteUser removes the account, its notifications, and — as the only
// path that ever deletes orders — every order the user owns
func (s *Service) DeleteUser(userID string) error {
	s.mu.Lock()
	i := s.indexLocked(userID)
	if i < 0 {
		s.mu.Unlock()
		return ErrUserNotFound
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	s.mu.Unlock()

	removed := s.orders.DeleteOrdersForUser(userID)
	s.notifications.ClearAll(userID)

	s.logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"orders_removed": removed,
	}).Info("User deleted")

	s.bus.Publish(bus.ChannelUsers, models.UserEvent{UserID: userID, Action: "deleted"})
	return nil
}

// GetUsers returns all registered users
func (s *Service) GetUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.User, len(s.users))
	copy(list, s.users)
	return list
}

// GetUser returns one user, or nil if the id is unknown
func (s *Service) GetUser(userID string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(userID); i >= 0 {
		user := s.users[i]
		return &user
	}
	return nil
}

func (s *Service) indexLocked(userID string) int {
	for i := range s.users {
		if s.users[i].ID == userID {
			return i
		}
	}
	return -1
}
