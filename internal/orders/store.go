package orders

import (
	"fmt"
	"sync"
	"time"

	"evaluo/server/internal/bus"
	"evaluo/server/internal/evaluators"
	"evaluo/server/internal/models"
	"evaluo/server/internal/notifications"
	"evaluo/server/internal/pricing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Archiver persists terminal orders outside the live store
type Archiver interface {
	ArchiveOrder(order models.Order, report *models.Report) error
}

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Store is the authoritative owner of the order collection. All
// mutation goes through it; every committed mutation is followed by
// notification appends and bus publications, never preceded by them.
type Store struct {
	mu      sync.RWMutex
	orders  []models.Order
	reports map[string]models.Report
	sales   map[string]float64

	directory     *evaluators.Directory
	notifications *notifications.Store
	bus           *bus.Bus
	logger        *logrus.Logger
	surgeActive   bool
	archive       Archiver
}

// NewStore creates an empty order store
func NewStore(directory *evaluators.Directory, notificationStore *notifications.Store, eventBus *bus.Bus, logger *logrus.Logger, surgeActive bool) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		reports:       make(map[string]models.Report),
		sales:         make(map[string]float64),
		directory:     directory,
		notifications: notificationStore,
		bus:           eventBus,
		logger:        logger,
		surgeActive:   surgeActive,
	}
}

// SetArchiver attaches the terminal-order archive. Archiving is
// best-effort and never blocks or fails an order mutation.
func (s *Store) SetArchiver(archive Archiver) {
	s.archive = archive
}

// CreateOrder validates the properties, prices the order, and commits
// it with step PENDING_MATCH. Validation failures leave the collection
// untouched.
func (s *Store) CreateOrder(userID string, properties []models.Property, agentContact *models.AgentContact) (models.Order, error) {
	if userID == "" {
		return models.Order{}, &ValidationError{Message: "user id is required"}
	}
	if len(properties) == 0 {
		return models.Order{}, &ValidationError{Message: "an order needs at least one property"}
	}
	for i, property := range properties {
		if property.Landlord == nil || property.Landlord.Name == "" || property.Landlord.Phone == "" {
			return models.Order{}, &ValidationError{
				Message: fmt.Sprintf("property %q is missing landlord name or phone", property.Address),
			}
		}
		if property.Address == "" {
			return models.Order{}, &ValidationError{Message: fmt.Sprintf("property %d is missing an address", i+1)}
		}
	}

	// Price each property, resolving the zone from coordinates when one
	// was not submitted explicitly
	priced := make([]models.Property, len(properties))
	totals := make([]float64, len(properties))
	for i, property := range properties {
		if property.Zone == "" && property.Latitude != nil && property.Longitude != nil {
			property.Zone = pricing.ResolveZone(property.City, *property.Latitude, *property.Longitude)
		}
		if property.Zone == "" {
			property.Zone = models.ZoneA
		}
		property.Price = pricing.PriceProperty(property.City, property.Zone, property.RushBooking)
		priced[i] = property
		totals[i] = property.Price.Total
	}
	orderPricing := pricing.PriceOrder(totals, s.surgeActive)

	order := models.Order{
		ID:                   uuid.NewString(),
		UserID:               userID,
		Properties:           priced,
		TotalPrice:           orderPricing.Total,
		Discount:             orderPricing.Discount,
		SurgeFee:             orderPricing.SurgeFee,
		Status:               models.StatusPending,
		CurrentStep:          models.StepPendingMatch,
		CurrentPropertyIndex: 0,
		AgentContact:         agentContact,
		CreatedAt:            time.Now(),
	}

	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.sales[order.CreatedAt.Format("Mon")] += order.TotalPrice
	salesSnapshot := s.salesDataLocked()
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"user_id":    userID,
		"properties": len(priced),
		"total":      order.TotalPrice,
	}).Info("Order created")

	s.notifications.Append(userID, "Order Received",
		fmt.Sprintf("Your evaluation order for %d properties is in. We are matching an evaluator.", len(priced)),
		models.NotificationSuccess, "/orders/"+order.ID)
	s.publishOrderEvent(order)
	s.bus.Publish(bus.ChannelSales, salesSnapshot)

	return order, nil
}

// GetOrders returns the orders owned by userID, or every order when
// userID is empty (the administrative view)
func (s *Store) GetOrders(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if userID == "" || order.UserID == userID {
			list = append(list, order)
		}
	}
	return list
}

// GetOrder returns a copy of one order, or nil if the id is unknown
func (s *Store) GetOrder(orderID string) *models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(orderID); i >= 0 {
		order := s.orders[i]
		return &order
	}
	return nil
}

// AdvanceStep drives the lifecycle machine one step forward
func (s *Store) AdvanceStep(orderID string) (models.Order, error) {
	s.mu.Lock()
	i := s.indexLocked(orderID)
	if i < 0 {
		s.mu.Unlock()
		return models.Order{}, ErrOrderNotFound
	}

	order := s.orders[i]
	notes, err := advanceOrder(&order, s.directory.PickRandom, time.Now())
	if err != nil {
		s.mu.Unlock()
		return models.Order{}, err
	}
	s.orders[i] = order
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"order_id":       order.ID,
		"step":           order.CurrentStep,
		"status":         order.Status,
		"property_index": order.CurrentPropertyIndex,
	}).Info("Order advanced")

	s.commitSideEffects(order, notes)
	return order, nil
}

// UpdateStatus is the coarser administrative mutation. It applies the
// same evaluator-assignment rule as the machine and keeps the step in
// sync with the new status so the two paths cannot diverge.
func (s *Store) UpdateStatus(orderID, status string) (models.Order, error) {
	newRank, known := statusRank[status]
	if !known {
		return models.Order{}, &ValidationError{Message: fmt.Sprintf("unknown order status %q", status)}
	}

	s.mu.Lock()
	i := s.indexLocked(orderID)
	if i < 0 {
		s.mu.Unlock()
		return models.Order{}, ErrOrderNotFound
	}

	order := s.orders[i]
	if newRank < statusRank[order.Status] {
		s.mu.Unlock()
		return models.Order{}, &ValidationError{
			Message: fmt.Sprintf("cannot move order from %q back to %q", order.Status, status),
		}
	}

	var notes []note
	if status != models.StatusPending && order.Evaluator == nil {
		evaluator := s.directory.PickRandom()
		order.Evaluator = &evaluator
		notes = append(notes, note{
			title:   "Evaluator Assigned",
			message: fmt.Sprintf("%s will handle your evaluation order.", evaluator.Name),
			typ:     models.NotificationSuccess,
			url:     "/orders/" + order.ID,
		})
	}
	order.Status = status
	order.CurrentStep = stepForStatus(status)
	if status == models.StatusReportReady && len(order.Properties) > 0 {
		order.CurrentPropertyIndex = len(order.Properties) - 1
	}
	notes = append(notes, note{
		title:   "Order Update",
		message: fmt.Sprintf("Your order is now %s.", status),
		typ:     models.NotificationInfo,
		url:     "/orders/" + order.ID,
	})
	s.orders[i] = order
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"status":   status,
	}).Info("Order status updated")

	s.commitSideEffects(order, notes)
	return order, nil
}

// CreateReport files the evaluator's report and forces the order to
// Report Ready
func (s *Store) CreateReport(orderID, comments, imageURL, videoURL string) (models.Report, error) {
	if comments == "" {
		return models.Report{}, &ValidationError{Message: "report comments are required"}
	}

	s.mu.Lock()
	i := s.indexLocked(orderID)
	if i < 0 {
		s.mu.Unlock()
		return models.Report{}, ErrOrderNotFound
	}

	report := models.Report{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Comments:  comments,
		ImageURL:  imageURL,
		VideoURL:  videoURL,
		CreatedAt: time.Now(),
	}
	s.reports[orderID] = report

	order := s.orders[i]
	var notes []note
	if !order.Terminal() {
		order.Status = models.StatusReportReady
		order.CurrentStep = models.StepReportReady
		if len(order.Properties) > 0 {
			order.CurrentPropertyIndex = len(order.Properties) - 1
		}
		notes = append(notes, note{
			title:   "Report Ready",
			message: "Your evaluation report has been delivered.",
			typ:     models.NotificationSuccess,
			url:     "/orders/" + order.ID,
		})
		s.orders[i] = order
	}
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"order_id":  orderID,
		"report_id": report.ID,
	}).Info("Report created")

	s.commitSideEffects(order, notes)
	return report, nil
}

// GetReportForOrder returns the report for an order, or nil if none
// has been filed
func (s *Store) GetReportForOrder(orderID string) *models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if report, ok := s.reports[orderID]; ok {
		return &report
	}
	return nil
}

// SalesData returns the accumulated revenue per weekday, Monday first
func (s *Store) SalesData() []models.SalesDataPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.salesDataLocked()
}

// DeleteOrdersForUser removes every order owned by the user as a
// cascade of user deletion, and returns how many were removed
func (s *Store) DeleteOrdersForUser(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.orders[:0]
	removed := 0
	for _, order := range s.orders {
		if order.UserID == userID {
			delete(s.reports, order.ID)
			removed++
			continue
		}
		kept = append(kept, order)
	}
	s.orders = kept
	return removed
}

func (s *Store) salesDataLocked() []models.SalesDataPoint {
	series := make([]models.SalesDataPoint, len(weekdays))
	for i, day := range weekdays {
		series[i] = models.SalesDataPoint{Day: day, Revenue: s.sales[day]}
	}
	return series
}

func (s *Store) indexLocked(orderID string) int {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			return i
		}
	}
	return -1
}

// commitSideEffects runs after the mutation is fully applied: append
// the user notifications, then publish the committed state on the
// orders and admin channels. If the order just went terminal, hand it
// to the archive.
func (s *Store) commitSideEffects(order models.Order, notes []note) {
	for _, n := range notes {
		s.notifications.Append(order.UserID, n.title, n.message, n.typ, n.url)
	}
	s.publishOrderEvent(order)

	if order.Terminal() && s.archive != nil {
		if err := s.archive.ArchiveOrder(order, s.GetReportForOrder(order.ID)); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).Error("Failed to archive order")
		}
	}
}

func (s *Store) publishOrderEvent(order models.Order) {
	event := models.OrderEvent{
		OrderID:       order.ID,
		Status:        order.Status,
		Step:          order.CurrentStep,
		PropertyIndex: order.CurrentPropertyIndex,
	}
	s.bus.Publish(bus.ChannelOrders, event)
	s.bus.Publish(bus.ChannelAdmin, event)
}
