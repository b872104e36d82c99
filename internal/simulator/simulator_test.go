package simulator

import (
	"math/rand"
	"testing"
	"time"

	"evaluo/server/internal/bus"
	"evaluo/server/internal/evaluators"
	"evaluo/server/internal/models"
	"evaluo/server/internal/notifications"
	"evaluo/server/internal/orders"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *orders.Store {
	logger := logrus.New()
	eventBus := bus.NewBus(logger)
	notificationStore := notifications.NewStore(eventBus, logger)
	directory := evaluators.NewDirectory(rand.New(rand.NewSource(7)))
	return orders.NewStore(directory, notificationStore, eventBus, logger, false)
}

func testProperty(address string) models.Property {
	return models.Property{
		Address: address,
		City:    "toronto",
		Zone:    models.ZoneA,
		Landlord: &models.LandlordInfo{
			Name:  "Pat Landlord",
			Phone: "416-555-0100",
		},
	}
}

func TestSimulator_TickAdvancesActiveOrders(t *testing.T) {
	store := newTestStore()
	created, err := store.CreateOrder("user-1", []models.Property{testProperty("1 Main St")}, nil)
	require.NoError(t, err)

	s := NewSimulator(store, logrus.New(), time.Minute, 0)
	s.Tick()

	order := store.GetOrder(created.ID)
	require.NotNil(t, order)
	assert.Equal(t, models.StepOutreachInitiated, order.CurrentStep)
}

func TestSimulator_TickSkipsTerminalOrders(t *testing.T) {
	store := newTestStore()
	created, err := store.CreateOrder("user-1", []models.Property{testProperty("1 Main St")}, nil)
	require.NoError(t, err)

	s := NewSimulator(store, logrus.New(), time.Minute, 0)

	// 1 + 7x1 ticks bring a one-property order terminal
	for i := 0; i < 8; i++ {
		s.Tick()
	}
	order := store.GetOrder(created.ID)
	require.NotNil(t, order)
	require.True(t, order.Terminal())

	// Further ticks are harmless no-ops
	assert.NotPanics(t, func() { s.Tick() })
	assert.Equal(t, models.StepReportReady, store.GetOrder(created.ID).CurrentStep)
}

func TestSimulator_StartStop(t *testing.T) {
	store := newTestStore()
	created, err := store.CreateOrder("user-1", []models.Property{testProperty("1 Main St")}, nil)
	require.NoError(t, err)

	s := NewSimulator(store, logrus.New(), 10*time.Millisecond, 0)
	s.Start()
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	order := store.GetOrder(created.ID)
	require.NotNil(t, order)
	assert.NotEqual(t, models.StepPendingMatch, order.CurrentStep)
}
