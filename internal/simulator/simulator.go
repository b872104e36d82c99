package simulator

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"evaluo/server/internal/orders"

	"github.com/sirupsen/logrus"
)

// Simulator periodically advances every in-flight order by one
// lifecycle step, standing in for the real-world progress an evaluator
// would report. Ticks are serialized by a job mutex so two ticks never
// advance the same order concurrently.
type Simulator struct {
	store    *orders.Store
	logger   *logrus.Logger
	interval time.Duration
	jitter   time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex
	rng      *rand.Rand
}

// NewSimulator creates a simulator driving the given store
func NewSimulator(store *orders.Store, logger *logrus.Logger, interval, jitter time.Duration) *Simulator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Simulator{
		store:    store,
		logger:   logger,
		interval: interval,
		jitter:   jitter,
		stopChan: make(chan struct{}),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins the tick loop
func (s *Simulator) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Simulator) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick advances every non-terminal order by one step, with a small
// random delay per order simulating field latency
func (s *Simulator) Tick() {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	advanced := 0
	for _, order := range s.store.GetOrders("") {
		if order.Terminal() {
			continue
		}

		if s.jitter > 0 {
			time.Sleep(time.Duration(s.rng.Int63n(int64(s.jitter))))
		}

		updated, err := s.store.AdvanceStep(order.ID)
		if err != nil {
			// The order may have gone terminal between the listing and
			// the advance
			if errors.Is(err, orders.ErrOrderComplete) || errors.Is(err, orders.ErrOrderNotFound) {
				continue
			}
			s.logger.WithError(err).WithField("order_id", order.ID).Error("Simulator failed to advance order")
			continue
		}

		advanced++
		s.logger.WithFields(logrus.Fields{
			"order_id": updated.ID,
			"step":     updated.CurrentStep,
			"status":   updated.Status,
		}).Debug("Simulator advanced order")
	}

	if advanced > 0 {
		s.logger.WithField("orders", advanced).Info("Simulator tick completed")
	}
}

// Stop gracefully stops the simulator
func (s *Simulator) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
