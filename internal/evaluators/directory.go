package evaluators

import (
	"math/rand"
	"sync"

	"evaluo/server/internal/models"
)

// seedPool is the fixed set of evaluators the marketplace operates
// with. Records are read-only: the order engine selects from the pool,
// it never creates or deletes evaluators.
var seedPool = []models.Evaluator{
	{
		ID:          "ev-001",
		Name:        "Maya Thompson",
		Rating:      4.9,
		Evaluations: 212,
		Bio:         "Former building inspector, specializes in pre-war walkups.",
		Avatar:      "/avatars/maya.png",
	},
	{
		ID:          "ev-002",
		Name:        "Dev Patel",
		Rating:      4.7,
		Evaluations: 164,
		Bio:         "Condo and high-rise specialist covering the downtown core.",
		Avatar:      "/avatars/dev.png",
	},
	{
		ID:          "ev-003",
		Name:        "Sofia Marchetti",
		Rating:      4.8,
		Evaluations: 198,
		Bio:         "Detached and semi-detached homes, west end and suburbs.",
		Avatar:      "/avatars/sofia.png",
	},
	{
		ID:          "ev-004",
		Name:        "James Okafor",
		Rating:      4.6,
		Evaluations: 143,
		Bio:         "Rental unit assessments, quick turnarounds on rush bookings.",
		Avatar:      "/avatars/james.png",
	},
	{
		ID:          "ev-005",
		Name:        "Lena Kovacs",
		Rating:      5.0,
		Evaluations: 87,
		Bio:         "Structural background, thorough on older foundations.",
		Avatar:      "/avatars/lena.png",
	},
}

// Directory holds the evaluator pool and a selection policy. The random
// source is injected so tests can pin a deterministic pick.
type Directory struct {
	mu   sync.Mutex
	pool []models.Evaluator
	rng  *rand.Rand
}

// NewDirectory seeds the directory with the standard pool
func NewDirectory(rng *rand.Rand) *Directory {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	pool := make([]models.Evaluator, len(seedPool))
	copy(pool, seedPool)
	return &Directory{pool: pool, rng: rng}
}

// PickRandom selects one evaluator uniformly from the pool
func (d *Directory) PickRandom() models.Evaluator {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pool[d.rng.Intn(len(d.pool))]
}

// All returns a copy of the pool
func (d *Directory) All() []models.Evaluator {
	d.mu.Lock()
	defer d.mu.Unlock()

	all := make([]models.Evaluator, len(d.pool))
	copy(all, d.pool)
	return all
}

// GetByID returns an evaluator by id, or nil if the id is unknown
func (d *Directory) GetByID(id string) *models.Evaluator {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, evaluator := range d.pool {
		if evaluator.ID == id {
			e := evaluator
			return &e
		}
	}
	return nil
}
