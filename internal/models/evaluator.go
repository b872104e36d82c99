package models

// Evaluator is the person who performs on-site inspections.
// Records are seeded once and never mutated by the order engine.
type Evaluator struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	Evaluations int     `json:"evaluations"`
	Bio         string  `json:"bio,omitempty"`
	Avatar      string  `json:"avatar,omitempty"`
}
