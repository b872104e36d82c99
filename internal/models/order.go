package models

import "time"

// Step is the fine-grained lifecycle phase of an order
type Step string

const (
	StepPendingMatch       Step = "PENDING_MATCH"
	StepOutreachInitiated  Step = "OUTREACH_INITIATED"
	StepOutreachScheduling Step = "OUTREACH_SCHEDULING"
	StepOutreachScheduled  Step = "OUTREACH_SCHEDULED"
	StepEnRoute            Step = "EN_ROUTE"
	StepArrived            Step = "ARRIVED"
	StepEvaluating         Step = "EVALUATING"
	StepCompleted          Step = "COMPLETED"
	StepReportReady        Step = "REPORT_READY"
)

// Coarse user-facing status values, ordered projections of Step
const (
	StatusPending           = "Pending"
	StatusEvaluatorAssigned = "Evaluator Assigned"
	StatusInProgress        = "In Progress"
	StatusReportReady       = "Report Ready"
)

// Zone is a distance-based pricing tier measured from the city center
type Zone string

const (
	ZoneA Zone = "A"
	ZoneB Zone = "B"
	ZoneC Zone = "C"
	ZoneD Zone = "D"
)

// LandlordInfo is the contact needed to schedule a viewing.
// Name and Phone are mandatory before an order can be created.
type LandlordInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
}

// AgentContact is a single agent summary for the whole order, distinct
// from per-property landlord info
type AgentContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// PriceBreakdown is the computed cost of evaluating one property
type PriceBreakdown struct {
	BasePrice    float64 `json:"base_price"`
	ProximityFee float64 `json:"proximity_fee"`
	RushFee      float64 `json:"rush_fee"`
	Total        float64 `json:"total"`
}

// OrderPricing is the computed cost of a whole order
type OrderPricing struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	SurgeFee float64 `json:"surge_fee"`
	Total    float64 `json:"total"`
}

// Property is a single address submitted for evaluation
type Property struct {
	Address     string         `json:"address"`
	Description string         `json:"description,omitempty"`
	City        string         `json:"city"`
	Zone        Zone           `json:"zone"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	RushBooking bool           `json:"rush_booking"`
	Price       PriceBreakdown `json:"price"`
	Landlord    *LandlordInfo  `json:"landlord,omitempty"`
}

// Order is a customer's request to evaluate one or more properties.
// The property list order is meaningful: it is the visit sequence.
type Order struct {
	ID                   string        `json:"id"`
	UserID               string        `json:"user_id"`
	Properties           []Property    `json:"properties"`
	TotalPrice           float64       `json:"total_price"`
	Discount             float64       `json:"discount"`
	SurgeFee             float64       `json:"surge_fee"`
	Status               string        `json:"status"`
	CurrentStep          Step          `json:"current_step"`
	CurrentPropertyIndex int           `json:"current_property_index"`
	Evaluator            *Evaluator    `json:"evaluator,omitempty"`
	AgentContact         *AgentContact `json:"agent_contact,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
}

// CurrentProperty returns the property the evaluator is working on
func (o *Order) CurrentProperty() *Property {
	if o.CurrentPropertyIndex < 0 || o.CurrentPropertyIndex >= len(o.Properties) {
		return nil
	}
	return &o.Properties[o.CurrentPropertyIndex]
}

// Terminal reports whether the order has reached its final step
func (o *Order) Terminal() bool {
	return o.CurrentStep == StepReportReady
}
