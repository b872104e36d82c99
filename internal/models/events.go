package models

// OrderEvent describes a committed order mutation, published on the
// orders and admin channels
type OrderEvent struct {
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	Step          Step   `json:"step"`
	PropertyIndex int    `json:"property_index"`
}

// UserEvent describes a committed user-directory mutation
type UserEvent struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
}
