package models

import "time"

// Report is the evaluator's final deliverable for an order
type Report struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Comments  string    `json:"comments"`
	ImageURL  string    `json:"image_url,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SalesDataPoint is one weekday's accumulated revenue
type SalesDataPoint struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}
