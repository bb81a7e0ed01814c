package storage

import "time"

// Interaction is one answered question.
type Interaction struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"request_id,omitempty"`
	QueryText    string    `json:"query_text"`
	ResponseText string    `json:"response_text"`
	RoutedTo     string    `json:"routed_to"`
	CreatedAt    time.Time `json:"created_at"`
}
