package models

import "time"

// Event событие учётной записи, публикуемое в обменник уведомлений.
type Event struct {
	Type       string    `json:"type"`
	UserUID    string    `json:"user_uid"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}
