package domain

import "time"

// Notification is a message addressed to a single user.
type Notification struct {
	ID          int64     `json:"id" bson:"_id,omitempty"`
	UserID      int64     `json:"userId" bson:"user_id"`
	Type        string    `json:"type" bson:"type"`
	Message     string    `json:"message" bson:"message"`
	Read        bool      `json:"isRead" bson:"read"`
	CreatedDate time.Time `json:"createdDate" bson:"created_date"`
}
