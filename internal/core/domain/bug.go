package domain

import "time"

// Priority classifies how urgently a bug needs attention.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Valid reports whether p is a recognised priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Bug is a defect filed against a project.
type Bug struct {
	ID          int64     `json:"bugId" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Priority    Priority  `json:"priority" bson:"priority"`
	ProjectID   int64     `json:"projectId" bson:"project_id"`
	CreatedDate time.Time `json:"createdDate" bson:"created_date"`
}
