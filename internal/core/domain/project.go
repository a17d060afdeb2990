package domain

import "time"

// Project groups bugs and quality metrics under a managing user.
type Project struct {
	ID        int64     `json:"projectId" bson:"_id,omitempty"`
	Name      string    `json:"projectName" bson:"name"`
	StartDate time.Time `json:"startDate,omitempty" bson:"start_date,omitempty"`
	EndDate   time.Time `json:"endDate,omitempty" bson:"end_date,omitempty"`
	ManagerID int64     `json:"managerId" bson:"manager_id"`
}
