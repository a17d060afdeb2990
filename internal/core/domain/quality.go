package domain

import "time"

// Quality is a point-in-time quality metric computed for a project.
type Quality struct {
	MetricID       int64     `json:"metricId" bson:"_id,omitempty"`
	ProjectID      int64     `json:"projectId" bson:"project_id"`
	BugCount       int       `json:"bugCount" bson:"bug_count"`
	ResolvedCount  int       `json:"resolvedCount" bson:"resolved_count"`
	QualityScore   float64   `json:"qualityScore" bson:"quality_score"`
	CalculatedDate time.Time `json:"calculatedDate" bson:"calculated_date"`
}
