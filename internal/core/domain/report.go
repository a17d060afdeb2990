package domain

import "time"

// Report is a generated analytic report. Parameters holds the raw generation
// parameters as submitted; the rendered artifact is referenced by ReportURL.
type Report struct {
	ID            int64     `json:"reportId" bson:"_id,omitempty"`
	Type          string    `json:"type" bson:"type"`
	Parameters    string    `json:"parameters,omitempty" bson:"parameters,omitempty"`
	GeneratedDate time.Time `json:"generatedDate" bson:"generated_date"`
	GeneratedBy   string    `json:"generatedBy" bson:"generated_by"`
	ReportURL     string    `json:"reportUrl,omitempty" bson:"report_url,omitempty"`
	Format        string    `json:"format,omitempty" bson:"format,omitempty"`
}
