package domain

import "time"

// BugAttachment records a file uploaded against a bug. The file itself lives
// on disk at FilePath; only metadata is persisted.
type BugAttachment struct {
	ID           int64     `json:"attachmentId" bson:"_id,omitempty"`
	BugID        int64     `json:"bugId" bson:"bug_id"`
	FileName     string    `json:"fileName" bson:"file_name"`
	FilePath     string    `json:"-" bson:"file_path"`
	UploadedBy   string    `json:"uploadedBy" bson:"uploaded_by"`
	UploadedDate time.Time `json:"uploadedDate" bson:"uploaded_date"`
	FileType     string    `json:"fileType" bson:"file_type"`
	FileSize     int64     `json:"fileSize" bson:"file_size"`
}
