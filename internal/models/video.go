package models

type VideoFormat string

const (
	FormatLong      VideoFormat = "long"
	FormatShort     VideoFormat = "short"
	FormatPhotoText VideoFormat = "photo_text"
)

type VideoStatus string

const (
	StatusUploading  VideoStatus = "uploading"
	StatusProcessing VideoStatus = "processing"
	StatusReady      VideoStatus = "ready"
	StatusFailed     VideoStatus = "failed"
)

// VideoMetadata is one catalog record. Timestamps are epoch millis,
// Duration is seconds.
type VideoMetadata struct {
	ID            string      `json:"id"`
	Title         string      `json:"title" validate:"required"`
	Description   string      `json:"description"`
	Creator       string      `json:"creator" validate:"required"`
	CreatorID     string      `json:"creatorId" validate:"required"`
	FileURL       string      `json:"fileUrl"`
	FileSizeBytes int64       `json:"fileSizeBytes"`
	Duration      int         `json:"duration"`
	UploadedAt    int64       `json:"uploadedAt"`
	Views         int         `json:"views"`
	Likes         int         `json:"likes"`
	Category      string      `json:"category"`
	Thumbnail     string      `json:"thumbnail"`
	Format        VideoFormat `json:"format"`
	Status        VideoStatus `json:"status"`
}

// UploadProgress is the transient per-transfer progress report. It exists
// only for the duration of one simulated transfer.
type UploadProgress struct {
	FileID        string  `json:"fileId"`
	Progress      float64 `json:"progress"`
	BytesUploaded int64   `json:"bytesUploaded"`
	TotalBytes    int64   `json:"totalBytes"`
	Speed         float64 `json:"speed"`
	ETA           float64 `json:"eta"`
}
