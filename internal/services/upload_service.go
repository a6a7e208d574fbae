package services

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"

	"vsd/internal/models"
	"vsd/internal/providers"
	"vsd/internal/storage"
	"vsd/internal/structures"
)

const (
	keyDriveInitialized = "google_drive_initialized"
	progressKeyPrefix   = "upload_progress_"
)

// UploadSubmission carries the descriptive fields for one simulated transfer.
type UploadSubmission struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description"`
	Creator     string             `json:"creator" validate:"required"`
	CreatorID   string             `json:"creatorId" validate:"required"`
	Category    string             `json:"category"`
	Format      models.VideoFormat `json:"format"`
	Thumbnail   string             `json:"thumbnail"`
	Duration    int                `json:"duration"`
}

type ProgressFunc func(models.UploadProgress)

type UploadServiceInterface interface {
	// Upload drives one simulated chunked transfer to completion and returns
	// the finished catalog record. There is no cancellation hook: once
	// started the transfer runs every chunk.
	Upload(totalBytes int64, sub UploadSubmission, onProgress ProgressFunc) (*models.VideoMetadata, error)
	// Start validates the submission, creates the placeholder record and
	// runs the transfer in the background, returning the minted file id.
	Start(totalBytes int64, sub UploadSubmission) (string, error)
	// Progress returns the last reported snapshot for an in-flight transfer.
	Progress(fileID string) (models.UploadProgress, bool)
}

type UploadService struct {
	store      storage.KVStore
	catalog    VideoCatalogInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	chunkSize  int64
	chunkDelay time.Duration
	now        func() time.Time
	sleep      func(time.Duration)
}

func NewUploadService(conf *structures.Config, store storage.KVStore, catalog VideoCatalogInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) UploadServiceInterface {
	return &UploadService{
		store:      store,
		catalog:    catalog,
		logger:     logger,
		metrics:    metrics,
		chunkSize:  conf.Upload.ChunkSize,
		chunkDelay: conf.Upload.ChunkDelay,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

func (us *UploadService) Upload(totalBytes int64, sub UploadSubmission, onProgress ProgressFunc) (*models.VideoMetadata, error) {
	placeholder, err := us.prepare(totalBytes, sub)
	if err != nil {
		return nil, err
	}
	return us.run(placeholder, onProgress)
}

func (us *UploadService) Start(totalBytes int64, sub UploadSubmission) (string, error) {
	placeholder, err := us.prepare(totalBytes, sub)
	if err != nil {
		return "", err
	}

	go func() {
		if _, err := us.run(placeholder, nil); err != nil {
			us.logger.Errorf(providers.TypeApp, "Background upload %s failed: %s", placeholder.ID, err)
		}
	}()

	return placeholder.ID, nil
}

func (us *UploadService) Progress(fileID string) (models.UploadProgress, bool) {
	raw, ok := us.store.Get(progressKeyPrefix + fileID)
	if !ok {
		return models.UploadProgress{}, false
	}
	var p models.UploadProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		us.logger.Warnf(providers.TypeApp, "Stored progress for %s is malformed: %s", fileID, err)
		return models.UploadProgress{}, false
	}
	return p, true
}

// prepare validates the submission and persists the initial uploading-state
// record. Nothing is written when validation fails.
func (us *UploadService) prepare(totalBytes int64, sub UploadSubmission) (models.VideoMetadata, error) {
	v := validate.Struct(sub)
	if !v.Validate() {
		return models.VideoMetadata{}, v.Errors.OneError()
	}
	if totalBytes <= 0 {
		return models.VideoMetadata{}, fmt.Errorf("upload payload is empty")
	}

	us.ensureDriveInitialized()

	now := us.now()
	format := sub.Format
	if format == "" {
		format = models.FormatLong
	}
	placeholder := models.VideoMetadata{
		ID:            "video_" + timeToken(now) + "-" + randToken(6),
		Title:         sub.Title,
		Description:   sub.Description,
		Creator:       sub.Creator,
		CreatorID:     sub.CreatorID,
		FileSizeBytes: totalBytes,
		Duration:      sub.Duration,
		UploadedAt:    now.UnixMilli(),
		Category:      sub.Category,
		Thumbnail:     sub.Thumbnail,
		Format:        format,
		Status:        models.StatusUploading,
	}

	if err := us.catalog.Create(placeholder); err != nil {
		return models.VideoMetadata{}, err
	}
	return placeholder, nil
}

func (us *UploadService) run(placeholder models.VideoMetadata, onProgress ProgressFunc) (*models.VideoMetadata, error) {
	id := placeholder.ID
	totalBytes := placeholder.FileSizeBytes
	start := us.now()
	var uploadedBytes int64

	for uploadedBytes < totalBytes {
		uploadedBytes = min(uploadedBytes+us.chunkSize, totalBytes)

		elapsed := us.now().Sub(start).Seconds()
		speed := float64(uploadedBytes) / max(elapsed, 0.1)
		eta := float64(totalBytes-uploadedBytes) / max(speed, 1)

		progress := models.UploadProgress{
			FileID:        id,
			Progress:      float64(uploadedBytes) / float64(totalBytes) * 100,
			BytesUploaded: uploadedBytes,
			TotalBytes:    totalBytes,
			Speed:         speed,
			ETA:           eta,
		}
		us.persistProgress(progress)
		if onProgress != nil {
			onProgress(progress)
		}

		if uploadedBytes < totalBytes {
			us.sleep(us.chunkDelay)
		}
	}

	if _, ok := us.catalog.Update(id, map[string]any{"status": models.StatusProcessing}); !ok {
		return nil, us.fail(id, "record disappeared before processing")
	}

	final, ok := us.catalog.Update(id, map[string]any{
		"status":     models.StatusReady,
		"fileUrl":    "drive://videos/" + id,
		"uploadedAt": us.now().UnixMilli(),
	})
	if !ok {
		return nil, us.fail(id, "record disappeared before finalization")
	}

	us.store.Remove(progressKeyPrefix + id)
	us.metrics.IncUploadsTotal(string(models.StatusReady))
	return &final, nil
}

func (us *UploadService) fail(id, reason string) error {
	us.catalog.Update(id, map[string]any{"status": models.StatusFailed})
	us.store.Remove(progressKeyPrefix + id)
	us.metrics.IncUploadsTotal(string(models.StatusFailed))
	return fmt.Errorf("upload %s failed: %s", id, reason)
}

func (us *UploadService) persistProgress(p models.UploadProgress) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	us.store.Set(progressKeyPrefix+p.FileID, string(data))
}

// ensureDriveInitialized flips the one-time mock-initialization flag. The
// real integration would run an OAuth flow here; the simulator only records
// that initialization happened.
func (us *UploadService) ensureDriveInitialized() {
	if us.store.SetIfAbsent(keyDriveInitialized, "true") {
		us.logger.Infof(providers.TypeApp, "Mock drive storage initialized")
	}
}
