package services

import (
	"github.com/gookit/validate"

	"vsd/internal/models"
	"vsd/internal/providers"
	"vsd/internal/storage"
)

const keyVideosMetadata = "videos_metadata"

type VideoCatalogInterface interface {
	List() []models.VideoMetadata
	Find(id string) (models.VideoMetadata, bool)
	ByCreator(creatorID string) []models.VideoMetadata
	ByCategory(category string) []models.VideoMetadata
	// Create appends a record after validating it. Used for seeding and by
	// the upload simulator; id uniqueness is the caller's responsibility.
	Create(video models.VideoMetadata) error
	Update(id string, patch map[string]any) (models.VideoMetadata, bool)
	Delete(id string) bool
	AddView(id string) (models.VideoMetadata, bool)
	AddLike(id string) (models.VideoMetadata, bool)
	Len() int
}

type VideoCatalog struct {
	collection *Collection[models.VideoMetadata]
}

func NewVideoCatalog(store storage.KVStore, logger providers.Logger) VideoCatalogInterface {
	return &VideoCatalog{
		collection: NewCollection(store, keyVideosMetadata,
			func(v models.VideoMetadata) string { return v.ID }, logger),
	}
}

func (vc *VideoCatalog) List() []models.VideoMetadata {
	return vc.collection.List()
}

func (vc *VideoCatalog) Find(id string) (models.VideoMetadata, bool) {
	return vc.collection.Find(id)
}

func (vc *VideoCatalog) ByCreator(creatorID string) []models.VideoMetadata {
	return vc.collection.Filter(func(v models.VideoMetadata) bool {
		return v.CreatorID == creatorID
	})
}

func (vc *VideoCatalog) ByCategory(category string) []models.VideoMetadata {
	return vc.collection.Filter(func(v models.VideoMetadata) bool {
		return v.Category == category
	})
}

func (vc *VideoCatalog) Create(video models.VideoMetadata) error {
	v := validate.Struct(video)
	if !v.Validate() {
		return v.Errors.OneError()
	}
	vc.collection.Create(video)
	return nil
}

func (vc *VideoCatalog) Update(id string, patch map[string]any) (models.VideoMetadata, bool) {
	return vc.collection.Update(id, patch)
}

func (vc *VideoCatalog) Delete(id string) bool {
	return vc.collection.Delete(id)
}

// AddView bumps the view counter by one whole-collection read-modify-write.
// Concurrent increments can be lost; accepted at this storage granularity.
func (vc *VideoCatalog) AddView(id string) (models.VideoMetadata, bool) {
	video, ok := vc.collection.Find(id)
	if !ok {
		return models.VideoMetadata{}, false
	}
	return vc.collection.Update(id, map[string]any{"views": video.Views + 1})
}

func (vc *VideoCatalog) AddLike(id string) (models.VideoMetadata, bool) {
	video, ok := vc.collection.Find(id)
	if !ok {
		return models.VideoMetadata{}, false
	}
	return vc.collection.Update(id, map[string]any{"likes": video.Likes + 1})
}

func (vc *VideoCatalog) Len() int {
	return vc.collection.Len()
}
