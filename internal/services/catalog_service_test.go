package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vsd/internal/models"
	"vsd/internal/storage"
	"vsd/internal/testutil"
)

func newTestCatalog() VideoCatalogInterface {
	return NewVideoCatalog(storage.NewMemoryStore(), &testutil.MockLogger{})
}

func sampleVideo(id, creatorID, category string) models.VideoMetadata {
	return models.VideoMetadata{
		ID:        id,
		Title:     "Title " + id,
		Creator:   "Creator",
		CreatorID: creatorID,
		Category:  category,
		Format:    models.FormatLong,
		Status:    models.StatusReady,
	}
}

func TestVideoCatalog_CreateAndList(t *testing.T) {
	catalog := newTestCatalog()

	require.NoError(t, catalog.Create(sampleVideo("video_1", "uid_1", "music")))
	require.NoError(t, catalog.Create(sampleVideo("video_2", "uid_1", "gaming")))

	videos := catalog.List()
	require.Len(t, videos, 2)
	assert.Equal(t, "video_1", videos[0].ID)
	assert.Equal(t, "video_2", videos[1].ID)
	assert.Equal(t, 2, catalog.Len())
}

func TestVideoCatalog_CreateRejectsIncomplete(t *testing.T) {
	catalog := newTestCatalog()

	err := catalog.Create(models.VideoMetadata{ID: "video_1", Title: "No creator"})
	assert.Error(t, err)
	assert.Equal(t, 0, catalog.Len())
}

func TestVideoCatalog_Find(t *testing.T) {
	catalog := newTestCatalog()
	require.NoError(t, catalog.Create(sampleVideo("video_1", "uid_1", "music")))

	found, ok := catalog.Find("video_1")
	assert.True(t, ok)
	assert.Equal(t, "Title video_1", found.Title)

	_, ok = catalog.Find("video_404")
	assert.False(t, ok)
}

func TestVideoCatalog_ByCreatorPreservesOrder(t *testing.T) {
	catalog := newTestCatalog()
	require.NoError(t, catalog.Create(sampleVideo("video_1", "uid_1", "music")))
	require.NoError(t, catalog.Create(sampleVideo("video_2", "uid_2", "music")))
	require.NoError(t, catalog.Create(sampleVideo("video_3", "uid_1", "gaming")))

	videos := catalog.ByCreator("uid_1")
	require.Len(t, videos, 2)
	assert.Equal(t, "video_1", videos[0].ID)
	assert.Equal(t, "video_3", videos[1].ID)
}

func TestVideoCatalog_ByCategory(t *testing.T) {
	catalog := newTestCatalog()
	require.NoError(t, catalog.Create(sampleVideo("video_1", "uid_1", "music")))
	require.NoError(t, catalog.Create(sampleVideo("video_2", "uid_2", "gaming")))

	videos := catalog.ByCategory("gaming")
	require.Len(t, videos, 1)
	assert.Equal(t, "video_2", videos[0].ID)

	assert.Empty(t, catalog.ByCategory("cooking"))
}

func TestVideoCatalog_UpdatePartial(t *testing.T) {
	catalog := newTestCatalog()
	require.NoError(t, catalog.Create(sampleVideo("video_1", "uid_1", "music")))

	updated, ok := catalog.Update("video_1", map[string]any{"title": "Renamed"})
	require.True(t, ok)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "uid_1", updated.CreatorID)
	assert.Equal(t, "music", updated.Category)
}

func TestVideoCatalog_UpdateMissing(t *testing.T) {
	catalog := newTestCatalog()
	_, ok := catalog.Update("video_404", map[string]any{"title": "x"})
	assert.False(t, ok)
}

func TestVideoCatalog_Delete(t *testing.T) {
	catalog := newTestCatalog()
	require.NoError(t, catalog.Create(sampleVideo("video_1", "uid_1", "music")))

	assert.True(t, catalog.Delete("video_1"))
	assert.False(t, catalog.Delete("video_1"))
	assert.Equal(t, 0, catalog.Len())
}

func TestVideoCatalog_AddView(t *testing.T) {
	catalog := newTestCatalog()
	require.NoError(t, catalog.Create(sampleVideo("video_1", "uid_1", "music")))

	updated, ok := catalog.AddView("video_1")
	require.True(t, ok)
	assert.Equal(t, 1, updated.Views)

	updated, _ = catalog.AddView("video_1")
	assert.Equal(t, 2, updated.Views)
	assert.Equal(t, 0, updated.Likes)

	_, ok = catalog.AddView("video_404")
	assert.False(t, ok)
}

func TestVideoCatalog_AddLike(t *testing.T) {
	catalog := newTestCatalog()
	require.NoError(t, catalog.Create(sampleVideo("video_1", "uid_1", "music")))

	updated, ok := catalog.AddLike("video_1")
	require.True(t, ok)
	assert.Equal(t, 1, updated.Likes)
	assert.Equal(t, 0, updated.Views)
}

func TestVideoCatalog_StatusTransitionViaUpdate(t *testing.T) {
	catalog := newTestCatalog()
	video := sampleVideo("video_1", "uid_1", "music")
	video.Status = models.StatusUploading
	require.NoError(t, catalog.Create(video))

	updated, ok := catalog.Update("video_1", map[string]any{"status": models.StatusProcessing})
	require.True(t, ok)
	assert.Equal(t, models.StatusProcessing, updated.Status)

	updated, ok = catalog.Update("video_1", map[string]any{
		"status":  models.StatusReady,
		"fileUrl": "drive://videos/video_1",
	})
	require.True(t, ok)
	assert.Equal(t, models.StatusReady, updated.Status)
	assert.Equal(t, "drive://videos/video_1", updated.FileURL)
}
