package services

import (
	"time"

	json "github.com/goccy/go-json"

	"vsd/internal/models"
	"vsd/internal/providers"
	"vsd/internal/storage"
	"vsd/internal/structures"
)

const (
	keyDeviceID      = "device_id"
	keyDeviceVersion = "device_version"
	keyDeviceFP      = "device_fingerprint"
)

type DeviceServiceInterface interface {
	// GetOrCreateDeviceID returns the stable device id, synthesizing a new
	// one when none is stored or the stored derivation version is stale.
	GetOrCreateDeviceID() string
	// GetFingerprint returns the fingerprint record, creating it on first
	// call for a device and refreshing lastSeen on every subsequent call.
	GetFingerprint() models.DeviceFingerprint
	// IsNewDevice reports whether no fingerprint record exists yet. Callers
	// deciding on auto-creation must read this before GetFingerprint, which
	// creates the record as a side effect.
	IsNewDevice() bool
}

type DeviceService struct {
	store   storage.KVStore
	logger  providers.Logger
	version string
	info    InfoSource
	now     func() time.Time
}

func NewDeviceService(conf *structures.Config, store storage.KVStore, logger providers.Logger) DeviceServiceInterface {
	return &DeviceService{
		store:   store,
		logger:  logger,
		version: conf.Device.Version,
		info:    HostDeviceInfo,
		now:     time.Now,
	}
}

func (ds *DeviceService) GetOrCreateDeviceID() string {
	id, _ := ds.store.Get(keyDeviceID)
	storedVersion, _ := ds.store.Get(keyDeviceVersion)

	// A stale version tag intentionally invalidates the old identity.
	if id == "" || storedVersion != ds.version {
		id = Fingerprint(ds.info()) + "-" + timeToken(ds.now()) + "-" + randToken(13)
		ds.store.Set(keyDeviceID, id)
		ds.store.Set(keyDeviceVersion, ds.version)
	}

	return id
}

func (ds *DeviceService) GetFingerprint() models.DeviceFingerprint {
	if raw, ok := ds.store.Get(keyDeviceFP); ok {
		var fp models.DeviceFingerprint
		if err := json.Unmarshal([]byte(raw), &fp); err != nil {
			ds.logger.Warnf(providers.TypeApp, "Stored fingerprint is malformed, recreating: %s", err)
		} else {
			fp.LastSeen = ds.now().UnixMilli()
			ds.persistFingerprint(fp)
			return fp
		}
	}

	now := ds.now().UnixMilli()
	fp := models.DeviceFingerprint{
		ID:        ds.GetOrCreateDeviceID(),
		CreatedAt: now,
		LastSeen:  now,
		Info:      ds.info(),
	}
	ds.persistFingerprint(fp)
	return fp
}

func (ds *DeviceService) IsNewDevice() bool {
	_, ok := ds.store.Get(keyDeviceFP)
	return !ok
}

func (ds *DeviceService) persistFingerprint(fp models.DeviceFingerprint) {
	data, err := json.Marshal(fp)
	if err != nil {
		ds.logger.Errorf(providers.TypeApp, "Failed to serialize fingerprint: %s", err)
		return
	}
	ds.store.Set(keyDeviceFP, string(data))
}
