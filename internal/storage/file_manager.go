package storage

import (
	"os"

	json "github.com/goccy/go-json"

	"vsd/internal/providers"
	"vsd/internal/storage/interfaces"
)

const snapshotVersion = 1

// snapshotEnvelope is the on-disk format: the whole key space as one
// versioned blob.
type snapshotEnvelope struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

type FileManager struct {
	store      KVStore
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(store KVStore, compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		store:      store,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	envelope := snapshotEnvelope{
		Version: snapshotVersion,
		Entries: f.store.Snapshot(),
	}

	jsonData, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile restores the key space from a snapshot. A missing file is not
// an error, and a snapshot that fails to decompress or parse degrades to an
// empty store rather than aborting startup.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Snapshot %s is not readable, starting empty: %s", fileName, err)
		return nil
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal(decompressedData, &envelope); err != nil {
		f.logger.Warnf(providers.TypeApp, "Snapshot %s is malformed, starting empty: %s", fileName, err)
		return nil
	}
	if envelope.Version != snapshotVersion {
		f.logger.Warnf(providers.TypeApp, "Snapshot %s has unknown version %d, starting empty", fileName, envelope.Version)
		return nil
	}

	f.store.Replace(envelope.Entries)
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
