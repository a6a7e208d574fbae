package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"vsd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("device.version", "1")
	viper.SetDefault("upload.chunkSize", 1<<20)
	viper.SetDefault("upload.chunkDelay", "100ms")
	viper.SetDefault("cache.ttl", "5s")

	viper.BindEnv("logger.level", "VSD_LOG_LEVEL")
	viper.BindEnv("persistence.filePath", "VSD_DB_PATH")
	viper.BindEnv("persistence.saveInterval", "VSD_SAVE_INTERVAL")
	viper.BindEnv("device.version", "VSD_DEVICE_VERSION")
	viper.BindEnv("upload.chunkDelay", "VSD_UPLOAD_CHUNK_DELAY")
	viper.BindEnv("cache.enabled", "VSD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "VSD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "VideoShareDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
