package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"rtsd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("refresh.interval", "300s")
	viper.SetDefault("sources.timeout", "30s")

	viper.BindEnv("logger.level", "RTSD_LOG_LEVEL")
	viper.BindEnv("refresh.interval", "RTSD_REFRESH_INTERVAL")
	viper.BindEnv("cache.enabled", "RTSD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "RTSD_CACHE_SIZE")
	viper.BindEnv("sources.desktopUrl", "RTSD_DESKTOP_URL")
	viper.BindEnv("sources.nightlyUrl", "RTSD_NIGHTLY_URL")
	viper.BindEnv("sources.tagsUrl", "RTSD_TAGS_URL")
	viper.BindEnv("sources.calendarUrl", "RTSD_CALENDAR_URL")

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

	conf.AppName = "ReleaseTrainStatusDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
