package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rtsd/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Refresh: structures.RefreshConfig{
			Interval: 300 * time.Second,
		},
		Product: structures.ProductConfig{
			Name:      "Thunderbird",
			TagPrefix: "THUNDERBIRD",
		},
		Sources: structures.SourcesConfig{
			DesktopURL:  "https://product-details.example.org/1.0/thunderbird_versions.json",
			NightlyURL:  "https://archive.example.org/pub/thunderbird/nightly/latest-comm-central/",
			TagsURL:     "https://api.example.org/repos/thunderbird-android/tags",
			CalendarURL: "https://calendar.example.org/releases.ics",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingProductName(t *testing.T) {
	c := validConfig()
	c.Product.Name = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_BadSourceURL(t *testing.T) {
	c := validConfig()
	c.Sources.CalendarURL = "not a url"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
