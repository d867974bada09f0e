package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type RefreshConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

// ProductConfig names the product whose release trains are tracked and the
// textual signatures used when correlating versions with calendar events.
type ProductConfig struct {
	Name         string `yaml:"name" validate:"required"`
	TagPrefix    string `yaml:"tagPrefix" validate:"required"`
	MobilePrefix string `yaml:"mobilePrefix"`
	MobilePhrase string `yaml:"mobilePhrase"`
	MobileToken  string `yaml:"mobileToken"`
}

type SourcesConfig struct {
	DesktopURL  string        `yaml:"desktopUrl" validate:"required|fullUrl"`
	NightlyURL  string        `yaml:"nightlyUrl" validate:"required|fullUrl"`
	TagsURL     string        `yaml:"tagsUrl" validate:"required|fullUrl"`
	CalendarURL string        `yaml:"calendarUrl" validate:"required|fullUrl"`
	Timeout     time.Duration `yaml:"timeout"`
}

// CountdownConfig carries the release-date override map. Keys are version
// strings, values are date strings accepted by the generic date parser.
type CountdownConfig struct {
	Overrides map[string]string `yaml:"overrides"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Logger    LoggerConfig    `yaml:"logger"`
	Refresh   RefreshConfig   `yaml:"refresh"`
	Product   ProductConfig   `yaml:"product"`
	Sources   SourcesConfig   `yaml:"sources"`
	Countdown CountdownConfig `yaml:"countdown"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
