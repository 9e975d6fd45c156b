package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AppConfig is a global variable for configuration
var AppConfig Config

var ErrNoLocation = errors.New("no location configured")

// Config holds all settings. Every field can be set from the environment
// variable named after its key in upper case, e.g. LAT or TG_BOT_TOKEN.
type Config struct {
	TelegramBotToken     string  `mapstructure:"tg_bot_token"`
	TelegramChatID       string  `mapstructure:"chat_id"`
	Latitude             string  `mapstructure:"lat"`
	Longitude            string  `mapstructure:"lon"`
	Place                string  `mapstructure:"place"`
	Timezone             string  `mapstructure:"timezone"`
	GeocodingApiEndpoint string  `mapstructure:"geocoding_api_endpoint"`
	Width                float64 `mapstructure:"width"`
	Height               float64 `mapstructure:"height"`
	TwilightDegree       float64 `mapstructure:"twilight_degree"`
	Frequency            float64 `mapstructure:"frequency"`
	ListenAddr           string  `mapstructure:"listen_addr"`
	CronExpression       string  `mapstructure:"cron_expression"`
	StateFilePath        string  `mapstructure:"state_file_path"`
}

var defaults = map[string]any{
	"tg_bot_token":           "",
	"chat_id":                "",
	"lat":                    "",
	"lon":                    "",
	"place":                  "",
	"timezone":               "Local",
	"geocoding_api_endpoint": "https://geocoding-api.open-meteo.com/v1/search",
	"width":                  256,
	"height":                 256,
	"twilight_degree":        -6,
	"frequency":              1,
	"listen_addr":            ":8080",
	"cron_expression":        "0 6 * * *",
	"state_file_path":        "state.txt",
}

var (
	mu sync.Mutex
	v  *viper.Viper
)

// LoadConfig initializes AppConfig from defaults, the optional YAML file at
// path and environment variables, in increasing order of precedence.
func LoadConfig(path string) error {
	mu.Lock()
	defer mu.Unlock()

	v = viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}
	AppConfig = cfg
	return nil
}

// Watch calls onChange with the reloaded configuration whenever the config
// file given to LoadConfig changes. It does nothing without a file.
func Watch(onChange func(Config)) {
	mu.Lock()
	defer mu.Unlock()
	if v == nil || v.ConfigFileUsed() == "" {
		return
	}
	watched := v
	watched.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg := Config{}
		mu.Lock()
		err := watched.Unmarshal(&cfg)
		if err == nil {
			AppConfig = cfg
		}
		mu.Unlock()
		if err == nil {
			onChange(cfg)
		}
	})
	watched.WatchConfig()
}

// Coordinates returns the configured longitude and latitude. auto is true
// when either is "auto", meaning the place has to be geocoded. ErrNoLocation
// is returned when neither is set.
func (c Config) Coordinates() (longitude, latitude float64, auto bool, err error) {
	lon, lat := strings.TrimSpace(c.Longitude), strings.TrimSpace(c.Latitude)
	if strings.EqualFold(lon, "auto") || strings.EqualFold(lat, "auto") {
		return 0, 0, true, nil
	}
	if lon == "" && lat == "" {
		return 0, 0, false, ErrNoLocation
	}
	if longitude, err = strconv.ParseFloat(lon, 64); err != nil {
		return 0, 0, false, fmt.Errorf("invalid LON %q: %w", c.Longitude, err)
	}
	if latitude, err = strconv.ParseFloat(lat, 64); err != nil {
		return 0, 0, false, fmt.Errorf("invalid LAT %q: %w", c.Latitude, err)
	}
	return longitude, latitude, false, nil
}

// Location loads the configured IANA time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ChatID converts the configured CHAT_ID to the int64 telegram expects.
func (c Config) ChatID() (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.TelegramChatID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert CHAT_ID %q to int: %w", c.TelegramChatID, err)
	}
	return id, nil
}
