// Package config builds the options object shared by the loader, the selector and the renderer.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/qepting91/jamcomments/internal/domain"
)

// Environment variable names
const (
	EnvAPIURL        = "JAMCOMMENTS_API_URL"
	EnvAPIToken      = "JAMCOMMENTS_API_TOKEN"
	EnvFormat        = "JAMCOMMENTS_FORMAT"
	EnvDateFormat    = "JAMCOMMENTS_DATE_FORMAT"
	EnvCachePath     = "JAMCOMMENTS_CACHE_PATH"
	EnvUseCached     = "JAMCOMMENTS_USE_CACHED"
	EnvNoFollow      = "JAMCOMMENTS_NO_FOLLOW"
	EnvTimeout       = "JAMCOMMENTS_TIMEOUT"
	EnvCollectorMode = "COLLECTOR_MODE"
	EnvPort          = "PORT"
)

const (
	DefaultFormat     = "html"
	DefaultDateFormat = "YYYY-MM-DD"
	DefaultCachePath  = "comments.json"
	DefaultPort       = "8080"
	DefaultTimeout    = 30 * time.Second
)

// Options is the host-supplied configuration surface.
// API URL, token and format are checked again by the loader before any I/O.
type Options struct {
	APIURL        string        `validate:"omitempty,url"`
	APIToken      string        `validate:"-"`
	Format        string        `validate:"required,oneof=text html markdown"`
	DateFormat    string        `validate:"required"`
	CachePath     string        `validate:"required"`
	UseCached     bool          `validate:"-"`
	NoFollow      bool          `validate:"-"`
	CollectorMode string        `validate:"omitempty,oneof=remote mock"`
	Timeout       time.Duration `validate:"gte=0"`
	Port          string        `validate:"omitempty,numeric"`
}

// Defaults returns the options used when nothing else is set
func Defaults() Options {
	return Options{
		Format:        DefaultFormat,
		DateFormat:    DefaultDateFormat,
		CachePath:     DefaultCachePath,
		CollectorMode: "remote",
		Timeout:       DefaultTimeout,
		Port:          DefaultPort,
	}
}

// FromEnv overlays environment variables on the defaults.
// Call godotenv.Load() first if a .env file should be honoured.
func FromEnv() (Options, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Options, error) {
	opts := Defaults()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str(EnvAPIURL, &opts.APIURL)
	str(EnvAPIToken, &opts.APIToken)
	str(EnvFormat, &opts.Format)
	str(EnvDateFormat, &opts.DateFormat)
	str(EnvCachePath, &opts.CachePath)
	str(EnvCollectorMode, &opts.CollectorMode)
	str(EnvPort, &opts.Port)

	for key, dst := range map[string]*bool{EnvUseCached: &opts.UseCached, EnvNoFollow: &opts.NoFollow} {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Options{}, &domain.ConfigurationError{Message: fmt.Sprintf("%s must be a boolean", key), Cause: err}
		}
		*dst = b
	}

	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return Options{}, &domain.ConfigurationError{Message: fmt.Sprintf("%s must be a duration", EnvTimeout), Cause: err}
		}
		opts.Timeout = d
	}

	return opts, nil
}

// Validate checks the rendering and cache settings
func (o Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return &domain.ConfigurationError{Message: "invalid options", Cause: err}
	}
	return nil
}
