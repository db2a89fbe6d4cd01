// Package config resolves runtime settings from the environment. Command-line
// flags override the values loaded here.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"portfolio-chat/internal/resolver"
	"portfolio-chat/internal/usecase"
)

type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

type ContentSource string

const (
	SourceEmbedded ContentSource = "embedded"
	SourceFile     ContentSource = "file"
	SourceSSM      ContentSource = "ssm"
	SourceDynamoDB ContentSource = "dynamodb"
)

const envPrefix = "PORTFOLIO_CHAT_"

// DefaultEndpoint is the hosted backend the original front-end talks to.
const DefaultEndpoint = "https://gems-ai-portfolio-backend.onrender.com"

type Config struct {
	Mode       Mode
	Endpoint   string
	Timeout    time.Duration
	RetryDelay time.Duration
	LocalDelay time.Duration

	ContentSource ContentSource
	ContentFile   string
	ParamName     string
	ContentTable  string
	Site          string

	LogLevel string
	LogFile  string
}

// Load reads all PORTFOLIO_CHAT_* variables and applies defaults.
func Load() (Config, error) {
	timeout, err := envDuration("TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	retryDelay, err := envDuration("RETRY_DELAY", usecase.DefaultRetryDelay)
	if err != nil {
		return Config{}, err
	}
	localDelay, err := envDuration("LOCAL_DELAY", resolver.DefaultLocalDelay)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Mode:          Mode(getEnv("MODE", string(ModeRemote))),
		Endpoint:      getEnv("ENDPOINT", DefaultEndpoint),
		Timeout:       timeout,
		RetryDelay:    retryDelay,
		LocalDelay:    localDelay,
		ContentSource: ContentSource(getEnv("CONTENT_SOURCE", string(SourceEmbedded))),
		ContentFile:   getEnv("CONTENT_FILE", ""),
		ParamName:     getEnv("PARAM_NAME", ""),
		ContentTable:  getEnv("CONTENT_TABLE", ""),
		Site:          getEnv("SITE", "default"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
	}, nil
}

// Validate reports every inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeRemote:
		if strings.TrimSpace(c.Endpoint) == "" {
			errs = append(errs, errors.New("endpoint is required in remote mode"))
		}
	case ModeLocal:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.RetryDelay < 0 || c.LocalDelay < 0 {
		errs = append(errs, errors.New("delays must not be negative"))
	}

	switch c.ContentSource {
	case SourceEmbedded:
	case SourceFile:
		if strings.TrimSpace(c.ContentFile) == "" {
			errs = append(errs, errors.New("content file is required for the file source"))
		}
	case SourceSSM:
		if strings.TrimSpace(c.ParamName) == "" {
			errs = append(errs, errors.New("parameter name is required for the ssm source"))
		}
	case SourceDynamoDB:
		if strings.TrimSpace(c.ContentTable) == "" {
			errs = append(errs, errors.New("content table is required for the dynamodb source"))
		}
		if strings.TrimSpace(c.Site) == "" {
			errs = append(errs, errors.New("site is required for the dynamodb source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown content source %q", c.ContentSource))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s%s: %w", envPrefix, key, err)
	}
	return d, nil
}
