package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/ZanzyTHEbar/epi-index/internal/errors"
	"github.com/ZanzyTHEbar/epi-index/internal/indices"
)

// Config is the server configuration, read from the environment
type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	AllowedOrigins  []string
	EnableHSTS      bool
	ShutdownTimeout time.Duration

	RateLimitPerMin          int
	RateLimitBurstMultiplier int
	RedisAddr                string
	RedisPassword            string
	RedisDB                  int

	Thresholds indices.Thresholds
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.NewConfigurationError("failed to read .env file", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, applying defaults for unset keys
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	p := parser{lookup: lookup, problems: map[string]string{}}

	cfg := &Config{
		Port:            p.str("PORT", "8080"),
		GinMode:         p.str("GIN_MODE", "release"),
		LogLevel:        p.str("LOG_LEVEL", "info"),
		AllowedOrigins:  p.list("CORS_ALLOWED_ORIGINS", []string{"*"}),
		EnableHSTS:      p.boolean("ENABLE_HSTS", false),
		ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 10*time.Second),

		RateLimitPerMin:          p.integer("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurstMultiplier: p.integer("RATE_LIMIT_BURST_MULTIPLIER", 2),
		RedisAddr:                p.str("REDIS_ADDR", ""),
		RedisPassword:            p.str("REDIS_PASSWORD", ""),
		RedisDB:                  p.integer("REDIS_DB", 0),

		Thresholds: ThresholdsFromLookup(lookup, p.problems),
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		p.problems["GIN_MODE"] = "must be debug, release or test"
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		p.problems["PORT"] = "must be a port number"
	}
	if cfg.RateLimitPerMin < 1 {
		p.problems["RATE_LIMIT_PER_MIN"] = "must be at least 1"
	}
	if cfg.RateLimitBurstMultiplier < 1 {
		p.problems["RATE_LIMIT_BURST_MULTIPLIER"] = "must be at least 1"
	}

	if len(p.problems) > 0 {
		appErr := apperrors.NewValidationErrorWithMap(p.problems)
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("invalid environment: %d problem(s)", len(p.problems)), appErr)
	}

	return cfg, nil
}

// ThresholdsFromLookup reads risk thresholds, falling back to the defaults
// Problems are recorded by variable name
func ThresholdsFromLookup(lookup func(string) (string, bool), problems map[string]string) indices.Thresholds {
	p := parser{lookup: lookup, problems: problems}
	return indices.Thresholds{
		HouseIndex:         p.threshold("HOUSE_INDEX_THRESHOLD", indices.DefaultHouseIndexThreshold),
		BreteauIndex:       p.threshold("BRETEAU_INDEX_THRESHOLD", indices.DefaultBreteauIndexThreshold),
		RodentIndex:        p.threshold("RODENT_INDEX_THRESHOLD", indices.DefaultRodentIndexThreshold),
		WaterContamination: p.threshold("WATER_CONTAMINATION_THRESHOLD", indices.DefaultWaterContaminationThreshold),
	}
}

type parser struct {
	lookup   func(string) (string, bool)
	problems map[string]string
}

func (p parser) raw(key string) (string, bool) {
	v, ok := p.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p parser) str(key, def string) string {
	if v, ok := p.raw(key); ok {
		return v
	}
	return def
}

func (p parser) integer(key string, def int) int {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.problems[key] = "must be an integer"
		return def
	}
	return n
}

func (p parser) boolean(key string, def bool) bool {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.problems[key] = "must be true or false"
		return def
	}
	return b
}

func (p parser) duration(key string, def time.Duration) time.Duration {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		p.problems[key] = "must be a positive duration such as 10s"
		return def
	}
	return d
}

func (p parser) list(key string, def []string) []string {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	out := make([]string, 0)
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func (p parser) threshold(key string, def float64) float64 {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		p.problems[key] = "must be a finite non-negative number"
		return def
	}
	return f
}
