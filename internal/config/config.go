package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	ListenAddr string

	RedisURL      string
	SessionTTLSec int

	MinThinkingTime time.Duration
	MoveOverhead    time.Duration
	SlowMover       int
	NodesTime       int
	Ponder          bool

	TCPreset     string
	TCPresetFile string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ListenAddr:      ":8820",
		SessionTTLSec:   3600,
		MinThinkingTime: 20 * time.Millisecond,
		MoveOverhead:    30 * time.Millisecond,
		SlowMover:       100,
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, errors.New("SESSION_TTL must be a positive number of seconds")
		}
		cfg.SessionTTLSec = n
	}

	if v := strings.TrimSpace(os.Getenv("MIN_THINKING_TIME_MS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.New("MIN_THINKING_TIME_MS must be a non-negative millisecond count")
		}
		cfg.MinThinkingTime = time.Duration(n) * time.Millisecond
	}
	if v := strings.TrimSpace(os.Getenv("MOVE_OVERHEAD_MS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.New("MOVE_OVERHEAD_MS must be a non-negative millisecond count")
		}
		cfg.MoveOverhead = time.Duration(n) * time.Millisecond
	}
	if v := strings.TrimSpace(os.Getenv("SLOW_MOVER")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 10 || n > 1000 {
			return nil, errors.New("SLOW_MOVER must be a percentage between 10 and 1000")
		}
		cfg.SlowMover = n
	}
	if v := strings.TrimSpace(os.Getenv("NODES_TIME")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.New("NODES_TIME must be a non-negative nodes-per-millisecond rate")
		}
		cfg.NodesTime = n
	}
	if v := strings.TrimSpace(os.Getenv("PONDER")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("PONDER must be a boolean")
		}
		cfg.Ponder = b
	}

	cfg.TCPreset = strings.TrimSpace(os.Getenv("TC_PRESET"))
	cfg.TCPresetFile = strings.TrimSpace(os.Getenv("TC_PRESET_FILE"))

	return cfg, nil
}

// SessionTTL returns the session expiry as a duration.
func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSec) * time.Second
}
