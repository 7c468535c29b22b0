package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type InvalidationCfg struct {
	Enabled bool
	Topic   string
	Brokers string
	GroupID string
}

type Config struct {
	Addr     string
	LogLevel string

	RedisAddr string

	CacheOpTimeout  time.Duration
	RangeCacheTTL   time.Duration
	RangeCacheLRU   int
	RangeWorkerPool int

	DefaultLevel int

	Invalidation InvalidationCfg
}

func FromEnv() Config {
	return Config{
		Addr:     getenv("ADDR", ":8090"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),

		CacheOpTimeout:  getduration("CACHE_OP_TIMEOUT", 250*time.Millisecond),
		RangeCacheTTL:   getduration("RANGE_CACHE_TTL", 5*time.Minute),
		RangeCacheLRU:   getint("RANGE_CACHE_LRU_SIZE", 4096),
		RangeWorkerPool: getint("RANGE_WORKER_POOL_SIZE", 64),

		DefaultLevel: getint("DEFAULT_LEVEL", 5),

		Invalidation: InvalidationCfg{
			Enabled: getbool("INVALIDATION_ENABLED", false),
			Topic:   getenv("KAFKA_TOPIC", "layer-refresh"),
			Brokers: getenv("KAFKA_BROKERS", "localhost:9092"),
			GroupID: getenv("KAFKA_GROUP_ID", "rangecache-invalidator"),
		},
	}
}

// fileOverlay is the subset of Config a TOML file may override, in the
// shape bitalostored's own root config file takes: plain nested tables,
// no env-var indirection.
type fileOverlay struct {
	Addr     *string `toml:"addr"`
	LogLevel *string `toml:"log_level"`

	Redis struct {
		Addr *string `toml:"addr"`
	} `toml:"redis"`

	Cache struct {
		OpTimeout *string `toml:"op_timeout"`
		RangeTTL  *string `toml:"range_ttl"`
		LRUSize   *int    `toml:"lru_size"`
	} `toml:"cache"`

	RangeQuery struct {
		WorkerPoolSize *int `toml:"worker_pool_size"`
		DefaultLevel   *int `toml:"default_level"`
	} `toml:"range_query"`

	Invalidation struct {
		Enabled *bool   `toml:"enabled"`
		Topic   *string `toml:"topic"`
		Brokers *string `toml:"brokers"`
		GroupID *string `toml:"group_id"`
	} `toml:"invalidation"`
}

// LoadFile overlays a TOML config file on top of cfg's environment-derived
// defaults; only fields present in the file are overridden.
func LoadFile(cfg Config, path string) (Config, error) {
	var overlay fileOverlay
	if _, err := toml.DecodeFile(path, &overlay); err != nil {
		return cfg, fmt.Errorf("load config file %q: %w", path, err)
	}

	if overlay.Addr != nil {
		cfg.Addr = *overlay.Addr
	}
	if overlay.LogLevel != nil {
		cfg.LogLevel = *overlay.LogLevel
	}
	if overlay.Redis.Addr != nil {
		cfg.RedisAddr = *overlay.Redis.Addr
	}
	if overlay.Cache.OpTimeout != nil {
		if d, err := time.ParseDuration(*overlay.Cache.OpTimeout); err == nil {
			cfg.CacheOpTimeout = d
		}
	}
	if overlay.Cache.RangeTTL != nil {
		if d, err := time.ParseDuration(*overlay.Cache.RangeTTL); err == nil {
			cfg.RangeCacheTTL = d
		}
	}
	if overlay.Cache.LRUSize != nil {
		cfg.RangeCacheLRU = *overlay.Cache.LRUSize
	}
	if overlay.RangeQuery.WorkerPoolSize != nil {
		cfg.RangeWorkerPool = *overlay.RangeQuery.WorkerPoolSize
	}
	if overlay.RangeQuery.DefaultLevel != nil {
		cfg.DefaultLevel = *overlay.RangeQuery.DefaultLevel
	}
	if overlay.Invalidation.Enabled != nil {
		cfg.Invalidation.Enabled = *overlay.Invalidation.Enabled
	}
	if overlay.Invalidation.Topic != nil {
		cfg.Invalidation.Topic = *overlay.Invalidation.Topic
	}
	if overlay.Invalidation.Brokers != nil {
		cfg.Invalidation.Brokers = *overlay.Invalidation.Brokers
	}
	if overlay.Invalidation.GroupID != nil {
		cfg.Invalidation.GroupID = *overlay.Invalidation.GroupID
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
