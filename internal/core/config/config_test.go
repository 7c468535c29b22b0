package config

import (
	"os"
	"testing"
	"time"
)

func TestFromEnv_DefaultsWhenUnset(t *testing.T) {
	for _, k := range []string{"ADDR", "LOG_LEVEL", "REDIS_ADDR", "CACHE_OP_TIMEOUT",
		"RANGE_CACHE_TTL", "RANGE_CACHE_LRU_SIZE", "RANGE_WORKER_POOL_SIZE",
		"DEFAULT_LEVEL", "INVALIDATION_ENABLED"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := FromEnv()
	if cfg.Addr != ":8090" {
		t.Errorf("Addr = %q, want :8090", cfg.Addr)
	}
	if cfg.RangeCacheLRU != 4096 {
		t.Errorf("RangeCacheLRU = %d, want 4096", cfg.RangeCacheLRU)
	}
	if cfg.DefaultLevel != 5 {
		t.Errorf("DefaultLevel = %d, want 5", cfg.DefaultLevel)
	}
	if cfg.Invalidation.Enabled {
		t.Error("Invalidation.Enabled should default to false")
	}
}

func TestFromEnv_OverridesFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("RANGE_CACHE_LRU_SIZE", "128")
	t.Setenv("DEFAULT_LEVEL", "7")
	t.Setenv("INVALIDATION_ENABLED", "yes")
	t.Setenv("RANGE_CACHE_TTL", "90s")

	cfg := FromEnv()
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.RangeCacheLRU != 128 {
		t.Errorf("RangeCacheLRU = %d, want 128", cfg.RangeCacheLRU)
	}
	if cfg.DefaultLevel != 7 {
		t.Errorf("DefaultLevel = %d, want 7", cfg.DefaultLevel)
	}
	if !cfg.Invalidation.Enabled {
		t.Error("Invalidation.Enabled should be true for \"yes\"")
	}
	if cfg.RangeCacheTTL != 90*time.Second {
		t.Errorf("RangeCacheTTL = %v, want 90s", cfg.RangeCacheTTL)
	}
}

func TestGetint_FallsBackToDefaultOnUnparsableValue(t *testing.T) {
	t.Setenv("DEFAULT_LEVEL", "not-a-number")
	if got := getint("DEFAULT_LEVEL", 5); got != 5 {
		t.Errorf("getint = %d, want the default 5 on a malformed value", got)
	}
}

func TestGetbool_AcceptsCommonTruthyAndFalsyForms(t *testing.T) {
	cases := map[string]bool{"1": true, "true": true, "Yes": true, "0": false, "false": false, "No": false}
	for v, want := range cases {
		t.Setenv("INVALIDATION_ENABLED", v)
		if got := getbool("INVALIDATION_ENABLED", !want); got != want {
			t.Errorf("getbool(%q) = %v, want %v", v, got, want)
		}
	}
}

func TestGetbool_UnrecognizedValueFallsBackToDefault(t *testing.T) {
	t.Setenv("INVALIDATION_ENABLED", "maybe")
	if got := getbool("INVALIDATION_ENABLED", true); !got {
		t.Error("getbool should fall back to the default for an unrecognized value")
	}
}

func TestLoadFile_OverlaysOnlyFieldsPresentInTheFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/grid.toml"
	contents := `
addr = ":7000"

[redis]
addr = "cache.internal:6379"

[range_query]
default_level = 6
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	base := FromEnv()
	base.LogLevel = "debug"

	got, err := LoadFile(base, path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Addr != ":7000" {
		t.Errorf("Addr = %q, want :7000", got.Addr)
	}
	if got.RedisAddr != "cache.internal:6379" {
		t.Errorf("RedisAddr = %q, want cache.internal:6379", got.RedisAddr)
	}
	if got.DefaultLevel != 6 {
		t.Errorf("DefaultLevel = %d, want 6", got.DefaultLevel)
	}
	if got.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want the unoverridden base value debug", got.LogLevel)
	}
}

func TestLoadFile_MissingFileReturnsError(t *testing.T) {
	if _, err := LoadFile(FromEnv(), "/nonexistent/grid.toml"); err == nil {
		t.Fatal("expected an error for a nonexistent config file")
	}
}

func TestLoadFile_InvalidDurationStringIsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/grid.toml"
	contents := `
[cache]
op_timeout = "not-a-duration"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	base := FromEnv()
	got, err := LoadFile(base, path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.CacheOpTimeout != base.CacheOpTimeout {
		t.Errorf("CacheOpTimeout changed to %v despite an unparsable overlay value", got.CacheOpTimeout)
	}
}
