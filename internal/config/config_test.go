package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: "./test.db",
		KeyPrefix:    "cuentamia",
		LogLevel:     "info",
		CacheSize:    128,
		CacheTTL:     5 * time.Minute,
		WriteTimeout: 5 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		edit        func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid sqlite backend config",
			edit:    func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid memory backend config",
			edit:    func(c *Config) { c.DataBackend = "memory"; c.SQLiteDBPath = "" },
			wantErr: false,
		},
		{
			name:    "valid redis backend config",
			edit:    func(c *Config) { c.DataBackend = "redis"; c.RedisURL = "redis://localhost:6379/0" },
			wantErr: false,
		},
		{
			name:        "invalid data backend",
			edit:        func(c *Config) { c.DataBackend = "postgres" },
			wantErr:     true,
			errorString: "invalid data backend 'postgres': must be one of [memory sqlite redis]",
		},
		{
			name:        "sqlite backend missing database path",
			edit:        func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "redis backend missing URL",
			edit:        func(c *Config) { c.DataBackend = "redis" },
			wantErr:     true,
			errorString: "Redis URL is required when using redis backend",
		},
		{
			name:        "invalid redis URL scheme",
			edit:        func(c *Config) { c.DataBackend = "redis"; c.RedisURL = "http://localhost:6379" },
			wantErr:     true,
			errorString: "invalid Redis URL scheme 'http': must be 'redis' or 'rediss'",
		},
		{
			name:        "empty key prefix",
			edit:        func(c *Config) { c.KeyPrefix = " " },
			wantErr:     true,
			errorString: "key prefix cannot be empty",
		},
		{
			name:        "key prefix with separator",
			edit:        func(c *Config) { c.KeyPrefix = "my_app" },
			wantErr:     true,
			errorString: "invalid key prefix 'my_app': must not contain '_'",
		},
		{
			name:        "invalid log level",
			edit:        func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "negative cache size",
			edit:        func(c *Config) { c.CacheSize = -1 },
			wantErr:     true,
			errorString: "invalid cache size -1: must not be negative",
		},
		{
			name:        "cache enabled without TTL",
			edit:        func(c *Config) { c.CacheTTL = 0 },
			wantErr:     true,
			errorString: "invalid cache TTL 0s",
		},
		{
			name:    "cache disabled without TTL",
			edit:    func(c *Config) { c.CacheSize = 0; c.CacheTTL = 0 },
			wantErr: false,
		},
		{
			name:        "write timeout too short",
			edit:        func(c *Config) { c.WriteTimeout = 10 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid write timeout 10ms: must be at least 100ms",
		},
		{
			name:        "write timeout too long",
			edit:        func(c *Config) { c.WriteTimeout = time.Hour },
			wantErr:     true,
			errorString: "invalid write timeout 1h0m0s: must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.edit(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.DataBackend = "nope"
	cfg.KeyPrefix = ""
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), "\n- "); n != 3 {
		t.Fatalf("expected 3 problems reported, got %d: %v", n, err)
	}
}

func TestConfig_ValidateCreatesSQLiteDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := validConfig()
	cfg.SQLiteDBPath = filepath.Join(dir, "cuentamia.db")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Config.Validate() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to be created: %v", err)
	}
}

func TestLoad(t *testing.T) {
	for _, key := range []string{"DATA_BACKEND", "SQLITE_DB_PATH", "REDIS_URL", "KEY_PREFIX", "LOG_LEVEL", "CACHE_SIZE", "CACHE_TTL", "WRITE_TIMEOUT", "SEED_DEMO_DATA"} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/cuentamia.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/cuentamia.db", cfg.SQLiteDBPath)
		}
		if cfg.KeyPrefix != "cuentamia" {
			t.Errorf("Load() KeyPrefix = %v, want cuentamia", cfg.KeyPrefix)
		}
		if cfg.CacheSize != 128 || cfg.CacheTTL != 5*time.Minute {
			t.Errorf("Load() cache = %d/%v, want 128/5m", cfg.CacheSize, cfg.CacheTTL)
		}
		if cfg.WriteTimeout != 5*time.Second {
			t.Errorf("Load() WriteTimeout = %v, want 5s", cfg.WriteTimeout)
		}
		if cfg.SeedDemoData {
			t.Errorf("Load() SeedDemoData = true, want false")
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("DATA_BACKEND", "redis")
		t.Setenv("REDIS_URL", "redis://localhost:6379/1")
		t.Setenv("KEY_PREFIX", "test")
		t.Setenv("CACHE_SIZE", "16")
		t.Setenv("CACHE_TTL", "30s")
		t.Setenv("WRITE_TIMEOUT", "2s")
		t.Setenv("SEED_DEMO_DATA", "true")

		cfg := Load()

		if cfg.DataBackend != "redis" || cfg.RedisURL != "redis://localhost:6379/1" {
			t.Errorf("Load() backend = %v %v", cfg.DataBackend, cfg.RedisURL)
		}
		if cfg.KeyPrefix != "test" {
			t.Errorf("Load() KeyPrefix = %v, want test", cfg.KeyPrefix)
		}
		if cfg.CacheSize != 16 || cfg.CacheTTL != 30*time.Second {
			t.Errorf("Load() cache = %d/%v, want 16/30s", cfg.CacheSize, cfg.CacheTTL)
		}
		if cfg.WriteTimeout != 2*time.Second {
			t.Errorf("Load() WriteTimeout = %v, want 2s", cfg.WriteTimeout)
		}
		if !cfg.SeedDemoData {
			t.Errorf("Load() SeedDemoData = false, want true")
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("CACHE_SIZE", "invalid")
		t.Setenv("CACHE_TTL", "invalid")
		t.Setenv("SEED_DEMO_DATA", "maybe")

		cfg := Load()

		if cfg.CacheSize != 128 {
			t.Errorf("Load() CacheSize = %v, want 128 (default for invalid input)", cfg.CacheSize)
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 5m (default for invalid input)", cfg.CacheTTL)
		}
		if cfg.SeedDemoData {
			t.Errorf("Load() SeedDemoData = true, want false (default for invalid input)")
		}
	})
}
