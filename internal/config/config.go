// Package config provides application configuration loaded from environment variables.
// Use the package-level Get() function to obtain the singleton Config instance.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"
	"time"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sub-config structs
// ──────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // e.g. "8080"
	Env            string        // "development" | "production"
	ReadTimeout    time.Duration // default 10s
	WriteTimeout   time.Duration // default 10s
	AllowedOrigins string        // comma-separated origins for WS; "" = allow all
}

// LeagueConfig holds the auction rules applied when no snapshot exists
// (or when growing a restored league to a larger team count).
type LeagueConfig struct {
	TeamCount       int     // default 10
	InitialBudget   int     // credits per team, default 700
	QuotaGoalkeeper int     // default 3
	QuotaDefender   int     // default 8
	QuotaMidfielder int     // default 8
	QuotaAttacker   int     // default 6
	AllowDuplicates bool    // default false: one card per player league-wide
	TargetGK        float64 // spending-target fractions; must sum to ~1
	TargetDF        float64
	TargetMF        float64
	TargetFW        float64
}

// SnapshotConfig holds persistence settings. When DSN is set the league is
// snapshotted to PostgreSQL; otherwise to a JSON file.
type SnapshotConfig struct {
	Path           string        // file snapshot path, default "data/lega.json"
	BackupDir      string        // timestamped backups; "" disables
	BackupInterval time.Duration // default 5m
	DSN            string        // optional postgres DSN
	MaxOpenConns   int           // default 5
	MaxIdleConns   int           // default 2
}

// CatalogConfig holds the player-catalog source settings.
type CatalogConfig struct {
	Path string // CSV listone path; "" or missing file = empty catalog
}

// ──────────────────────────────────────────────────────────────────────────────
// Top-level Config
// ──────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object for the entire application.
type Config struct {
	Server   ServerConfig
	League   LeagueConfig
	Snapshot SnapshotConfig
	Catalog  CatalogConfig
}

// IsProd returns true when running in the production environment.
func (c *Config) IsProd() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// Returns every validation error encountered, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.League.TeamCount < 2 {
		errs = append(errs, fmt.Errorf("LEAGUE_TEAM_COUNT must be at least 2, got %d", c.League.TeamCount))
	}
	if c.League.InitialBudget < 1 {
		errs = append(errs, fmt.Errorf("LEAGUE_BUDGET must be at least 1, got %d", c.League.InitialBudget))
	}
	for name, q := range map[string]int{
		"LEAGUE_QUOTA_GK": c.League.QuotaGoalkeeper,
		"LEAGUE_QUOTA_DF": c.League.QuotaDefender,
		"LEAGUE_QUOTA_MF": c.League.QuotaMidfielder,
		"LEAGUE_QUOTA_FW": c.League.QuotaAttacker,
	} {
		if q < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, q))
		}
	}

	total := 0.0
	for name, f := range map[string]float64{
		"LEAGUE_TARGET_GK": c.League.TargetGK,
		"LEAGUE_TARGET_DF": c.League.TargetDF,
		"LEAGUE_TARGET_MF": c.League.TargetMF,
		"LEAGUE_TARGET_FW": c.League.TargetFW,
	} {
		if f < 0 || f > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %.4f", name, f))
		}
		total += f
	}
	if math.Abs(total-1.0) > 0.001 {
		errs = append(errs, fmt.Errorf("spending-target fractions must sum to 1, got %.4f", total))
	}

	if c.Snapshot.BackupInterval < time.Second {
		errs = append(errs, fmt.Errorf("SNAPSHOT_BACKUP_INTERVAL too small: %s", c.Snapshot.BackupInterval))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Singleton
// ──────────────────────────────────────────────────────────────────────────────

var (
	instance *Config
	once     sync.Once
	loadErr  error
)

// Get returns the singleton Config, loading it once from environment variables.
// Panics if loading fails — call this early in main() to catch misconfigurations
// at startup.
func Get() *Config {
	once.Do(func() {
		instance, loadErr = load()
	})
	if loadErr != nil {
		panic(fmt.Sprintf("config: failed to load: %v", loadErr))
	}
	return instance
}

// MustLoad loads and validates configuration. Intended for use in main().
// Panics on any error so misconfiguration is caught immediately at boot.
func MustLoad() *Config {
	cfg := Get()
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: validation failed: %v", err))
	}
	return cfg
}

// ──────────────────────────────────────────────────────────────────────────────
// Internal loader
// ──────────────────────────────────────────────────────────────────────────────

func load() (*Config, error) {
	cfg := &Config{}

	// ── Server ────────────────────────────────────────────────────────────────
	cfg.Server = ServerConfig{
		Port:           getEnv("SERVER_PORT", "8080"),
		Env:            getEnv("ENVIRONMENT", "development"),
		ReadTimeout:    getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:   getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		AllowedOrigins: getEnv("WS_ALLOWED_ORIGINS", ""),
	}

	// ── League ────────────────────────────────────────────────────────────────
	teamCount, err := getInt("LEAGUE_TEAM_COUNT", 10)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_TEAM_COUNT: %w", err)
	}
	budget, err := getInt("LEAGUE_BUDGET", 700)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_BUDGET: %w", err)
	}
	quotaGK, err := getInt("LEAGUE_QUOTA_GK", 3)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_QUOTA_GK: %w", err)
	}
	quotaDF, err := getInt("LEAGUE_QUOTA_DF", 8)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_QUOTA_DF: %w", err)
	}
	quotaMF, err := getInt("LEAGUE_QUOTA_MF", 8)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_QUOTA_MF: %w", err)
	}
	quotaFW, err := getInt("LEAGUE_QUOTA_FW", 6)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_QUOTA_FW: %w", err)
	}
	targetGK, err := getFloat("LEAGUE_TARGET_GK", 0.10)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_TARGET_GK: %w", err)
	}
	targetDF, err := getFloat("LEAGUE_TARGET_DF", 0.20)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_TARGET_DF: %w", err)
	}
	targetMF, err := getFloat("LEAGUE_TARGET_MF", 0.30)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_TARGET_MF: %w", err)
	}
	targetFW, err := getFloat("LEAGUE_TARGET_FW", 0.40)
	if err != nil {
		return nil, fmt.Errorf("LEAGUE_TARGET_FW: %w", err)
	}

	cfg.League = LeagueConfig{
		TeamCount:       teamCount,
		InitialBudget:   budget,
		QuotaGoalkeeper: quotaGK,
		QuotaDefender:   quotaDF,
		QuotaMidfielder: quotaMF,
		QuotaAttacker:   quotaFW,
		AllowDuplicates: getBool("LEAGUE_ALLOW_DUPLICATES", false),
		TargetGK:        targetGK,
		TargetDF:        targetDF,
		TargetMF:        targetMF,
		TargetFW:        targetFW,
	}

	// ── Snapshot ──────────────────────────────────────────────────────────────
	maxOpen, err := getInt("SNAPSHOT_DB_MAX_OPEN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("SNAPSHOT_DB_MAX_OPEN_CONNS: %w", err)
	}
	maxIdle, err := getInt("SNAPSHOT_DB_MAX_IDLE_CONNS", 2)
	if err != nil {
		return nil, fmt.Errorf("SNAPSHOT_DB_MAX_IDLE_CONNS: %w", err)
	}
	cfg.Snapshot = SnapshotConfig{
		Path:           getEnv("SNAPSHOT_PATH", "data/lega.json"),
		BackupDir:      getEnv("SNAPSHOT_BACKUP_DIR", "data/backups"),
		BackupInterval: getDuration("SNAPSHOT_BACKUP_INTERVAL", 5*time.Minute),
		DSN:            getEnv("SNAPSHOT_DSN", ""),
		MaxOpenConns:   maxOpen,
		MaxIdleConns:   maxIdle,
	}

	// ── Catalog ───────────────────────────────────────────────────────────────
	cfg.Catalog = CatalogConfig{
		Path: getEnv("CATALOG_PATH", ""),
	}

	return cfg, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helper functions
// ──────────────────────────────────────────────────────────────────────────────

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	return n, nil
}

func getFloat(key string, defaultVal float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", v)
	}
	return f, nil
}

func getBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

// getDuration parses an env var as a Go duration string (e.g. "15m", "2s").
// Falls back to defaultVal if the variable is unset or empty.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
