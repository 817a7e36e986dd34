package config

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSources are the public lists aggregated when no sources are configured.
var DefaultSources = []string{
	"https://tzdr.com/iptv.txt",
	"https://live.kilvn.com/iptv.m3u",
	"https://cdn.jsdelivr.net/gh/Guovin/iptv-api@gd/output/result.m3u",
	"https://gh-proxy.com/raw.githubusercontent.com/vbskycn/iptv/refs/heads/master/tv/iptv4.m3u",
	"http://175.178.251.183:6689/live.m3u",
	"https://m3u.ibert.me/ycl_iptv.m3u",
}

// Config holds the complete application configuration
type Config struct {
	// Source list addresses, processed in order
	Sources []string `yaml:"sources"`

	// Probe settings
	Probe struct {
		Timeout       time.Duration `yaml:"timeout"`
		MaxParallel   int           `yaml:"max_parallel"`
		RatePerSecond float64       `yaml:"rate_per_second"`
		UserAgent     string        `yaml:"user_agent"`
	} `yaml:"probe"`

	// Output playlist
	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`

	// Reference lists
	Reference struct {
		NationalFile  string   `yaml:"national_file"`
		RegionalFiles []string `yaml:"regional_files"`
		RegionalDir   string   `yaml:"regional_dir"`
	} `yaml:"reference"`

	// Classification and presentation
	Classify struct {
		SatelliteMarker string `yaml:"satellite_marker"`
		LogoBaseURL     string `yaml:"logo_base_url"`
		LogoSuffix      string `yaml:"logo_suffix"`
		Labels          struct {
			National  string `yaml:"national"`
			Satellite string `yaml:"satellite"`
			Other     string `yaml:"other"`
		} `yaml:"labels"`
	} `yaml:"classify"`

	// Source download settings
	Fetch struct {
		Timeout         time.Duration `yaml:"timeout"`
		UserAgent       string        `yaml:"user_agent"`
		FallbackCharset string        `yaml:"fallback_charset"`
		CachePath       string        `yaml:"cache_path"`
		CacheTTL        time.Duration `yaml:"cache_ttl"`
	} `yaml:"fetch"`

	// HTTP server settings (serve mode)
	HTTP struct {
		Address         string        `yaml:"address"`
		Port            string        `yaml:"port"`
		RefreshInterval time.Duration `yaml:"refresh_interval"`
	} `yaml:"http"`

	LogLevel string `yaml:"log_level"`
}

var validLogLevels = map[string]slog.Level{
	"DEBUG": slog.LevelDebug,
	"INFO":  slog.LevelInfo,
	"WARN":  slog.LevelWarn,
	"ERROR": slog.LevelError,
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	var errors []string

	if len(c.Sources) == 0 {
		errors = append(errors, "At least one source is required")
	}
	for i, src := range c.Sources {
		if err := validateSourceURL(src); err != nil {
			errors = append(errors, fmt.Sprintf("Source %d: %v", i, err))
		}
	}

	// Probe settings
	if c.Probe.Timeout <= 0 {
		errors = append(errors, "Probe timeout must be positive")
	}
	if c.Probe.MaxParallel <= 0 {
		errors = append(errors, "Probe max parallel must be positive")
	}
	if c.Probe.RatePerSecond < 0 {
		errors = append(errors, "Probe rate per second cannot be negative")
	}

	if c.Output.Path == "" {
		errors = append(errors, "Output path is required")
	}

	// Labels become group titles
	if c.Classify.Labels.National == "" || c.Classify.Labels.Satellite == "" || c.Classify.Labels.Other == "" {
		errors = append(errors, "Classify labels cannot be empty")
	}

	// Fetch settings
	if c.Fetch.Timeout <= 0 {
		errors = append(errors, "Fetch timeout must be positive")
	}
	if c.Fetch.CacheTTL < 0 {
		errors = append(errors, "Fetch cache TTL cannot be negative")
	}
	if c.Fetch.CachePath != "" && c.Fetch.CacheTTL == 0 {
		errors = append(errors, "Fetch cache TTL is required when a cache path is set")
	}

	// HTTP settings
	if c.HTTP.Address == "" {
		errors = append(errors, "HTTP address is required")
	}
	if c.HTTP.Port == "" {
		errors = append(errors, "HTTP port is required")
	}
	if c.HTTP.RefreshInterval <= 0 {
		errors = append(errors, "HTTP refresh interval must be positive")
	}

	if _, ok := validLogLevels[c.LogLevel]; !ok {
		errors = append(errors, "LogLevel must be one of: DEBUG, INFO, WARN, ERROR")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// SlogLevel returns the slog level for LogLevel, INFO when unknown.
func (c *Config) SlogLevel() slog.Level {
	if lvl, ok := validLogLevels[c.LogLevel]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.HTTP.Address + ":" + c.HTTP.Port
}

// Default returns a Config with sensible default values
func Default() *Config {
	cfg := &Config{}

	cfg.Sources = append([]string(nil), DefaultSources...)

	// Probe defaults
	cfg.Probe.Timeout = 10 * time.Second
	cfg.Probe.MaxParallel = 30
	cfg.Probe.RatePerSecond = 0 // unlimited

	cfg.Output.Path = "best_sorted.m3u"

	// Reference defaults
	cfg.Reference.NationalFile = "IPTV/CCTV.txt"
	cfg.Reference.RegionalDir = "IPTV"

	// Classify defaults
	cfg.Classify.SatelliteMarker = "卫视"
	cfg.Classify.LogoBaseURL = "https://live.fanmingming.cn/tv/"
	cfg.Classify.LogoSuffix = ".png"
	cfg.Classify.Labels.National = "央视频道"
	cfg.Classify.Labels.Satellite = "卫视频道"
	cfg.Classify.Labels.Other = "其他频道"

	// Fetch defaults
	cfg.Fetch.Timeout = 30 * time.Second
	cfg.Fetch.FallbackCharset = "gbk"
	cfg.Fetch.CachePath = "" // no cache
	cfg.Fetch.CacheTTL = 0

	// HTTP defaults
	cfg.HTTP.Address = "127.0.0.1"
	cfg.HTTP.Port = "8080"
	cfg.HTTP.RefreshInterval = 6 * time.Hour

	cfg.LogLevel = "INFO"

	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.LogLevel = normalizeLogLevel(cfg.LogLevel)

	return cfg, nil
}

// Load loads configuration from path, or from CONFIG_FILE when path is empty,
// and applies environment variable overrides. A missing file means defaults.
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		configPath = os.Getenv("CONFIG_FILE")
	}
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); err == nil {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else if path != "" {
		// An explicitly requested file must exist
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	} else {
		cfg = Default()
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("OUTPUT_PATH"); val != "" {
		cfg.Output.Path = val
	}
	if val := os.Getenv("SOURCES"); val != "" {
		cfg.Sources = splitList(val)
	}

	// Probe settings
	if val := os.Getenv("PROBE_TIMEOUT"); val != "" {
		duration, err := parsePositiveDuration("PROBE_TIMEOUT", val)
		if err != nil {
			return err
		}
		cfg.Probe.Timeout = duration
	}
	if val := os.Getenv("PROBE_MAX_PARALLEL"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid PROBE_MAX_PARALLEL: %w", err)
		}
		if n <= 0 {
			return fmt.Errorf("PROBE_MAX_PARALLEL must be positive")
		}
		cfg.Probe.MaxParallel = n
	}
	if val := os.Getenv("PROBE_RATE_PER_SECOND"); val != "" {
		rate, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid PROBE_RATE_PER_SECOND: %w", err)
		}
		if rate < 0 {
			return fmt.Errorf("PROBE_RATE_PER_SECOND cannot be negative")
		}
		cfg.Probe.RatePerSecond = rate
	}

	// Reference settings
	if val := os.Getenv("REFERENCE_NATIONAL_FILE"); val != "" {
		cfg.Reference.NationalFile = val
	}
	if val := os.Getenv("REFERENCE_REGIONAL_DIR"); val != "" {
		cfg.Reference.RegionalDir = val
	}

	// Fetch settings
	if val := os.Getenv("FETCH_CACHE_PATH"); val != "" {
		cfg.Fetch.CachePath = val
	}
	if val := os.Getenv("FETCH_CACHE_TTL"); val != "" {
		duration, err := parsePositiveDuration("FETCH_CACHE_TTL", val)
		if err != nil {
			return err
		}
		cfg.Fetch.CacheTTL = duration
	}

	// HTTP settings
	if val := os.Getenv("HTTP_ADDRESS"); val != "" {
		cfg.HTTP.Address = val
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		cfg.HTTP.Port = val
	}
	if val := os.Getenv("REFRESH_INTERVAL"); val != "" {
		duration, err := parsePositiveDuration("REFRESH_INTERVAL", val)
		if err != nil {
			return err
		}
		cfg.HTTP.RefreshInterval = duration
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		level := normalizeLogLevel(val)
		if _, ok := validLogLevels[level]; !ok {
			return fmt.Errorf("invalid LOG_LEVEL %q (expected DEBUG, INFO, WARN or ERROR)", val)
		}
		cfg.LogLevel = level
	}

	return nil
}

// normalizeLogLevel accepts level names in any case.
func normalizeLogLevel(level string) string {
	return strings.ToUpper(strings.TrimSpace(level))
}

func parsePositiveDuration(name, val string) (time.Duration, error) {
	duration, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format (expected duration like '10s', '1h'): %w", name, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("%s must be positive, got: %s", name, val)
	}
	return duration, nil
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validateSourceURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// Print writes the effective configuration to w
func (c *Config) Print(w io.Writer) {
	fmt.Fprintf(w, "sources: %d\n", len(c.Sources))
	for _, src := range c.Sources {
		fmt.Fprintf(w, "  - %s\n", src)
	}
	fmt.Fprintf(w, "probeTimeout: %v\n", c.Probe.Timeout)
	fmt.Fprintf(w, "probeMaxParallel: %v\n", c.Probe.MaxParallel)
	fmt.Fprintf(w, "probeRatePerSecond: %v\n", c.Probe.RatePerSecond)
	fmt.Fprintf(w, "outputPath: %v\n", c.Output.Path)
	fmt.Fprintf(w, "nationalFile: %v\n", c.Reference.NationalFile)
	fmt.Fprintf(w, "regionalDir: %v\n", c.Reference.RegionalDir)
	fmt.Fprintf(w, "regionalFiles: %d\n", len(c.Reference.RegionalFiles))
	fmt.Fprintf(w, "fetchTimeout: %v\n", c.Fetch.Timeout)
	fmt.Fprintf(w, "fetchCachePath: %v\n", c.Fetch.CachePath)
	fmt.Fprintf(w, "fetchCacheTTL: %v\n", c.Fetch.CacheTTL)
	fmt.Fprintf(w, "httpAddress: %v\n", c.HTTP.Address)
	fmt.Fprintf(w, "httpPort: %v\n", c.HTTP.Port)
	fmt.Fprintf(w, "refreshInterval: %v\n", c.HTTP.RefreshInterval)
	fmt.Fprintf(w, "logLevel: %v\n", c.LogLevel)
}
