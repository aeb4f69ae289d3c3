package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL        = "http://localhost:8080/api"
	DefaultHTTPTimeout   = 10 * time.Second
	DefaultWatchInterval = 15 * time.Minute
	DefaultTimerMinutes  = 60
)

// Feed is a backend collection whose size is tracked for new-content notices.
type Feed struct {
	Key   string `yaml:"key"`
	Path  string `yaml:"path"`
	Label string `yaml:"label"`
}

type Config struct {
	DataDir       string        `yaml:"-"`
	DBPath        string        `yaml:"db_path"`
	APIURL        string        `yaml:"api_url"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	LogLevel      string        `yaml:"log_level"`
	LogJSON       bool          `yaml:"log_json"`
	LogFile       string        `yaml:"log_file"`
	WatchInterval time.Duration `yaml:"watch_interval"`
	Feeds         []Feed        `yaml:"feeds"`
	TimerMinutes  int           `yaml:"timer_minutes"`
	CaptureCmd    string        `yaml:"capture_command"`
	CaptureMIME   string        `yaml:"capture_mime"`
	RecordingsDir string        `yaml:"recordings_dir"`
	ExercisesDir  string        `yaml:"exercises_dir"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, ".studyhub", "studyhub.db"),
		APIURL:        DefaultAPIURL,
		HTTPTimeout:   DefaultHTTPTimeout,
		LogLevel:      "info",
		LogFile:       filepath.Join(dataDir, ".studyhub", "studyhub.log"),
		WatchInterval: DefaultWatchInterval,
		Feeds:         DefaultFeeds(),
		TimerMinutes:  DefaultTimerMinutes,
		CaptureCmd:    "arecord -q -f cd -t wav",
		CaptureMIME:   "audio/wav",
		RecordingsDir: filepath.Join(dataDir, ".studyhub", "recordings"),
		ExercisesDir:  filepath.Join(dataDir, "exercises"),
	}, nil
}

func DefaultFeeds() []Feed {
	return []Feed{
		{Key: "writings", Path: "/writings", Label: "writing tasks"},
		{Key: "books", Path: "/books", Label: "books"},
		{Key: "mock-tests", Path: "/mock-tests", Label: "mock tests"},
		{Key: "readings-academic", Path: "/readings/type/ACADEMIC", Label: "academic readings"},
	}
}

// Load builds the config for dataDir, layering the YAML file, a .env file in
// dataDir and the process environment over the defaults. An empty path means
// <dataDir>/studyhub.yaml, which may be absent.
func Load(dataDir, path string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dataDir, "studyhub.yaml")
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	envPath := filepath.Join(dataDir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := os.Getenv("STUDYHUB_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("STUDYHUB_CAPTURE_COMMAND"); v != "" {
		c.CaptureCmd = v
	}
	if v := os.Getenv("STUDYHUB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("STUDYHUB_LOG_JSON"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse STUDYHUB_LOG_JSON: %w", err)
		}
		c.LogJSON = parsed
	}
	if v := os.Getenv("STUDYHUB_HTTP_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse STUDYHUB_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = parsed
	}
	if v := os.Getenv("STUDYHUB_WATCH_INTERVAL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse STUDYHUB_WATCH_INTERVAL: %w", err)
		}
		c.WatchInterval = parsed
	}
	return nil
}
