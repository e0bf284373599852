package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Store       StoreConfig
	Writeback   WritebackConfig
	Assistant   AssistantConfig
	Pomodoro    PomodoroConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxConn      int
}

// StoreConfig selects the key-value backend. "memory" keeps everything
// in-process, "bolt" persists to a local file, "redis" shares state across
// processes.
type StoreConfig struct {
	Backend       string
	BoltPath      string
	RedisURL      string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

type WritebackConfig struct {
	Path         string
	SyncInterval time.Duration
	MaxRetry     int
}

type AssistantConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type PomodoroConfig struct {
	FocusDuration time.Duration
	BreakDuration time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "studytrack"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:      getInt("SERVER_MAX_CONN", 0),
		},
		Store: StoreConfig{
			Backend:       getString("STORE_BACKEND", "bolt"),
			BoltPath:      getString("BOLTDB_PATH", "./data/studytrack.db"),
			RedisURL:      getString("REDIS_URL", "redis://localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getInt("REDIS_DB", 0),
			RedisPrefix:   getString("REDIS_PREFIX", "studytrack:"),
		},
		Writeback: WritebackConfig{
			Path:         getString("WRITEBACK_PATH", "./data/writeback.db"),
			SyncInterval: getDuration("SYNC_INTERVAL_SECONDS", 30*time.Second),
			MaxRetry:     getInt("MAX_RETRY_ATTEMPTS", 5),
		},
		Assistant: AssistantConfig{
			Endpoint: os.Getenv("ASSISTANT_ENDPOINT"),
			APIKey:   os.Getenv("ASSISTANT_API_KEY"),
			Timeout:  getDuration("ASSISTANT_TIMEOUT", 30*time.Second),
		},
		Pomodoro: PomodoroConfig{
			FocusDuration: getDuration("POMODORO_FOCUS_MINUTES", 25*time.Minute),
			BreakDuration: getDuration("POMODORO_BREAK_MINUTES", 5*time.Minute),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
