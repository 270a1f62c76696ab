// config.go - Handles configuration for the project

package config // Declares the package name

import ( // Import required packages
	"fmt"           // Error wrapping
	"os"            // For reading environment variables
	"path/filepath" // Cleaning the config file path
	"strconv"       // Parsing numeric settings
	"time"          // Token lifetime

	"github.com/joho/godotenv" // Loads .env files into the environment
	"gopkg.in/yaml.v3"         // Optional config file
)

const defaultAdminEmail = "admin@example.com" // Admin identity when none is configured

type Config struct { // Config struct holds all configuration values
	Env          string        `yaml:"env"`            // local, dev or prod
	Port         string        `yaml:"port"`           // HTTP listen port
	DBPath       string        `yaml:"db_path"`        // Path to the SQLite database file
	JWTSecret    string        `yaml:"jwt_secret"`     // Secret key for JWT signing
	TokenTTL     time.Duration `yaml:"token_ttl"`      // Lifetime of issued tokens
	AdminEmail   string        `yaml:"admin_email"`    // The single admin identity
	AdminPass    string        `yaml:"admin_password"` // When set, the admin account is created at startup
	AdminName    string        `yaml:"admin_name"`     // Display name of the bootstrap admin
	MQTTBroker   string        `yaml:"mqtt_broker"`    // Address of the MQTT broker (empty disables MQTT)
	MQTTClientID string        `yaml:"mqtt_client_id"` // MQTT client identifier
	MQTTTopic    string        `yaml:"mqtt_topic"`     // Topic prefix for task events
	EventBuffer  int           `yaml:"event_buffer"`   // Capacity of the event queue
	LogLevel     string        `yaml:"log_level"`      // Overrides the per-env log level
}

// Load reads config from an optional YAML file, then environment variables, then defaults.
// Environment variables always win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional; missing file is fine

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", durationOr(cfg.TokenTTL, "72h")))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	buffer, err := strconv.Atoi(getEnv("EVENT_BUFFER", intOr(cfg.EventBuffer, "100")))
	if err != nil || buffer <= 0 {
		return nil, fmt.Errorf("invalid EVENT_BUFFER: must be a positive integer")
	}

	return &Config{
		Env:          getEnv("APP_ENV", stringOr(cfg.Env, "local")),
		Port:         getEnv("PORT", stringOr(cfg.Port, "8080")),
		DBPath:       getEnv("DB_PATH", stringOr(cfg.DBPath, "data.db")),
		JWTSecret:    getEnv("JWT_SECRET", stringOr(cfg.JWTSecret, "supersecret")),
		TokenTTL:     ttl,
		AdminEmail:   getEnv("ADMIN_EMAIL", stringOr(cfg.AdminEmail, defaultAdminEmail)),
		AdminPass:    getEnv("ADMIN_PASSWORD", cfg.AdminPass),
		AdminName:    getEnv("ADMIN_NAME", stringOr(cfg.AdminName, "Administrator")),
		MQTTBroker:   getEnv("MQTT_BROKER", cfg.MQTTBroker),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", stringOr(cfg.MQTTClientID, "go-task-backend")),
		MQTTTopic:    getEnv("MQTT_TOPIC", stringOr(cfg.MQTTTopic, "tasks/events")),
		EventBuffer:  buffer,
		LogLevel:     getEnv("LOG_LEVEL", cfg.LogLevel),
	}, nil
}

// MustLoad is Load for program entry points.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string { // Helper to get env var or fallback
	if value := os.Getenv(key); value != "" { // If env var is set, use it
		return value
	}
	return fallback // Otherwise, use fallback value
}

func stringOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func durationOr(v time.Duration, fallback string) string {
	if v > 0 {
		return v.String()
	}
	return fallback
}

func intOr(v int, fallback string) string {
	if v > 0 {
		return strconv.Itoa(v)
	}
	return fallback
}
