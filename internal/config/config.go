package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds the portal's runtime configuration.
type Config struct {
	App   AppConfig
	Mongo MongoConfig
	MQTT  MQTTConfig
}

// AppConfig holds HTTP server configuration.
type AppConfig struct {
	Port     int
	LogLevel string
}

// MongoConfig holds MongoDB connection configuration.
type MongoConfig struct {
	URI      string
	Database string
}

// MQTTConfig holds the optional odometer feed configuration. Ingest is
// disabled when Broker is empty.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
}

// Load reads configuration from the environment, with .env as a fallback
// for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment only")
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		port = 8080
	}

	return &Config{
		App: AppConfig{
			Port:     port,
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "asset_portal"),
		},
		MQTT: MQTTConfig{
			Broker:   getEnv("MQTT_BROKER", ""),
			ClientID: getEnv("MQTT_CLIENT_ID", "asset-portal"),
			Topic:    getEnv("MQTT_TOPIC", "fleet/+/odometer"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
