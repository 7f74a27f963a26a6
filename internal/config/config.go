package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
)

const (
	TransportDirect = "direct"
	TransportHTTP   = "http"
	TransportKafka  = "kafka"
)

type Config struct {
	AppPort        string
	AllowedOrigins string

	CatalogDatabaseURL string

	StorefrontTransport string
	RPCBaseURL          string
	CarouselInterval    string
	RenderWait          string

	KafkaEnabled           string
	KafkaBrokers           string
	KafkaClientID          string
	KafkaGroupID           string
	KafkaInstanceID        string
	KafkaTopicPartitions   string
	KafkaReplicationFactor string
}

// Load reads the environment, after applying a .env file when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		glog.Warningf("failed to load .env: %v", err)
	}

	instanceID := os.Getenv("KAFKA_INSTANCE_ID")
	if instanceID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			instanceID = "unknown"
		} else {
			instanceID = hostname
		}
	}

	port := getEnv("APP_PORT", "8080")

	return &Config{
		AppPort:        port,
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		CatalogDatabaseURL: os.Getenv("CATALOG_DATABASE_URL"),

		StorefrontTransport: getEnv("STOREFRONT_TRANSPORT", TransportDirect),
		RPCBaseURL:          getEnv("RPC_BASE_URL", "http://localhost:"+port),
		CarouselInterval:    getEnv("CAROUSEL_INTERVAL", "5s"),
		RenderWait:          getEnv("RENDER_WAIT", "2s"),

		KafkaEnabled:           getEnv("KAFKA_ENABLED", "false"),
		KafkaBrokers:           getEnv("KAFKA_BROKERS", "kafka:9092"),
		KafkaClientID:          getEnv("KAFKA_CLIENT_ID", "catalog-service"),
		KafkaGroupID:           getEnv("KAFKA_GROUP_ID", "catalog-rpc"),
		KafkaInstanceID:        instanceID,
		KafkaTopicPartitions:   getEnv("KAFKA_TOPIC_PARTITIONS", "3"),
		KafkaReplicationFactor: getEnv("KAFKA_REPLICATION_FACTOR", "1"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) Origins() []string {
	return splitList(c.AllowedOrigins)
}

func (c *Config) Brokers() []string {
	return splitList(c.KafkaBrokers)
}

func (c *Config) KafkaOn() bool {
	on, err := strconv.ParseBool(c.KafkaEnabled)
	return err == nil && on
}

func (c *Config) CarouselPeriod() time.Duration {
	return parseDuration(c.CarouselInterval, 5*time.Second)
}

func (c *Config) RenderWaitDuration() time.Duration {
	return parseDuration(c.RenderWait, 2*time.Second)
}

func (c *Config) TopicPartitions() int {
	return parseInt(c.KafkaTopicPartitions, 3)
}

func (c *Config) ReplicationFactor() int16 {
	value := parseInt(c.KafkaReplicationFactor, 1)
	return int16(value)
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
