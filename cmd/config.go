package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   slog.Level

	KafkaHost              string
	KafkaOrderChangedTopic string

	AMQPURL        string
	AMQPEmailQueue string
	MailTimezone   *time.Location

	DefaultPickup time.Duration

	HubSubscriberBuffer int
	HubEvictAfterDrops  int64
	HubEvictionSchedule string

	OverduePickupSchedule string
	OverduePickupGrace    time.Duration
}

// LoadConfig reads the configuration from the environment. Values from a .env file in
// the working directory are used for variables that are not set; the file is optional.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var problems []error

	config := Config{
		HTTPPort:               getenv("HTTP_PORT", "8080"),
		DBHost:                 getenv("DB_HOST", ""),
		DBPort:                 getenv("DB_PORT", "5432"),
		DBUser:                 getenv("DB_USER", ""),
		DBPassword:             getenv("DB_PASSWORD", ""),
		DBName:                 getenv("DB_NAME", ""),
		DBSslMode:              getenv("DB_SSLMODE", "disable"),
		KafkaHost:              getenv("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: getenv("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		AMQPURL:                getenv("AMQP_URL", ""),
		AMQPEmailQueue:         getenv("AMQP_EMAIL_QUEUE", "order-emails"),
		HubEvictionSchedule:    getenv("HUB_EVICTION_SCHEDULE", "*/15 * * * * *"),
		OverduePickupSchedule:  getenv("OVERDUE_PICKUP_SCHEDULE", "0 * * * * *"),
	}

	if err := config.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "INFO"))); err != nil {
		problems = append(problems, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	loc, err := time.LoadLocation(getenv("MAIL_TIMEZONE", "UTC"))
	if err != nil {
		problems = append(problems, fmt.Errorf("MAIL_TIMEZONE: %w", err))
	}
	config.MailTimezone = loc

	pickupMinutes, err := getInt("ORDER_DEFAULT_PICKUP_MINUTES", 20)
	problems = append(problems, err)
	config.DefaultPickup = time.Duration(pickupMinutes) * time.Minute

	graceMinutes, err := getInt("OVERDUE_PICKUP_GRACE_MINUTES", 10)
	problems = append(problems, err)
	config.OverduePickupGrace = time.Duration(graceMinutes) * time.Minute

	config.HubSubscriberBuffer, err = getInt("HUB_SUBSCRIBER_BUFFER", 64)
	problems = append(problems, err)

	drops, err := getInt("HUB_EVICT_AFTER_DROPS", 32)
	problems = append(problems, err)
	config.HubEvictAfterDrops = int64(drops)

	if err = errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return config, config.Validate()
}

// Validate reports every missing database setting at once.
func (c Config) Validate() error {
	var problems []error
	for _, setting := range []struct{ name, value string }{
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
	} {
		if setting.value == "" {
			problems = append(problems, fmt.Errorf("%s is required", setting.name))
		}
	}
	if c.DefaultPickup <= 0 {
		problems = append(problems, errors.New("ORDER_DEFAULT_PICKUP_MINUTES must be positive"))
	}
	return errors.Join(problems...)
}

// DatabaseURL returns the postgres connection URL used by both gorm and migrations.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) (int, error) {
	raw := getenv(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
