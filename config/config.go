// Package config loads the agent configuration from the environment,
// optionally seeded from a dotenv-style config file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Endpoint is a host:port pair for a TCP-probed service.
type Endpoint struct {
	Host string `env:"HOST,required"`
	Port int    `env:"PORT,required"`
}

// Addr returns the endpoint in host:port form.
func (e Endpoint) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// SMTP holds outbound mail settings.
type SMTP struct {
	Server    string   `env:"SERVER,required"`
	Port      int      `env:"PORT,required"`
	UseTLS    bool     `env:"USE_TLS" envDefault:"true"` // true = STARTTLS, false = implicit TLS
	Username  string   `env:"USERNAME"`
	Password  string   `env:"PASSWORD,unset"`
	FromEmail string   `env:"FROM_EMAIL,required"`
	ToEmails  []string `env:"TO_EMAILS,required" envSeparator:","`
}

type Config struct {
	Zookeeper    Endpoint `envPrefix:"ZOOKEEPER_"`
	KafkaBroker  Endpoint `envPrefix:"KAFKA_BROKER_"`
	KafkaConnect Endpoint `envPrefix:"KAFKA_CONNECT_"`
	SMTP         SMTP     `envPrefix:"SMTP_"`

	// Mode selects between a single check run ("once") and a periodic
	// daemon with an HTTP status surface ("serve").
	Mode          string        `env:"MODE" envDefault:"once"`
	CheckInterval time.Duration `env:"CHECK_INTERVAL" envDefault:"60s"`
	Port          int           `env:"PORT" envDefault:"8080"`

	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT" envDefault:"5s"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"5s"`

	// DeepBrokerCheck requests cluster metadata from the broker after the
	// TCP probe succeeds, catching brokers that accept connections but
	// cannot serve metadata.
	DeepBrokerCheck bool `env:"DEEP_BROKER_CHECK" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile   string `env:"LOG_FILE"`

	// MetricsTextfile, when set in once mode, receives the run's metrics
	// in Prometheus textfile-collector format.
	MetricsTextfile string `env:"METRICS_TEXTFILE"`
}

// New parses the configuration from the environment. When file is non-empty
// it is loaded first as a dotenv document; values already present in the
// environment take precedence.
func New(file string) (Config, error) {
	if file != "" {
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", file, err)
		}
	}

	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	if c.Mode != "once" && c.Mode != "serve" {
		return Config{}, fmt.Errorf("invalid MODE %q: must be \"once\" or \"serve\"", c.Mode)
	}

	return c, nil
}
