package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Mongo        MongoConfig
	OpenAI       OpenAIConfig
	Airtable     AirtableConfig
	ProfileStore ProfileStoreConfig
	Pipeline     PipelineConfig
	Logging      LoggingConfig
}

// MongoConfig holds connection parameters for the source database.
type MongoConfig struct {
	URI            string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DATABASE" envDefault:"leo"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
	QueryTimeout   time.Duration `env:"MONGO_QUERY_TIMEOUT" envDefault:"60s"`
}

// OpenAIConfig holds LLM client parameters for matching and message generation.
type OpenAIConfig struct {
	APIKey         string        `env:"OPENAI_API_KEY"`
	Model          string        `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	RequestTimeout time.Duration `env:"OPENAI_REQUEST_TIMEOUT" envDefault:"60s"`
	MaxRetries     int           `env:"OPENAI_MAX_RETRIES" envDefault:"3"`
	MaxTokens      int           `env:"OPENAI_MAX_TOKENS" envDefault:"4096"`
}

// AirtableConfig holds the sync target for operator-facing tables.
type AirtableConfig struct {
	APIKey          string        `env:"AIRTABLE_API_KEY"`
	BaseID          string        `env:"AIRTABLE_BASE_ID"`
	UsersTableID    string        `env:"AIRTABLE_USERS_TABLE_ID"`
	EventsTableID   string        `env:"AIRTABLE_EVENTS_TABLE_ID"`
	MessagesTableID string        `env:"AIRTABLE_MESSAGES_TABLE_ID"`
	RequestTimeout  time.Duration `env:"AIRTABLE_REQUEST_TIMEOUT" envDefault:"30s"`
}

// Enabled reports whether the Airtable sink is configured at all.
func (c AirtableConfig) Enabled() bool {
	return c.APIKey != "" && c.BaseID != ""
}

// ProfileStoreConfig holds the key-value store used to publish reduced
// profiles, matches and messages for downstream consumers.
type ProfileStoreConfig struct {
	Address  string `env:"PROFILE_STORE_ADDR" envDefault:"localhost:6379"`
	Password string `env:"PROFILE_STORE_PASSWORD"`
	Disabled bool   `env:"PROFILE_STORE_DISABLED" envDefault:"false"`
}

// PipelineConfig holds batch pipeline tunables.
type PipelineConfig struct {
	DataDir    string `env:"DATA_DIR" envDefault:"data"`
	ReportsDir string `env:"REPORTS_DIR" envDefault:"reports"`
	Workers    int    `env:"PIPELINE_WORKERS" envDefault:"4"`

	// CampaignLaunchYear separates users registered before the campaign era
	// (dead candidates) from users registered during it (campaign candidates).
	CampaignLaunchYear int `env:"CAMPAIGN_LAUNCH_YEAR" envDefault:"2025"`

	// MessageLinkBase is prepended to the event ID when appending the booking
	// link to generated messages.
	MessageLinkBase string `env:"MESSAGE_LINK_BASE" envDefault:"https://cucu.li/bookings"`

	QualityCheck bool `env:"MESSAGE_QUALITY_CHECK" envDefault:"false"`

	// MetricsAddr, when set, exposes Prometheus metrics on that address for
	// the duration of the run.
	MetricsAddr string `env:"METRICS_ADDR"`
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Format string     `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads configuration from the environment, merging a local .env file
// when one is present.
func Load() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Pipeline.Workers < 1 {
		cfg.Pipeline.Workers = 1
	}
	return cfg, nil
}
