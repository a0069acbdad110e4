package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CONTACT_EXTRACT_OUTPUT_DIR.
const EnvPrefix = "CONTACT_EXTRACT"

// Output formats.
const (
	FormatCSV       = "csv"
	FormatXLSX      = "xlsx"
	FormatSQL       = "sql"
	FormatKafka     = "kafka"
	FormatCouchbase = "couchbase"
)

// Config holds top-level application configuration groups.
type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Input     InputConfig     `mapstructure:"input"`
	Output    OutputConfig    `mapstructure:"output"`
	SQL       SQLConfig       `mapstructure:"sql"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Couchbase CouchbaseConfig `mapstructure:"couchbase"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServiceConfig defines basic runtime context of the tool.
type ServiceConfig struct {
	Name        string        `mapstructure:"name"`
	Version     string        `mapstructure:"version"`
	Environment string        `mapstructure:"environment"`
	Timeout     time.Duration `mapstructure:"timeout"` // whole run; zero means no deadline
}

// InputConfig selects the directory text to read.
type InputConfig struct {
	Path     string `mapstructure:"path"`
	FileType string `mapstructure:"file_type"` // "auto", "txt" or "pdf"
}

// OutputConfig selects the sinks and where file sinks write.
type OutputConfig struct {
	Formats           []string `mapstructure:"formats"`
	Dir               string   `mapstructure:"dir"`
	PeopleFile        string   `mapstructure:"people_file"`
	OrganizationsFile string   `mapstructure:"organizations_file"`
}

// SQLConfig groups settings for the database sink.
type SQLConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "pgx"
	DSN    string `mapstructure:"dsn"`
}

// KafkaConfig groups settings necessary to connect to Kafka.
type KafkaConfig struct {
	Brokers            []string      `mapstructure:"brokers"`
	ClientID           string        `mapstructure:"client_id"`
	PeopleTopic        string        `mapstructure:"people_topic"`
	OrganizationsTopic string        `mapstructure:"organizations_topic"`
	RetryAttempts      int           `mapstructure:"retry_attempts"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// CouchbaseConfig groups settings necessary to connect to Couchbase.
type CouchbaseConfig struct {
	ConnectionString string        `mapstructure:"connection_string"`
	Username         string        `mapstructure:"username"`
	Password         string        `mapstructure:"password"`
	Bucket           string        `mapstructure:"bucket"`
	Scope            string        `mapstructure:"scope"`
	Collection       string        `mapstructure:"collection"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// LoggingConfig controls application logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // "info", "debug", etc.
	Format string `mapstructure:"format"` // "json" or "text"
}

// Load reads configuration from defaults, an optional config file and
// environment variables. An empty configFile searches the default paths and
// tolerates a missing file; an explicit one must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/contactextract")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		logrus.Debug("No config file found, using defaults and environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Output.Formats = normalizeFormats(cfg.Output.Formats)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults reproduces the plain extractor: read civics.txt, write the two
// CSV files into the working directory, touch no network.
func setDefaults(v *viper.Viper) {
	v.SetDefault("service.name", "contactextract")
	v.SetDefault("service.version", "1.0.0")
	v.SetDefault("service.environment", "development")
	v.SetDefault("service.timeout", "0s")

	v.SetDefault("input.path", "civics.txt")
	v.SetDefault("input.file_type", "auto")

	v.SetDefault("output.formats", []string{FormatCSV})
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.people_file", "contacts_export")
	v.SetDefault("output.organizations_file", "orgs_export")

	v.SetDefault("sql.driver", "sqlite")
	v.SetDefault("sql.dsn", "contacts.db")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.client_id", "contactextract")
	v.SetDefault("kafka.people_topic", "contacts.people")
	v.SetDefault("kafka.organizations_topic", "contacts.organizations")
	v.SetDefault("kafka.retry_attempts", 3)
	v.SetDefault("kafka.timeout", "10s")

	v.SetDefault("couchbase.connection_string", "couchbase://localhost")
	v.SetDefault("couchbase.username", "Administrator")
	v.SetDefault("couchbase.password", "password")
	v.SetDefault("couchbase.bucket", "contacts")
	v.SetDefault("couchbase.scope", "_default")
	v.SetDefault("couchbase.collection", "_default")
	v.SetDefault("couchbase.timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// normalizeFormats lower-cases formats and accepts a single comma separated
// value, as an environment override delivers it.
func normalizeFormats(in []string) []string {
	var out []string
	for _, f := range in {
		for _, part := range strings.Split(f, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate ensures the selected sinks have what they need.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Path) == "" {
		return fmt.Errorf("input path cannot be empty")
	}
	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("at least one output format is required")
	}
	for _, f := range c.Output.Formats {
		switch f {
		case FormatCSV, FormatXLSX:
		case FormatSQL:
			if c.SQL.Driver != "sqlite" && c.SQL.Driver != "pgx" {
				return fmt.Errorf("sql driver must be sqlite or pgx, got %q", c.SQL.Driver)
			}
			if c.SQL.DSN == "" {
				return fmt.Errorf("sql dsn cannot be empty")
			}
		case FormatKafka:
			if len(c.Kafka.Brokers) == 0 {
				return fmt.Errorf("kafka brokers cannot be empty")
			}
			if c.Kafka.PeopleTopic == "" || c.Kafka.OrganizationsTopic == "" {
				return fmt.Errorf("kafka topics cannot be empty")
			}
		case FormatCouchbase:
			if c.Couchbase.ConnectionString == "" {
				return fmt.Errorf("couchbase connection string cannot be empty")
			}
			if c.Couchbase.Bucket == "" {
				return fmt.Errorf("couchbase bucket cannot be empty")
			}
		default:
			return fmt.Errorf("unknown output format %q", f)
		}
	}
	return nil
}
