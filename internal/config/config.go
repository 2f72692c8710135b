package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App          AppSettings       `yaml:"app"`
	Server       ServerSettings    `yaml:"server"`
	Logging      LoggingSettings   `yaml:"logging"`
	Source       SourceSettings    `yaml:"source"`
	Detection    DetectionSettings `yaml:"detection"`
	Operator     OperatorSettings  `yaml:"operator"`
	PasswordHash HashSettings      `yaml:"password_hash"`
	Export       ExportSettings    `yaml:"export"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV" validate:"oneof=development testing production"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=trace debug info warn error fatal panic"`
	Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json console"`
}

// SourceSettings describes the CSV source and how it is read and memoized
type SourceSettings struct {
	Path        string        `yaml:"path" env:"SOURCE_PATH" validate:"required"`
	SegmentSize int           `yaml:"segment_size" env:"SOURCE_SEGMENT_SIZE" validate:"min=1"`
	CacheTTL    time.Duration `yaml:"cache_ttl" env:"SOURCE_CACHE_TTL"`
	CacheSize   int           `yaml:"cache_size" env:"SOURCE_CACHE_SIZE" validate:"min=1"`
}

// DetectionSettings contains the word lists and thresholds of the enrichment
// pipeline. Empty lists select the built-in lists.
type DetectionSettings struct {
	Vocabulary             []string `yaml:"vocabulary" env:"DETECTION_VOCABULARY"`
	PersonalCues           []string `yaml:"personal_cues" env:"DETECTION_PERSONAL_CUES"`
	CardCues               []string `yaml:"card_cues" env:"DETECTION_CARD_CUES"`
	PositiveWords          []string `yaml:"positive_words" env:"DETECTION_POSITIVE_WORDS"`
	NegativeWords          []string `yaml:"negative_words" env:"DETECTION_NEGATIVE_WORDS"`
	LargeSpendingThreshold string   `yaml:"large_spending_threshold" env:"DETECTION_LARGE_SPENDING_THRESHOLD" validate:"numeric"`
	Workers                int      `yaml:"workers" env:"DETECTION_WORKERS" validate:"min=0"`
}

// OperatorSettings controls who may see unmasked messages.
// PassphraseHash and PassphraseSalt are base64 Argon2id values; when they are
// empty, raw display is refused unless AllowUnauthenticatedRaw is set.
type OperatorSettings struct {
	PassphraseHash          string        `yaml:"passphrase_hash" env:"OPERATOR_PASSPHRASE_HASH" validate:"omitempty,base64"`
	PassphraseSalt          string        `yaml:"passphrase_salt" env:"OPERATOR_PASSPHRASE_SALT" validate:"omitempty,base64"`
	TokenSecret             string        `yaml:"token_secret" env:"OPERATOR_TOKEN_SECRET"`
	TokenExpiry             time.Duration `yaml:"token_expiry" env:"OPERATOR_TOKEN_EXPIRY"`
	Issuer                  string        `yaml:"issuer" env:"OPERATOR_TOKEN_ISSUER"`
	AllowUnauthenticatedRaw bool          `yaml:"allow_unauthenticated_raw" env:"OPERATOR_ALLOW_UNAUTHENTICATED_RAW"`
	AttemptsPerMinute       int           `yaml:"attempts_per_minute" env:"OPERATOR_ATTEMPTS_PER_MINUTE" validate:"min=0"`
	AttemptBurst            int           `yaml:"attempt_burst" env:"OPERATOR_ATTEMPT_BURST" validate:"min=0"`
}

// HashSettings contains password hashing settings
type HashSettings struct {
	Memory      uint32 `yaml:"memory" env:"HASH_MEMORY"`
	Iterations  uint32 `yaml:"iterations" env:"HASH_ITERATIONS"`
	Parallelism uint8  `yaml:"parallelism" env:"HASH_PARALLELISM"`
	SaltLength  uint32 `yaml:"salt_length" env:"HASH_SALT_LENGTH"`
	KeyLength   uint32 `yaml:"key_length" env:"HASH_KEY_LENGTH"`
}

// ExportSettings contains CSV download settings
type ExportSettings struct {
	FileName     string `yaml:"file_name" env:"EXPORT_FILE_NAME"`
	DemoFileName string `yaml:"demo_file_name" env:"EXPORT_DEMO_FILE_NAME"`
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

// RevealEnabled reports whether an operator passphrase has been configured.
func (ops *OperatorSettings) RevealEnabled() bool {
	return ops.PassphraseHash != "" && ops.PassphraseSalt != ""
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables.
// A missing config file is not an error; defaults and the environment apply.
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		err = yaml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	// Set defaults for missing values
	setDefaults(config)

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Log the configuration (but hide sensitive values)
	logConfig(config)

	cfg = config
	return config, nil
}

// Get returns the current configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("Configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	config.App.Environment = strings.ToLower(config.App.Environment)
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = constants.DefaultAppVersion
	}

	// Server defaults
	if config.Server.Host == "" {
		config.Server.Host = constants.DefaultServerHost
	}
	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	config.Logging.Level = strings.ToLower(config.Logging.Level)
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// Source defaults
	if config.Source.Path == "" {
		config.Source.Path = constants.DefaultSourcePath
	}
	config.Source.Path = filepath.Clean(config.Source.Path)
	if config.Source.SegmentSize == 0 {
		config.Source.SegmentSize = constants.DefaultSegmentSize
	}
	if config.Source.CacheTTL == 0 {
		config.Source.CacheTTL = constants.DefaultCacheTTL
	}
	if config.Source.CacheSize == 0 {
		config.Source.CacheSize = constants.DefaultCacheSize
	}

	// Detection defaults; word lists stay empty and resolve to the built-in lists
	if config.Detection.LargeSpendingThreshold == "" {
		config.Detection.LargeSpendingThreshold = constants.DefaultLargeSpendingThreshold
	}

	// Operator defaults
	if config.Operator.TokenExpiry == 0 {
		config.Operator.TokenExpiry = constants.DefaultRevealTokenExpiry
	}
	if config.Operator.Issuer == "" {
		config.Operator.Issuer = constants.DefaultJWTIssuer
	}
	if config.Operator.AttemptsPerMinute == 0 {
		config.Operator.AttemptsPerMinute = constants.DefaultAuthAttemptsPerMinute
	}
	if config.Operator.AttemptBurst == 0 {
		config.Operator.AttemptBurst = constants.DefaultAuthAttemptBurst
	}

	// Password hash defaults
	if config.PasswordHash.Memory == 0 {
		config.PasswordHash.Memory = constants.DefaultPasswordHashMemory
	}
	if config.PasswordHash.Iterations == 0 {
		config.PasswordHash.Iterations = constants.DefaultPasswordHashIterations
	}
	if config.PasswordHash.Parallelism == 0 {
		config.PasswordHash.Parallelism = constants.DefaultPasswordHashParallelism
	}
	if config.PasswordHash.SaltLength == 0 {
		config.PasswordHash.SaltLength = constants.DefaultPasswordHashSaltLength
	}
	if config.PasswordHash.KeyLength == 0 {
		config.PasswordHash.KeyLength = constants.DefaultPasswordHashKeyLength
	}

	// Export defaults
	if config.Export.FileName == "" {
		config.Export.FileName = constants.DefaultExportFileName
	}
	if config.Export.DemoFileName == "" {
		config.Export.DemoFileName = constants.DefaultDemoExportFileName
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	switch config.App.Environment {
	case constants.EnvDevelopment, constants.EnvTesting, constants.EnvProduction:
	default:
		log.Warn().Str("environment", config.App.Environment).Msg("Unknown environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	if (config.Operator.PassphraseHash == "") != (config.Operator.PassphraseSalt == "") {
		return fmt.Errorf("operator passphrase hash and salt must be set together")
	}

	if err := validator.New().Struct(config); err != nil {
		return err
	}

	// A passphrase without a signing secret would issue unverifiable tokens
	if config.Operator.RevealEnabled() && config.Operator.TokenSecret == "" {
		return fmt.Errorf("operator token secret must be set when a passphrase is configured")
	}

	if config.App.IsProduction() && config.Operator.AllowUnauthenticatedRaw {
		return fmt.Errorf("unauthenticated raw display is not allowed in production")
	}

	return nil
}

// logConfig logs the current configuration, masking sensitive values
func logConfig(config *AppConfig) {
	secret := ""
	if config.Operator.TokenSecret != "" {
		secret = constants.LogRedactedValue
	}

	log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("source", config.Source.Path).
		Int("segment_size", config.Source.SegmentSize).
		Dur("cache_ttl", config.Source.CacheTTL).
		Bool("reveal_enabled", config.Operator.RevealEnabled()).
		Str("token_secret", secret).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")
}
