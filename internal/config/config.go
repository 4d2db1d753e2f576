package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gestorly/gestorly/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server   ServerConfig   `validate:"required"`
	Logging  LoggingConfig  `validate:"required"`
	Supabase SupabaseConfig `validate:"required"`
	Storage  StorageConfig  `validate:"required"`
	Invoice  InvoiceConfig
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// SupabaseConfig holds the credentials for the managed backend.
// ServiceKey bypasses row-level security and backs the privileged
// client; AnonKey backs the per-request user-scoped client.
type SupabaseConfig struct {
	BaseURL    string `mapstructure:"base_url" validate:"required"`
	AnonKey    string `mapstructure:"anon_key" validate:"required"`
	ServiceKey string `mapstructure:"service_key" validate:"required"`
}

// StorageConfig points at the backend's S3-compatible object storage.
type StorageConfig struct {
	Endpoint        string `validate:"required"`
	Region          string `validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `validate:"required"`
	PublicBaseURL   string `mapstructure:"public_base_url" validate:"required"`
}

type InvoiceConfig struct {
	// NumberPrefix is concatenated with the per-owner sequence number
	// to form the display invoice number, e.g. "100" + 7 -> "1007".
	NumberPrefix string `mapstructure:"number_prefix"`
}

const DefaultInvoiceNumberPrefix = "100"

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/gestorly")

	v.SetEnvPrefix("GESTORLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Invoice.NumberPrefix == "" {
		config.Invoice.NumberPrefix = DefaultInvoiceNumberPrefix
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for tests and
// non-web tooling.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Server:  ServerConfig{Address: ":8080"},
		Logging: LoggingConfig{Level: types.LogLevelDebug},
		Invoice: InvoiceConfig{NumberPrefix: DefaultInvoiceNumberPrefix},
	}
}
