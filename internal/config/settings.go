// Package config resolves a run's settings from, in increasing precedence,
// built-in defaults, telemetry.yaml, a .env file, the process environment and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// Environment variable names.
const (
	KeyHost           = "PGHOST"
	KeyPort           = "PGPORT"
	KeyUser           = "PGUSER"
	KeyPassword       = "PGPASSWORD"
	KeyDatabase       = "PGDATABASE"
	KeySSLMode        = "PGSSLMODE"
	KeyOutputDir      = "CSV_OUT_DIR"
	KeyDatabaseURL    = "TELEMETRY_DATABASE_URL"
	KeySeed           = "TELEMETRY_SEED"
	KeyTimeout        = "TELEMETRY_TIMEOUT"
	KeyAuth           = "TELEMETRY_AUTH"
	KeyAWSRegion      = "AWS_REGION"
	KeyAzureTenant    = "AZURE_TENANT_ID"
	KeyAzureClient    = "AZURE_CLIENT_ID"
	KeyAzureSecret    = "AZURE_CLIENT_SECRET"
	KeyGoogleInstance = "TELEMETRY_GOOGLE_INSTANCE"
)

// Keys lists every variable Settings reads.
var Keys = []string{
	KeyHost, KeyPort, KeyUser, KeyPassword, KeyDatabase, KeySSLMode,
	KeyOutputDir, KeyDatabaseURL, KeySeed, KeyTimeout, KeyAuth,
	KeyAWSRegion, KeyAzureTenant, KeyAzureClient, KeyAzureSecret, KeyGoogleInstance,
}

// DefaultDotEnvFile is read from the working directory when present.
const DefaultDotEnvFile = ".env"

// Settings is the environment-level configuration before flags are applied.
// The database defaults are placeholders for the bundled compose stack.
type Settings struct {
	Host        string        `mapstructure:"PGHOST"`
	Port        int           `mapstructure:"PGPORT"`
	User        string        `mapstructure:"PGUSER"`
	Password    string        `mapstructure:"PGPASSWORD"`
	Database    string        `mapstructure:"PGDATABASE"`
	SSLMode     string        `mapstructure:"PGSSLMODE"`
	OutputDir   string        `mapstructure:"CSV_OUT_DIR"`
	DatabaseURL string        `mapstructure:"TELEMETRY_DATABASE_URL"`
	Seed        int64         `mapstructure:"TELEMETRY_SEED"`
	Timeout     time.Duration `mapstructure:"TELEMETRY_TIMEOUT"`
	Auth        string        `mapstructure:"TELEMETRY_AUTH"`

	AWSRegion         string `mapstructure:"AWS_REGION"`
	AzureTenantID     string `mapstructure:"AZURE_TENANT_ID"`
	AzureClientID     string `mapstructure:"AZURE_CLIENT_ID"`
	AzureClientSecret string `mapstructure:"AZURE_CLIENT_SECRET"`
	GoogleInstance    string `mapstructure:"TELEMETRY_GOOGLE_INSTANCE"`
}

// LoadSettings layers defaults, project (may be nil) and the .env file at
// dotEnvPath (missing file is ignored), then lets the process environment
// override all of them.
func LoadSettings(dotEnvPath string, project *ProjectConfig) (*Settings, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(KeyHost, "db")
	v.SetDefault(KeyPort, 5432)
	v.SetDefault(KeyUser, "monouser")
	v.SetDefault(KeyPassword, "monopass")
	v.SetDefault(KeyDatabase, "monolith")
	v.SetDefault(KeySSLMode, "disable")
	v.SetDefault(KeyOutputDir, telemetry.DefaultOutputDir)
	v.SetDefault(KeyDatabaseURL, "")
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyTimeout, telemetry.DefaultTimeout.String())
	v.SetDefault(KeyAuth, "standard")
	v.SetDefault(KeyAWSRegion, "")
	v.SetDefault(KeyAzureTenant, "")
	v.SetDefault(KeyAzureClient, "")
	v.SetDefault(KeyAzureSecret, "")
	v.SetDefault(KeyGoogleInstance, "")

	if project != nil {
		applyProject(v, project)
	}

	if dotEnvPath != "" {
		values, err := godotenv.Read(dotEnvPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w: %w", dotEnvPath, telemetry.ErrInvalidConfig, err)
		}
		for key, value := range values {
			v.SetDefault(key, value)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode environment: %w: %w", telemetry.ErrInvalidConfig, err)
	}
	return &s, nil
}

func applyProject(v *viper.Viper, p *ProjectConfig) {
	set := func(key, value string) {
		if value != "" {
			v.SetDefault(key, value)
		}
	}

	c := p.Connection
	set(KeyHost, c.Host)
	if c.Port != 0 {
		v.SetDefault(KeyPort, c.Port)
	}
	set(KeyUser, c.Username)
	set(KeyDatabase, c.Database)
	set(KeySSLMode, c.SSLMode)
	set(KeyAuth, c.AuthMethod)
	set(KeyAWSRegion, c.AWSRegion)
	set(KeyAzureTenant, c.AzureTenantID)
	set(KeyAzureClient, c.AzureClientID)
	set(KeyGoogleInstance, c.GoogleInstance)
	set(KeyOutputDir, p.OutputDir)
	set(KeyTimeout, p.Timeout)
}
