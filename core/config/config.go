package config

import (
	"reflect"
	"strings"

	"table-sync/core/database"
	"table-sync/core/logger"
	"table-sync/core/server"
	"table-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP trigger server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the run report archive (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Source holds configuration for the legacy database rows are read from.
	Source database.Config `mapstructure:"source"`
	// Destination holds configuration for the database rows are upserted into.
	Destination database.Config `mapstructure:"destination"`
	// Sync holds configuration for the job runner.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig holds configuration for sync runs.
type SyncConfig struct {
	// JobsFile is a YAML file of job families. Empty uses the built-in families.
	JobsFile string `mapstructure:"jobs_file" default:""`
	// Workers is the number of jobs run concurrently.
	Workers int `mapstructure:"workers" default:"4"`
	// TimeoutSeconds bounds a whole run. Zero means no limit.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"600"`
	// InsertBatchSize is the number of rows per INSERT statement.
	InsertBatchSize int `mapstructure:"insert_batch_size" default:"500"`
	// LookupBatchSize is the number of keys per destination lookup query.
	LookupBatchSize int `mapstructure:"lookup_batch_size" default:"1000"`
	// ReportPrefix is the object prefix run reports are archived under.
	ReportPrefix string `mapstructure:"report_prefix" default:"runs"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Both stores share database.Config; the destination defaults to postgres.
	v.SetDefault("destination.driver", database.DriverPostgres)
	v.SetDefault("destination.port", 5432)
	v.SetDefault("destination.user", "postgres")

	// Map environment variables to nested keys (e.g. SOURCE_HOST -> source.host)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
