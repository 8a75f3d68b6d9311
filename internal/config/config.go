package config

import (
	"math"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/invertedv/parcels"
	"github.com/invertedv/parcels/stack"
)

// Source kinds.
const (
	SourceFile       = "file"
	SourceClickHouse = "clickhouse"
	SourcePostgres   = "postgres"
)

// Output formats of the feature table.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Modes of the features command.
const (
	ModeTrain     = "train"
	ModeInference = "inference"
)

type Config struct {
	LogLevel string   `mapstructure:"log_level"`
	Source   Source   `mapstructure:"source"`
	Features Features `mapstructure:"features"`
	Stack    Stack    `mapstructure:"stack"`
}

// Source is where the properties and training tables are read from. For SourceFile the Features paths
// are used; for a database the queries are.
type Source struct {
	Kind            string `mapstructure:"kind"`
	Host            string `mapstructure:"host"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	PropertiesQuery string `mapstructure:"properties_query"`
	TrainQuery      string `mapstructure:"train_query"`
}

type Features struct {
	Mode       string `mapstructure:"mode"`
	Properties string `mapstructure:"properties"`
	Train      string `mapstructure:"train"`
	Aggregates string `mapstructure:"aggregates"`
	Output     string `mapstructure:"output"`
	Labels     string `mapstructure:"labels"`
	Keys       string `mapstructure:"keys"`
	Format     string `mapstructure:"format"`
	Date       string `mapstructure:"date"`
	DropSparse bool   `mapstructure:"drop_sparse"`
}

type Stack struct {
	Ensembled string   `mapstructure:"ensembled"`
	Single    string   `mapstructure:"single"`
	Output    string   `mapstructure:"output"`
	Key       string   `mapstructure:"key"`
	Periods   []string `mapstructure:"periods"`
	Weight    float64  `mapstructure:"weight"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("source.kind", SourceFile)
	// viper only unmarshals keys it knows, so every env-settable key needs a default
	for _, key := range []string{"host", "user", "password", "database", "properties_query", "train_query"} {
		v.SetDefault("source."+key, "")
	}
	for _, key := range []string{"properties", "train", "output", "labels", "keys"} {
		v.SetDefault("features."+key, "")
	}
	for _, key := range []string{"ensembled", "single", "output"} {
		v.SetDefault("stack."+key, "")
	}
	v.SetDefault("features.mode", ModeTrain)
	v.SetDefault("features.aggregates", "aggregates")
	v.SetDefault("features.format", FormatCSV)
	v.SetDefault("features.date", "2016-10-01")
	v.SetDefault("features.drop_sparse", false)
	v.SetDefault("stack.key", stack.KeyColumn)
	v.SetDefault("stack.periods", stack.Periods)
	v.SetDefault("stack.weight", stack.Weight)
}

// Load reads the optional YAML file at path, then PARCELS_ environment variables (a .env file in the
// working directory is loaded first if present), then whatever flags are bound to v.
func Load(v *viper.Viper, path string) (*Config, error) {
	_ = godotenv.Load()

	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PARCELS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if e := v.ReadInConfig(); e != nil {
			return nil, errors.Wrapf(e, "reading config %s", path)
		}
	}

	var cfg Config
	if e := v.Unmarshal(&cfg); e != nil {
		return nil, errors.Wrap(e, "unmarshal config")
	}

	return &cfg, nil
}

// ValidateFeatures checks the settings used by the features command.
func (c *Config) ValidateFeatures() error {
	f := c.Features
	switch c.Source.Kind {
	case SourceFile:
		if f.Properties == "" {
			return errors.Wrap(parcels.ErrConfig, "features.properties is required")
		}
		if f.Mode == ModeTrain && f.Train == "" {
			return errors.Wrap(parcels.ErrConfig, "features.train is required in train mode")
		}
	case SourceClickHouse, SourcePostgres:
		if c.Source.PropertiesQuery == "" {
			return errors.Wrap(parcels.ErrConfig, "source.properties_query is required")
		}
		if f.Mode == ModeTrain && c.Source.TrainQuery == "" {
			return errors.Wrap(parcels.ErrConfig, "source.train_query is required in train mode")
		}
	default:
		return errors.Wrapf(parcels.ErrConfig, "unknown source.kind %q", c.Source.Kind)
	}

	if f.Mode != ModeTrain && f.Mode != ModeInference {
		return errors.Wrapf(parcels.ErrConfig, "unknown features.mode %q", f.Mode)
	}

	if f.Format != FormatCSV && f.Format != FormatParquet {
		return errors.Wrapf(parcels.ErrConfig, "unknown features.format %q", f.Format)
	}

	if f.Output == "" || f.Aggregates == "" {
		return errors.Wrap(parcels.ErrConfig, "features.output and features.aggregates are required")
	}

	if f.Mode == ModeInference {
		if _, e := parcels.ParseDate(f.Date); e != nil {
			return errors.Wrapf(parcels.ErrConfig, "features.date %q", f.Date)
		}
	}

	return nil
}

// ValidateStack checks the settings used by the stack command.
func (c *Config) ValidateStack() error {
	s := c.Stack
	if s.Ensembled == "" || s.Single == "" || s.Output == "" {
		return errors.Wrap(parcels.ErrConfig, "stack.ensembled, stack.single and stack.output are required")
	}

	if math.IsNaN(s.Weight) || s.Weight < 0 || s.Weight > 1 {
		return errors.Wrapf(parcels.ErrConfig, "stack.weight %v not in [0,1]", s.Weight)
	}

	if len(s.Periods) == 0 || s.Key == "" {
		return errors.Wrap(parcels.ErrConfig, "stack.key and stack.periods are required")
	}

	return nil
}
