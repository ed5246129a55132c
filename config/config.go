// Package config loads gmsbind settings from an optional YAML file, an
// optional .env file and GMSBIND_* environment variables, in that order of
// increasing precedence.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/gmsbind/emit"
	"github.com/wippyai/gmsbind/errors"
	"github.com/wippyai/gmsbind/session"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GMSBIND_"

type Config struct {
	Output  OutputConfig  `yaml:"output"`
	S3      S3Config      `yaml:"s3"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
	Ext string `yaml:"ext"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	KeyPrefix string `yaml:"key_prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type SessionConfig struct {
	// Restart is "discard" or "reject".
	Restart     string `yaml:"restart"`
	StableOrder bool   `yaml:"stable_order"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Output: OutputConfig{
			Dir: ".",
			Ext: emit.DefaultExt,
		},
		S3: S3Config{
			Region: "us-east-1",
			UseSSL: true,
		},
		Session: SessionConfig{
			Restart:     session.RestartDiscard.String(),
			StableOrder: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds a Config starting from Default. An empty path skips the YAML
// file; a path that does not exist is an error. A missing .env is ignored.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "load .env")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, errors.NotFound(errors.PhaseConfig, "config file", path)
			}
			return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse "+path)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"OUT_DIR":       &c.Output.Dir,
		"OUT_EXT":       &c.Output.Ext,
		"S3_ENDPOINT":   &c.S3.Endpoint,
		"S3_REGION":     &c.S3.Region,
		"S3_ACCESS_KEY": &c.S3.AccessKey,
		"S3_SECRET_KEY": &c.S3.SecretKey,
		"S3_BUCKET":     &c.S3.Bucket,
		"S3_KEY_PREFIX": &c.S3.KeyPrefix,
		"RESTART":       &c.Session.Restart,
		"LOG_LEVEL":     &c.Log.Level,
		"LOG_FORMAT":    &c.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	bools := map[string]*bool{
		"S3_USE_SSL":   &c.S3.UseSSL,
		"STABLE_ORDER": &c.Session.StableOrder,
	}
	for key, dst := range bools {
		v, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Name(EnvPrefix + key).
				Cause(err).
				Detail("expected a boolean").
				Build()
		}
		*dst = b
	}
	return nil
}

// Validate checks values that have a closed set of options.
func (c Config) Validate() error {
	if _, err := session.ParseRestartPolicy(c.Session.Restart); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return errors.InvalidInput(errors.PhaseConfig, "log format must be console or json, got "+c.Log.Format)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.InvalidInput(errors.PhaseConfig, "unknown log level "+c.Log.Level)
	}
	if c.S3.Endpoint != "" && c.S3.Bucket == "" {
		return errors.InvalidInput(errors.PhaseConfig, "s3 bucket is required when an endpoint is set")
	}
	return nil
}

// RegistryOptions translates the session settings.
func (c Config) RegistryOptions() ([]session.Option, error) {
	policy, err := session.ParseRestartPolicy(c.Session.Restart)
	if err != nil {
		return nil, err
	}
	opts := []session.Option{session.WithRestartPolicy(policy)}
	if c.Session.StableOrder {
		opts = append(opts, session.WithStableOrder())
	}
	return opts, nil
}

// FileSink returns the sink for local output.
func (c Config) FileSink() *emit.FileSink {
	return &emit.FileSink{Dir: c.Output.Dir, Ext: c.Output.Ext, MkdirAll: true}
}

// S3Sink returns the sink for bucket output.
func (c Config) S3Sink() (*emit.S3Sink, error) {
	return emit.NewS3Sink(emit.S3Config{
		Endpoint:  c.S3.Endpoint,
		Region:    c.S3.Region,
		AccessKey: c.S3.AccessKey,
		SecretKey: c.S3.SecretKey,
		Bucket:    c.S3.Bucket,
		KeyPrefix: c.S3.KeyPrefix,
		Ext:       c.Output.Ext,
		UseSSL:    c.S3.UseSSL,
	})
}
