// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config loads decoder settings from a configuration file and the
// environment.
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/creachadair/lowjson/ast"
	"github.com/creachadair/lowjson/pool"
	"github.com/spf13/viper"
	"github.com/tailscale/hujson"
)

// EnvPrefix is the prefix of environment variables that override settings.
// For example, LOWJSON_POOL_SEGMENTS overrides pool.segments.
const EnvPrefix = "LOWJSON"

// Config holds the settings for a Decoder.
type Config struct {
	Pool  PoolConfig  `mapstructure:"pool"`
	Lexer LexerConfig `mapstructure:"lexer"`
	Log   LogConfig   `mapstructure:"log"`
}

// PoolConfig holds the sizes of a decoder's pools. A pool size of zero
// selects the default for that pool, and a negative size means that no
// values are created in advance, as for ast.Options.
type PoolConfig struct {
	TextBuffers int  `mapstructure:"text_buffers"`
	TokenLists  int  `mapstructure:"token_lists"`
	Segments    int  `mapstructure:"segments"`
	SegmentSize int  `mapstructure:"segment_size"` // bytes
	Metrics     bool `mapstructure:"metrics"`      // record pool activity
}

// LexerConfig holds the optional extensions of the lexer.
type LexerConfig struct {
	DecodeEscapes bool `mapstructure:"decode_escapes"`
	AllowComments bool `mapstructure:"allow_comments"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// Load reads settings from the file at path, if path is not empty, and then
// applies overrides from the environment. Settings given in neither place
// take their default values.
//
// A file whose name ends in ".json" or ".hujson" is read as JSON, and may
// contain comments and trailing commas. Any other file is read as YAML.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		if err := readConfig(v, path); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfig(v *viper.Viper, path string) error {
	switch filepath.Ext(path) {
	case ".json", ".hujson":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return err
		}
		v.SetConfigType("json")
		return v.ReadConfig(bytes.NewReader(std))
	default:
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		return v.ReadInConfig()
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pool.text_buffers", ast.DefaultTextBuffers)
	v.SetDefault("pool.token_lists", ast.DefaultTokenLists)
	v.SetDefault("pool.segments", ast.DefaultSegments)
	v.SetDefault("pool.segment_size", pool.DefaultSegmentSize)
	v.SetDefault("pool.metrics", false)

	v.SetDefault("lexer.decode_escapes", false)
	v.SetDefault("lexer.allow_comments", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate reports an error if c contains invalid settings.
func (c *Config) Validate() error {
	if c.Pool.SegmentSize < 0 {
		return fmt.Errorf("pool.segment_size: invalid size %d", c.Pool.SegmentSize)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

func (c LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// Logger returns a logger that writes to w in the configured format, at the
// configured level or above. If w == nil, logs are discarded.
func (c LogConfig) Logger(w io.Writer) (*slog.Logger, error) {
	if w == nil {
		return slog.New(slog.DiscardHandler), nil
	}
	lvl, err := c.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch c.Format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log.format: unknown format %q", c.Format)
	}
}

// Options returns decoder options for the settings in c. Logs are written to
// w, as described by LogConfig.Logger. If metrics are enabled, the options
// record pool activity in a new pool.Metrics value.
func (c *Config) Options(w io.Writer) (*ast.Options, error) {
	logger, err := c.Log.Logger(w)
	if err != nil {
		return nil, err
	}
	opts := &ast.Options{
		TextBuffers:   c.Pool.TextBuffers,
		TokenLists:    c.Pool.TokenLists,
		Segments:      c.Pool.Segments,
		SegmentSize:   c.Pool.SegmentSize,
		DecodeEscapes: c.Lexer.DecodeEscapes,
		AllowComments: c.Lexer.AllowComments,
		Logger:        logger,
	}
	if c.Pool.Metrics {
		opts.Metrics = pool.NewMetrics()
	}
	return opts, nil
}
