// Package config loads csdlgen.yaml project settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/csdlgen/internal/logging"
)

// Store kinds.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config represents the complete csdlgen configuration
type Config struct {
	// Graph is the type graph document to render
	Graph string `yaml:"graph"`
	// OutputDir is where the file store writes documents
	OutputDir string `yaml:"output_dir"`
	// Filename is the document name inside the store
	Filename string `yaml:"filename"`
	// Exclude lists namespace prefixes left out of the document
	Exclude []string `yaml:"exclude"`
	// EntityContainer enables the EntityContainer placeholder element
	EntityContainer bool `yaml:"entity_container"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	Store  StoreConfig  `yaml:"store"`
	Server ServerConfig `yaml:"server"`
}

// StoreConfig selects where rendered documents are saved
type StoreConfig struct {
	Kind  string      `yaml:"kind"`
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig configures the Redis document store
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// ServerConfig configures the metadata HTTP server
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Graph:     "graph.yaml",
		OutputDir: "./csdl-output",
		Filename:  "csdl.xml",
		Exclude:   []string{"Cadl"},
		LogLevel:  "info",
		Store: StoreConfig{
			Kind: StoreFile,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "csdlgen:document:",
			},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Filename == "" {
		return fmt.Errorf("filename is required")
	}
	switch c.Store.Kind {
	case StoreFile:
		if c.OutputDir == "" {
			return fmt.Errorf("output_dir is required for the file store")
		}
	case StoreMemory:
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr is required")
		}
		if c.Store.Redis.TTL < 0 {
			return fmt.Errorf("store.redis.ttl must not be negative")
		}
	default:
		return fmt.Errorf("unknown store.kind %q (want file, memory or redis)", c.Store.Kind)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Relative paths are anchored at the config file.
	base := filepath.Dir(path)
	if config.Graph != "" && !filepath.IsAbs(config.Graph) {
		config.Graph = filepath.Join(base, config.Graph)
	}
	if config.OutputDir != "" && !filepath.IsAbs(config.OutputDir) {
		config.OutputDir = filepath.Join(base, config.OutputDir)
	}

	return config, nil
}

// SaveToFile writes the configuration as YAML
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Graph != "" {
		c.Graph = other.Graph
	}
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if other.Filename != "" {
		c.Filename = other.Filename
	}
	if other.Exclude != nil {
		c.Exclude = other.Exclude
	}
	if other.EntityContainer {
		c.EntityContainer = true
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}

	// Store
	if other.Store.Kind != "" {
		c.Store.Kind = other.Store.Kind
	}
	if other.Store.Redis.Addr != "" {
		c.Store.Redis.Addr = other.Store.Redis.Addr
	}
	if other.Store.Redis.Password != "" {
		c.Store.Redis.Password = other.Store.Redis.Password
	}
	if other.Store.Redis.DB != 0 {
		c.Store.Redis.DB = other.Store.Redis.DB
	}
	if other.Store.Redis.Prefix != "" {
		c.Store.Redis.Prefix = other.Store.Redis.Prefix
	}
	if other.Store.Redis.TTL != 0 {
		c.Store.Redis.TTL = other.Store.Redis.TTL
	}

	// Server
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
}
